package feed

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/postboard/domain"
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.confirmDelete {
		m.confirmDelete = false
		if msg.String() != "y" {
			return m, nil
		}
		p, ok := m.SelectedPost()
		if !ok {
			return m, nil
		}
		return m, emit(DeletePostMsg{Post: p})
	}

	switch {
	case key.Matches(msg, m.keys.ToggleHints):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.err = nil
		return m, tea.Batch(m.Refresh(), m.spinner.Tick)

	case key.Matches(msg, m.keys.Back):
		m.showDetail = false
		m.help.ShowAll = false
		return m, nil

	case key.Matches(msg, m.keys.Open):
		if _, ok := m.SelectedPost(); ok {
			m.showDetail = true
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if !m.showDetail && m.cursor > 0 {
			m.cursor--
			m.ensureCursorVisible()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if !m.showDetail && m.cursor < len(m.Visible())-1 {
			m.cursor++
			m.ensureCursorVisible()
		}
		return m, nil

	case key.Matches(msg, m.keys.Edit), key.Matches(msg, m.keys.EditEditor):
		p, ok := m.SelectedPost()
		if !ok {
			return m, nil
		}
		return m, emit(EditPostMsg{Post: p, UseEditor: key.Matches(msg, m.keys.EditEditor)})

	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.SelectedPost(); ok {
			m.confirmDelete = true
		}
		return m, nil

	case key.Matches(msg, m.keys.FilterUser):
		return m.toggleUserFilter()

	case key.Matches(msg, m.keys.Count):
		m.posts.IncreaseCount()
		return m, nil
	}

	for i, b := range m.keys.React {
		if key.Matches(msg, b) {
			p, ok := m.SelectedPost()
			if !ok {
				return m, nil
			}
			if err := m.posts.AddReaction(p.ID, domain.ReactionKinds[i]); err != nil {
				m.err = err
			}
			return m, nil
		}
	}

	return m, nil
}

// toggleUserFilter narrows the list to the selected post's author, or
// clears an active filter. The cursor follows the selected post.
func (m Model) toggleUserFilter() (Model, tea.Cmd) {
	p, ok := m.SelectedPost()
	if m.userFilter != 0 {
		m.userFilter = 0
	} else if ok {
		m.userFilter = p.UserID
	} else {
		return m, nil
	}
	m.showDetail = false
	m.cursor = 0
	m.startIndex = 0
	if ok {
		m.selectID(p.ID)
	}
	return m, m.emitFilterChanged()
}
