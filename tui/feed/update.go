package feed

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/postboard/domain"
)

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ensureCursorVisible()
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case PostsLoadedMsg:
		m.err = nil
		m.clampCursor()
		return m, nil

	case PostsErrorMsg:
		m.err = msg.Err
		return m, nil

	case SavedMsg:
		if msg.Err == nil {
			m.selectID(msg.Post.ID)
		}
		return m, nil

	case DeleteResultMsg:
		if msg.Err == nil && msg.Result.OK() {
			m.showDetail = false
			m.clampCursor()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// selectID moves the cursor onto id if it is visible.
func (m *Model) selectID(id domain.PostID) {
	for i, p := range m.Visible() {
		if p.ID == id {
			m.cursor = i
			m.ensureCursorVisible()
			return
		}
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible()
}

func (m *Model) visibleCount() int {
	// Header, filter badge and status bar take roughly nine lines.
	return max((m.height-9)/itemHeight, 1)
}

func (m *Model) ensureCursorVisible() {
	if m.cursor < m.startIndex {
		m.startIndex = m.cursor
	}
	if count := m.visibleCount(); m.cursor >= m.startIndex+count {
		m.startIndex = m.cursor - count + 1
	}
	if m.startIndex < 0 {
		m.startIndex = 0
	}
}

func filterLabel(userID int) string {
	if userID == 0 {
		return "all posts"
	}
	return fmt.Sprintf("user %d", userID)
}
