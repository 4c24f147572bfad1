package feed

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) loadPosts() tea.Cmd {
	posts := m.posts
	return func() tea.Msg {
		if err := posts.LoadAll(context.Background()); err != nil {
			return PostsErrorMsg{Err: err}
		}
		return PostsLoadedMsg{}
	}
}

func (m Model) emitFilterChanged() tea.Cmd {
	userID := m.userFilter
	return func() tea.Msg {
		return FilterChangedMsg{UserID: userID}
	}
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
