package feed

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/postboard/tui/common"
)

func (m Model) renderDetailView() string {
	p, ok := m.SelectedPost()
	if !ok {
		return "No post selected."
	}
	contentWidth := listWidth - 8

	var b strings.Builder
	b.WriteString(m.renderHeader())

	crumbStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")).MarginBottom(1)
	b.WriteString(crumbStyle.Render(fmt.Sprintf("  Post %s", p.ID)) + "\n")

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#8AADF4")).
		Padding(1, 2).
		Width(listWidth)

	body := lipgloss.NewStyle().Width(contentWidth).Render(p.Body)
	card := strings.Join([]string{
		common.PostTitleStyle.Render(p.Title),
		common.AuthorStyle.Render(fmt.Sprintf("by user %d", p.UserID)) + "  " +
			common.TimestampStyle.Render(common.TimeAgo(p.Date, m.now())),
		"",
		common.ContentStyle.Render(common.ClampLines(body, contentWidth)),
		"",
		renderReactions(p.Reactions),
	}, "\n")
	b.WriteString(cardStyle.Render(card) + "\n")

	b.WriteString(m.renderStatusBar())
	return b.String()
}
