package feed

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/postboard/domain"
	"github.com/CrestNiraj12/postboard/store"
	"github.com/CrestNiraj12/postboard/tui/common"
)

const listWidth = 74

// View renders the feed as a string.
func (m Model) View() string {
	if m.showDetail {
		return m.renderDetailView()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())

	posts := m.Visible()
	switch {
	case m.posts.Status() == store.StatusLoading && len(posts) == 0:
		b.WriteString(fmt.Sprintf("  %s Loading posts...\n", m.spinner.View()))
	case m.err != nil:
		b.WriteString(common.ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
		b.WriteString("\n\n  Press r to retry.\n")
	case len(posts) == 0 && m.userFilter != 0:
		b.WriteString(fmt.Sprintf("  No posts by user %d.\n", m.userFilter))
	case len(posts) == 0:
		b.WriteString("  No posts yet. Press n to write one.\n")
	default:
		b.WriteString(m.renderList(posts))
	}

	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) renderHeader() string {
	title := common.AppTitleStyle.Render("postboard")
	tagline := common.TaglineStyle.Render("<posts, newest first>")
	badge := common.FilterBadgeStyle.Render(filterLabel(m.userFilter))
	return title + tagline + "\n" + badge + "\n"
}

func (m Model) renderList(posts []domain.Post) string {
	start := min(max(m.startIndex, 0), len(posts)-1)
	end := min(start+m.visibleCount(), len(posts))
	contentWidth := listWidth - 4
	now := m.now()

	var b strings.Builder
	for i := start; i < end; i++ {
		p := posts[i]
		heading := common.PostTitleStyle.Render(common.Truncate(p.Title, contentWidth))
		meta := common.AuthorStyle.Render(fmt.Sprintf("by user %d", p.UserID)) +
			"  " + common.TimestampStyle.Render(common.TimeAgo(p.Date, now))
		reactions := renderReactions(p.Reactions)

		box := common.UnselectedStyle
		if i == m.cursor {
			box = common.SelectedStyle
		}
		b.WriteString(box.Width(listWidth).Render(heading+"\n"+meta+"\n"+reactions) + "\n")
	}
	if end < len(posts) {
		more := lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")).
			Render(fmt.Sprintf("  … %d more", len(posts)-end))
		b.WriteString(more + "\n")
	}
	return b.String()
}

func renderReactions(r domain.Reactions) string {
	parts := make([]string, 0, len(domain.ReactionKinds))
	for _, kind := range domain.ReactionKinds {
		parts = append(parts, fmt.Sprintf("%s %d", kind.Emoji(), r.Get(kind)))
	}
	return common.ReactionStyle.Render(strings.Join(parts, "  "))
}

func (m Model) renderStatusBar() string {
	var b strings.Builder
	if m.confirmDelete {
		if p, ok := m.SelectedPost(); ok {
			b.WriteString(common.ConfirmStyle.Render(
				fmt.Sprintf("Delete %q? (y/n)", common.Truncate(p.Title, 40))) + "\n")
		}
	}
	count := fmt.Sprintf("count: %d", m.posts.Count())
	b.WriteString(common.StatusBarStyle.Render(m.help.View(m.keys) + "  " + count))
	return b.String()
}
