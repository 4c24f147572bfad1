package compose

import (
	"fmt"
	"strings"

	"github.com/CrestNiraj12/postboard/tui/common"
)

// View renders the compose view based on the active mode.
func (m Model) View() string {
	switch m.mode {
	case editorMode:
		return m.status + "\n"

	case inlineMode:
		heading := "New post"
		if m.isEdit {
			heading = fmt.Sprintf("Editing post %s", m.original.ID)
		}

		var b strings.Builder
		b.WriteString(common.AppTitleStyle.Render("postboard"))
		b.WriteString("  " + heading + "\n\n")
		b.WriteString(" " + common.LabelStyle.Render("Title") + "\n " + m.title.View() + "\n\n")
		b.WriteString(" " + common.LabelStyle.Render("Author") + "\n " + m.author.View() + "\n\n")
		b.WriteString(" " + common.LabelStyle.Render("Body") + "\n" + m.body.View() + "\n")

		if m.err != nil {
			b.WriteString("\n " + common.ErrorStyle.Render(m.err.Error()) + "\n")
		}
		b.WriteString(common.StatusBarStyle.Render(
			fmt.Sprintf("  tab: next field • ctrl+s: save • esc: cancel • %d/%d chars",
				len(m.body.Value()), m.body.CharLimit),
		))
		return b.String()
	}

	return ""
}
