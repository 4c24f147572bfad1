package common

import "github.com/charmbracelet/lipgloss"

const accent = lipgloss.Color("#8AADF4")

var (
	// AppTitleStyle styles the application title.
	AppTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Padding(1, 0, 0, 1)

	// TaglineStyle styles the app's tagline.
	TaglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")).
			Italic(true).
			MarginLeft(1)

	// FilterBadgeStyle marks an active author filter.
	FilterBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#A6DA95")).
				Bold(true).
				Margin(0, 0, 1, 2)

	// PostTitleStyle styles a post title.
	PostTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#CAD3F5"))

	// AuthorStyle styles the "by user N" line.
	AuthorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7DC4E4"))

	// TimestampStyle styles timestamps.
	TimestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D")).
			Italic(true)

	// ContentStyle styles post bodies.
	ContentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#B8C0E0"))

	// ReactionStyle styles reaction counters.
	ReactionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EED49F"))

	// SelectedStyle highlights the currently selected post.
	SelectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)

	// UnselectedStyle gives other posts a subtle border.
	UnselectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1)

	// StatusBarStyle styles the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D")).
			Padding(1, 0, 0, 0)

	// LabelStyle styles form labels in the compose view.
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A5ADCB")).
			Bold(true)

	// ConfirmStyle styles the delete confirmation prompt.
	ConfirmStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true).
			Padding(0, 1)

	// ErrorStyle styles error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true)

	// SuccessStyle styles success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true)
)
