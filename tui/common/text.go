package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// TimeAgo renders the distance from t to now in words, e.g. "5 minutes ago".
func TimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	suffix := " ago"
	if d < 0 {
		d = -d
		suffix = " from now"
	}

	switch {
	case d < 30*time.Second:
		return "less than a minute" + suffix
	case d < 90*time.Second:
		return "1 minute" + suffix
	case d < 45*time.Minute:
		return fmt.Sprintf("%d minutes%s", int(d.Round(time.Minute)/time.Minute), suffix)
	case d < 90*time.Minute:
		return "about 1 hour" + suffix
	case d < 24*time.Hour:
		return fmt.Sprintf("about %d hours%s", int(d.Round(time.Hour)/time.Hour), suffix)
	case d < 48*time.Hour:
		return "1 day" + suffix
	default:
		return fmt.Sprintf("%d days%s", int(d/(24*time.Hour)), suffix)
	}
}

// Truncate cuts a single line to width display cells, adding an ellipsis.
func Truncate(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if width <= 0 || ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// ClampLines cuts every line of text to width display cells.
func ClampLines(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		if ansi.StringWidth(ln) <= width {
			continue
		}
		lines[i] = ansi.Cut(ln, 0, width)
	}
	return strings.Join(lines, "\n")
}
