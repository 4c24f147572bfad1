package feed

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/postboard/domain"
	"github.com/CrestNiraj12/postboard/store"
	"github.com/CrestNiraj12/postboard/tui/common"
)

// itemHeight is the rendered height of one list entry: three content lines
// plus the border.
const itemHeight = 5

// PostsLoadedMsg is sent when the bulk load completes successfully.
type PostsLoadedMsg struct{}

// PostsErrorMsg is sent when the bulk load fails.
type PostsErrorMsg struct {
	Err error
}

// EditPostMsg asks the root model to open the composer for a post.
type EditPostMsg struct {
	Post      domain.Post
	UseEditor bool
}

// DeletePostMsg asks the root model to delete a post.
type DeletePostMsg struct {
	Post domain.Post
}

// DeleteResultMsg is sent after a delete attempt.
type DeleteResultMsg struct {
	Result store.DeleteResult
	Err    error
}

// SavedMsg is sent after a create or update reconciles into the store.
type SavedMsg struct {
	Post   domain.Post
	IsEdit bool
	Err    error
}

// FilterChangedMsg reports a new author filter; 0 clears it.
type FilterChangedMsg struct {
	UserID int
}

// Model holds the state for the post list and detail views. Posts
// themselves live in the store; the model only tracks what is on screen.
type Model struct {
	posts         *store.Posts
	keys          common.KeyMap
	help          help.Model
	spinner       spinner.Model
	now           func() time.Time
	cursor        int
	startIndex    int
	width         int
	height        int
	userFilter    int
	showDetail    bool
	confirmDelete bool
	err           error
}

// New creates a feed model reading from posts. userFilter restores a
// saved author filter; 0 shows everyone.
func New(posts *store.Posts, userFilter int) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#8AADF4"))

	return Model{
		posts:      posts,
		keys:       common.DefaultKeyMap(),
		help:       help.New(),
		spinner:    s,
		now:        time.Now,
		userFilter: userFilter,
	}
}

// Init starts the initial load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadPosts(),
		m.spinner.Tick,
	)
}

// Refresh returns a Cmd that reloads every post.
func (m Model) Refresh() tea.Cmd {
	return m.loadPosts()
}

// Update handles messages for the feed view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m.update(msg)
}

// Visible returns the posts currently listed, newest first.
func (m Model) Visible() []domain.Post {
	if m.userFilter != 0 {
		return m.posts.ForUser(m.userFilter)
	}
	return m.posts.All()
}

// SelectedPost returns the highlighted post, if any.
func (m Model) SelectedPost() (domain.Post, bool) {
	posts := m.Visible()
	if len(posts) == 0 {
		return domain.Post{}, false
	}
	return posts[min(m.cursor, len(posts)-1)], true
}

// UserFilter returns the active author filter, 0 for none.
func (m Model) UserFilter() int {
	return m.userFilter
}

// IsInDetailView reports whether a single post is open.
func (m Model) IsInDetailView() bool {
	return m.showDetail
}

// IsConfirmingDelete reports whether the y/n delete prompt is showing.
func (m Model) IsConfirmingDelete() bool {
	return m.confirmDelete
}

// Err returns the last load error, if any.
func (m Model) Err() error {
	return m.err
}

// Select moves the cursor onto id when it is visible.
func (m Model) Select(id domain.PostID) Model {
	m.selectID(id)
	return m
}
