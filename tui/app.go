package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/CrestNiraj12/postboard/domain"
	"github.com/CrestNiraj12/postboard/infra/config"
	"github.com/CrestNiraj12/postboard/infra/editor"
	"github.com/CrestNiraj12/postboard/store"
	"github.com/CrestNiraj12/postboard/tui/common"
	"github.com/CrestNiraj12/postboard/tui/compose"
	"github.com/CrestNiraj12/postboard/tui/feed"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Posts     *store.Posts
	Editor    *editor.EnvEditor
	UIState   config.UIState // restored on start
	StatePath string         // empty disables persistence
	Log       log.FieldLogger
}

type activeView int

const (
	feedView activeView = iota
	composeView
)

// App is the root Bubble Tea model. It routes between sub-views and runs
// store operations as commands.
type App struct {
	deps      Deps
	active    activeView
	feed      feed.Model
	compose   compose.Model
	keys      common.KeyMap
	status    string // Transient status message (e.g. "Post saved.")
	restoreID domain.PostID
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	if deps.Log == nil {
		deps.Log = log.StandardLogger()
	}
	return App{
		deps:      deps,
		active:    feedView,
		feed:      feed.New(deps.Posts, deps.UIState.UserFilter),
		keys:      common.DefaultKeyMap(),
		restoreID: domain.PostID(deps.UIState.SelectedID),
	}
}

// Init delegates to the feed.
func (a App) Init() tea.Cmd {
	return a.feed.Init()
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return a, tea.Sequence(a.saveState(), tea.Quit)
		}

		if a.active == feedView && !a.feed.IsConfirmingDelete() {
			switch {
			case key.Matches(msg, a.keys.Quit) && !a.feed.IsInDetailView():
				return a, tea.Sequence(a.saveState(), tea.Quit)

			case key.Matches(msg, a.keys.NewEditor):
				return a.openCompose(compose.NewEditor(a.deps.Editor))

			case key.Matches(msg, a.keys.NewInline):
				return a.openCompose(compose.NewInline())
			}
			a.status = ""
		}

	case feed.PostsLoadedMsg:
		a.feed, _ = a.feed.Update(msg)
		if a.restoreID.Valid() {
			a.feed = a.feed.Select(a.restoreID)
			a.restoreID = ""
		}
		return a, nil

	case feed.PostsErrorMsg:
		a.feed, _ = a.feed.Update(msg)
		return a, nil

	case feed.EditPostMsg:
		if msg.UseEditor {
			return a.openCompose(compose.NewEditorFor(a.deps.Editor, msg.Post))
		}
		return a.openCompose(compose.NewInlineFor(msg.Post))

	case feed.DeletePostMsg:
		a.status = "Deleting..."
		return a, a.deletePost(msg.Post)

	case feed.DeleteResultMsg:
		a.feed, _ = a.feed.Update(msg)
		switch {
		case msg.Err != nil:
			a.status = "Error deleting: " + msg.Err.Error()
		case !msg.Result.OK():
			a.status = "Delete failed: " + msg.Result.Message
		default:
			a.status = "Post deleted."
		}
		return a, nil

	case feed.FilterChangedMsg:
		return a, a.saveState()

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(msg)
		return a, cmd

	case tea.WindowSizeMsg:
		a.feed, _ = a.feed.Update(msg)
		if a.active == composeView {
			var cmd tea.Cmd
			a.compose, cmd = a.compose.Update(msg)
			return a, cmd
		}
		return a, nil

	case compose.DoneMsg:
		a.active = feedView
		switch {
		case msg.Err != nil:
			a.status = "Error: " + msg.Err.Error()
			return a, nil
		case msg.Cancelled:
			a.status = "Cancelled."
			return a, nil
		}
		if msg.IsEdit {
			a.status = "Updating..."
			return a, a.updatePost(msg.Draft.ApplyTo(a.latest(msg.Original)))
		}
		a.status = "Posting..."
		return a, a.createPost(msg.Draft)

	case feed.SavedMsg:
		a.feed, _ = a.feed.Update(msg)
		switch {
		case msg.Err != nil:
			a.status = "Error: " + msg.Err.Error()
		case msg.IsEdit:
			a.status = "Post updated."
		default:
			a.status = "Post published."
		}
		return a, nil
	}

	// Delegate to the active sub-model.
	switch a.active {
	case feedView:
		updated, cmd := a.feed.Update(msg)
		a.feed = updated
		return a, cmd
	case composeView:
		updated, cmd := a.compose.Update(msg)
		a.compose = updated
		return a, cmd
	}

	return a, nil
}

func (a App) openCompose(c compose.Model) (App, tea.Cmd) {
	a.active = composeView
	a.status = ""
	a.compose = c
	return a, a.compose.Init()
}

// latest returns the stored copy of p so reactions added while the
// composer was open are not lost.
func (a App) latest(p domain.Post) domain.Post {
	if cur, ok := a.deps.Posts.ByID(p.ID); ok {
		return cur
	}
	return p
}

func (a App) createPost(d domain.Draft) tea.Cmd {
	posts := a.deps.Posts
	return func() tea.Msg {
		p, err := posts.Create(context.Background(), d)
		return feed.SavedMsg{Post: p, Err: err}
	}
}

func (a App) updatePost(p domain.Post) tea.Cmd {
	posts := a.deps.Posts
	return func() tea.Msg {
		updated, err := posts.Update(context.Background(), p)
		return feed.SavedMsg{Post: updated, IsEdit: true, Err: err}
	}
}

func (a App) deletePost(p domain.Post) tea.Cmd {
	posts := a.deps.Posts
	return func() tea.Msg {
		res, err := posts.Delete(context.Background(), p)
		return feed.DeleteResultMsg{Result: res, Err: err}
	}
}

// saveState persists the author filter and selection. Failures are logged;
// they never interrupt the session.
func (a App) saveState() tea.Cmd {
	if a.deps.StatePath == "" {
		return nil
	}
	st := config.UIState{UserFilter: a.feed.UserFilter()}
	if p, ok := a.feed.SelectedPost(); ok {
		st.SelectedID = p.ID.String()
	}
	path, logger := a.deps.StatePath, a.deps.Log
	return func() tea.Msg {
		if err := config.SaveUIState(path, st); err != nil {
			logger.WithError(err).WithField("path", path).Warn("Saving UI state failed")
		}
		return nil
	}
}

// View renders the active sub-model.
func (a App) View() string {
	var s string

	switch a.active {
	case feedView:
		s = a.feed.View()
	case composeView:
		s = a.compose.View()
	}

	if a.status != "" {
		s += "\n" + common.StatusBarStyle.Render(a.status)
	}

	return s
}
