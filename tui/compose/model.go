package compose

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/postboard/domain"
	"github.com/CrestNiraj12/postboard/infra/editor"
)

type mode int

const (
	editorMode mode = iota
	inlineMode
)

type field int

const (
	titleField field = iota
	authorField
	bodyField
	fieldCount
)

// DoneMsg is sent when composing is complete (submitted or cancelled).
type DoneMsg struct {
	Draft     domain.Draft
	Original  domain.Post // Post being edited; zero for new posts
	IsEdit    bool
	Cancelled bool
	Err       error
}

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	tmpPath string
	err     error
}

// Model holds the state for the compose view.
type Model struct {
	mode     mode
	editor   *editor.EnvEditor
	status   string
	err      error
	title    textinput.Model
	author   textinput.Model
	body     textarea.Model
	focus    field
	isEdit   bool
	original domain.Post
	initial  domain.Draft
}

// NewEditor creates a compose model that opens $EDITOR via tea.Exec.
func NewEditor(ed *editor.EnvEditor) Model {
	return Model{
		mode:   editorMode,
		editor: ed,
		status: "Opening editor...",
	}
}

// NewEditorFor opens $EDITOR on an existing post.
func NewEditorFor(ed *editor.EnvEditor, post domain.Post) Model {
	m := NewEditor(ed)
	m.isEdit = true
	m.original = post
	m.initial = domain.DraftOf(post)
	return m
}

// NewInline creates a compose model with inline title, author and body
// inputs.
func NewInline() Model {
	return newInline(domain.Draft{})
}

// NewInlineFor creates an inline compose model prefilled from post.
func NewInlineFor(post domain.Post) Model {
	m := newInline(domain.DraftOf(post))
	m.isEdit = true
	m.original = post
	return m
}

func newInline(d domain.Draft) Model {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 120
	title.Width = 64
	title.SetValue(d.Title)
	title.Focus()

	author := textinput.New()
	author.Placeholder = "User id, e.g. 1"
	author.CharLimit = 10
	author.Width = 16
	author.SetValue(d.UserID)

	body := textarea.New()
	body.Placeholder = "What's on your mind?"
	body.CharLimit = 2000
	body.SetWidth(72)
	body.SetHeight(6)
	body.SetValue(d.Body)

	return Model{
		mode:    inlineMode,
		title:   title,
		author:  author,
		body:    body,
		initial: d,
	}
}

// Init returns the initial command for the active mode.
func (m Model) Init() tea.Cmd {
	switch m.mode {
	case editorMode:
		return m.launchEditor()
	case inlineMode:
		return textinput.Blink
	}
	return nil
}

// IsEdit reports whether the model edits an existing post.
func (m Model) IsEdit() bool {
	return m.isEdit
}

// launchEditor prepares the editor command and uses tea.ExecProcess so
// Bubble Tea releases the terminal while the editor runs.
func (m *Model) launchEditor() tea.Cmd {
	text := editor.Text{Title: m.initial.Title, Author: m.initial.UserID, Body: m.initial.Body}
	cmd, tmpPath, err := m.editor.Cmd(text)
	if err != nil {
		return done(DoneMsg{Err: fmt.Errorf("preparing editor: %w", err), IsEdit: m.isEdit})
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{tmpPath: tmpPath, err: err}
	})
}

// Update handles messages for the compose view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case editorFinishedMsg:
		return m, done(m.finishEditor(msg))

	case tea.KeyMsg:
		if m.mode != inlineMode {
			break
		}

		switch msg.String() {
		case "esc":
			return m, done(m.cancelled())

		case "tab", "shift+tab":
			step := field(1)
			if msg.String() == "shift+tab" {
				step = fieldCount - 1
			}
			return m, m.setFocus((m.focus + step) % fieldCount)

		case "ctrl+s":
			d := m.draft()
			if d == m.initial {
				return m, done(m.cancelled())
			}
			if err := d.Validate(); err != nil {
				m.err = err
				return m, nil
			}
			return m, done(DoneMsg{Draft: d, Original: m.original, IsEdit: m.isEdit})
		}

		m.err = nil
		return m.updateFocused(msg)
	}

	if m.mode == inlineMode {
		return m.updateFocused(msg)
	}
	return m, nil
}

// finishEditor turns the edited temp file into a DoneMsg. An empty title
// or an unchanged text cancels.
func (m Model) finishEditor(msg editorFinishedMsg) DoneMsg {
	if msg.err != nil {
		return DoneMsg{Err: fmt.Errorf("editor: %w", msg.err), IsEdit: m.isEdit, Original: m.original}
	}

	text, err := m.editor.ReadText(msg.tmpPath)
	if err != nil {
		return DoneMsg{Err: err, IsEdit: m.isEdit, Original: m.original}
	}

	d := domain.Draft{UserID: text.Author, Title: text.Title, Body: text.Body}
	if d.Title == "" || d == m.initial {
		return m.cancelled()
	}
	if err := d.Validate(); err != nil {
		return DoneMsg{Err: err, IsEdit: m.isEdit, Original: m.original}
	}
	return DoneMsg{Draft: d, Original: m.original, IsEdit: m.isEdit}
}

func (m Model) cancelled() DoneMsg {
	return DoneMsg{Cancelled: true, IsEdit: m.isEdit, Original: m.original}
}

func (m Model) draft() domain.Draft {
	return domain.Draft{
		UserID: m.author.Value(),
		Title:  m.title.Value(),
		Body:   m.body.Value(),
	}
}

func (m *Model) setFocus(f field) tea.Cmd {
	m.focus = f
	m.title.Blur()
	m.author.Blur()
	m.body.Blur()
	switch f {
	case titleField:
		return m.title.Focus()
	case authorField:
		return m.author.Focus()
	default:
		return m.body.Focus()
	}
}

func (m Model) updateFocused(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case titleField:
		m.title, cmd = m.title.Update(msg)
	case authorField:
		m.author, cmd = m.author.Update(msg)
	default:
		m.body, cmd = m.body.Update(msg)
	}
	return m, cmd
}

// done wraps a DoneMsg into a tea.Cmd for immediate delivery.
func done(msg DoneMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}
