package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// EnvEditor prepares an external editor command using $VISUAL or $EDITOR
// (fallback: "vi"). It does not run the editor itself: callers hand the
// returned *exec.Cmd to tea.ExecProcess so Bubble Tea releases the terminal.
type EnvEditor struct{}

// NewEnvEditor creates an EnvEditor.
func NewEnvEditor() *EnvEditor {
	return &EnvEditor{}
}

const instructionComment = `<!--
postboard: write your post below.

- The first line is the title and the "Author:" line holds the user id.
- Everything after the blank line is the body.
- SAVE and EXIT to submit (e.g., :wq in vi).
- Leaving the title empty or making NO CHANGES cancels.
-->
`

// Text is the part of a post a writer edits.
type Text struct {
	Title  string
	Author string
	Body   string
}

const authorPrefix = "Author:"

func (t Text) render() string {
	return t.Title + "\n" + authorPrefix + " " + t.Author + "\n\n" + t.Body
}

// Cmd writes t to a temp file and prepares the editor command for it.
func (e *EnvEditor) Cmd(t Text) (*exec.Cmd, string, error) {
	editorCmd := os.Getenv("VISUAL")
	if editorCmd == "" {
		editorCmd = os.Getenv("EDITOR")
	}
	if editorCmd == "" {
		editorCmd = "vi"
	}

	tmpFile, err := os.CreateTemp("", "postboard-*.md")
	if err != nil {
		return nil, "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer tmpFile.Close()

	if _, err := tmpFile.WriteString(instructionComment + t.render()); err != nil {
		os.Remove(tmpPath)
		return nil, "", fmt.Errorf("writing to temp file: %w", err)
	}

	cmd := exec.Command(editorCmd, tmpPath)
	return cmd, tmpPath, nil
}

// ReadText reads the temp file back, removes it, and splits title from body.
func (e *EnvEditor) ReadText(path string) (Text, error) {
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return Text{}, fmt.Errorf("reading temp file: %w", err)
	}
	return parseText(string(data)), nil
}

func parseText(content string) Text {
	if idx := strings.Index(content, "-->"); idx != -1 {
		content = content[idx+3:]
	}
	content = strings.TrimLeft(content, "\r\n")
	title, rest, _ := strings.Cut(content, "\n")
	t := Text{Title: strings.TrimSpace(title)}

	first, body, _ := strings.Cut(rest, "\n")
	if author, ok := strings.CutPrefix(strings.TrimSpace(first), authorPrefix); ok {
		t.Author = strings.TrimSpace(author)
		rest = body
	}
	t.Body = strings.TrimSpace(rest)
	return t
}
