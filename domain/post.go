package domain

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the ISO-8601 form used for post dates on the wire and in
// sort keys. Fixed width, so lexicographic order matches chronological order.
const DateLayout = "2006-01-02T15:04:05.000Z"

// PostID identifies a post. The API may send ids as numbers or strings;
// both are kept in their canonical text form.
type PostID string

// Valid reports whether the id is set.
func (id PostID) Valid() bool { return id != "" }

func (id PostID) String() string { return string(id) }

// PostIDFromInt converts a numeric server id.
func PostIDFromInt(n int) PostID { return PostID(strconv.Itoa(n)) }

// Post is a single blog post held in the store.
type Post struct {
	ID        PostID
	UserID    int
	Title     string
	Body      string
	Date      time.Time
	Reactions Reactions
}

// DateString formats the post date the way the API and sort order expect.
func (p Post) DateString() string {
	if p.Date.IsZero() {
		return ""
	}
	return p.Date.UTC().Format(DateLayout)
}

// Draft is a post that has not been persisted yet. UserID is kept as the
// user typed it and coerced when the server echoes it back.
type Draft struct {
	UserID string
	Title  string
	Body   string
}

// Validate checks the fields a writer must fill in.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyTitle
	}
	if _, err := strconv.Atoi(strings.TrimSpace(d.UserID)); err != nil {
		return ErrInvalidAuthor
	}
	if strings.TrimSpace(d.Body) == "" {
		return ErrEmptyBody
	}
	return nil
}

// ApplyTo copies the draft's fields onto an existing post. The draft must
// be valid; id, date and reactions are left alone.
func (d Draft) ApplyTo(p Post) Post {
	p.Title = strings.TrimSpace(d.Title)
	p.Body = strings.TrimSpace(d.Body)
	if id, err := strconv.Atoi(strings.TrimSpace(d.UserID)); err == nil {
		p.UserID = id
	}
	return p
}

// DraftOf returns the editable fields of p.
func DraftOf(p Post) Draft {
	return Draft{UserID: strconv.Itoa(p.UserID), Title: p.Title, Body: p.Body}
}
