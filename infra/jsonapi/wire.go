package jsonapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/CrestNiraj12/postboard/domain"
)

// wirePost is the API's post record. Only id, userId, title and body come
// from the server; date and reactions travel on writes so an echoing
// server hands them back.
type wirePost struct {
	ID        flexID            `json:"id,omitempty"`
	UserID    flexInt           `json:"userId"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Date      string            `json:"date,omitempty"`
	Reactions *domain.Reactions `json:"reactions,omitempty"`
}

// flexID accepts a JSON number or string.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a number or string: %w", err)
	}
	*f = flexID(n.String())
	return nil
}

func (f flexID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.Atoi(string(f)); err == nil {
		return []byte(strconv.Itoa(n)), nil
	}
	return json.Marshal(string(f))
}

// flexInt accepts a JSON number or a numeric string; form fields send
// user ids as strings.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		*f = 0
		return nil
	}
	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*f = 0
			return nil
		}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("userId %q is not an integer", raw)
	}
	*f = flexInt(n)
	return nil
}

func fromDomain(p domain.Post) wirePost {
	w := wirePost{
		ID:     flexID(p.ID),
		UserID: flexInt(p.UserID),
		Title:  p.Title,
		Body:   p.Body,
		Date:   p.DateString(),
	}
	r := p.Reactions
	w.Reactions = &r
	return w
}

func (w wirePost) toDomain() domain.Post {
	p := domain.Post{
		ID:     domain.PostID(w.ID),
		UserID: int(w.UserID),
		Title:  w.Title,
		Body:   w.Body,
	}
	if w.Date != "" {
		if t, err := time.Parse(time.RFC3339Nano, w.Date); err == nil {
			p.Date = t
		}
	}
	if w.Reactions != nil {
		p.Reactions = *w.Reactions
	}
	return p
}

// decodePost decodes a single record. With requireID set, a record
// without an id is rejected.
func decodePost(data []byte, requireID bool) (domain.Post, error) {
	var w wirePost
	if err := json.Unmarshal(data, &w); err != nil {
		return domain.Post{}, fmt.Errorf("%w: %v", domain.ErrInvalidPost, err)
	}
	if requireID && w.ID == "" {
		return domain.Post{}, fmt.Errorf("%w: missing id", domain.ErrInvalidPost)
	}
	return w.toDomain(), nil
}

func decodePosts(data []byte) ([]domain.Post, error) {
	var ws []wirePost
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPost, err)
	}
	posts := make([]domain.Post, 0, len(ws))
	for i, w := range ws {
		if w.ID == "" {
			return nil, fmt.Errorf("%w: record %d has no id", domain.ErrInvalidPost, i)
		}
		posts = append(posts, w.toDomain())
	}
	return posts, nil
}

// draftBody is what a create sends. userId goes out as a number when it
// parses as one, so the server can echo an integer back.
func draftBody(d domain.Draft) map[string]any {
	var userID any = strings.TrimSpace(d.UserID)
	if n, err := strconv.Atoi(strings.TrimSpace(d.UserID)); err == nil {
		userID = n
	}
	return map[string]any{
		"userId": userID,
		"title":  d.Title,
		"body":   d.Body,
	}
}
