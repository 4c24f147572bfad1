package feed

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/postboard/app"
	"github.com/CrestNiraj12/postboard/domain"
	"github.com/CrestNiraj12/postboard/store"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type stubPosts struct {
	list    []domain.Post
	listErr error
}

func (s stubPosts) List(context.Context) ([]domain.Post, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]domain.Post(nil), s.list...), nil
}

func (stubPosts) Create(_ context.Context, d domain.Draft) (domain.Post, error) {
	return domain.Post{ID: "101", Title: d.Title, Body: d.Body}, nil
}

func (stubPosts) Update(_ context.Context, p domain.Post) (domain.Post, error) {
	return p, nil
}

func (stubPosts) Delete(context.Context, domain.PostID) (app.DeleteStatus, error) {
	return app.DeleteStatus{Code: http.StatusOK, Text: "OK"}, nil
}

func samplePosts() []domain.Post {
	return []domain.Post{
		{ID: "1", UserID: 1, Title: "first", Body: "alpha"},
		{ID: "2", UserID: 2, Title: "second", Body: "beta"},
		{ID: "3", UserID: 1, Title: "third", Body: "gamma"},
	}
}

// loadedModel returns a feed over a store holding samplePosts. Load order
// gives post 1 the newest date, so the list reads 1, 2, 3.
func loadedModel(t *testing.T) Model {
	t.Helper()
	posts := store.NewPosts(stubPosts{list: samplePosts()}, store.WithClock(func() time.Time { return testNow }))
	if err := posts.LoadAll(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	m := New(posts, 0)
	m.now = func() time.Time { return testNow }
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = m.Update(PostsLoadedMsg{})
	return m
}

func failingModel() Model {
	posts := store.NewPosts(stubPosts{listErr: errors.New("Network Error")})
	return New(posts, 0)
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}
