// Package store holds client-side state for posts fetched from the API.
package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/CrestNiraj12/postboard/app"
	"github.com/CrestNiraj12/postboard/domain"
)

// Status is the lifecycle of the bulk load.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Clock returns the current time.
type Clock func() time.Time

// Option configures a Posts store.
type Option func(*Posts)

// WithClock replaces the wall clock used to stamp post dates.
func WithClock(c Clock) Option {
	return func(s *Posts) { s.now = c }
}

// WithLogger sets the diagnostic channel for anomalies that do not fail
// the calling operation.
func WithLogger(l log.FieldLogger) Option {
	return func(s *Posts) { s.log = l }
}

// DeleteResult is the outcome of a delete that reached the server.
// Exactly one of Post or Message is meaningful: Post when the server
// confirmed the delete, Message ("{code}: {text}") otherwise.
type DeleteResult struct {
	Post    domain.Post
	Message string
}

// OK reports whether the result carries a deleted post.
func (r DeleteResult) OK() bool { return r.Post.ID.Valid() }

// Posts is the normalized post store. Remote calls run without holding
// the lock; each result is reconciled in a single critical section, so
// readers never observe a half-applied update.
type Posts struct {
	api app.PostService
	now Clock
	log log.FieldLogger

	mu       sync.RWMutex
	entities *EntityState[domain.PostID, domain.Post]
	status   Status
	err      string
	count    int
	version  uint64

	memoMu sync.Mutex
	memo   userMemo
}

type userMemo struct {
	valid   bool
	version uint64
	userID  int
	posts   []domain.Post
}

// NewPosts creates an empty store in the idle state.
func NewPosts(api app.PostService, opts ...Option) *Posts {
	s := &Posts{
		api:      api,
		now:      time.Now,
		log:      log.StandardLogger(),
		entities: NewEntityState(func(p domain.Post) domain.PostID { return p.ID }, newestFirst),
		status:   StatusIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newestFirst orders by date descending, then id ascending for equal dates.
func newestFirst(a, b domain.Post) int {
	if c := strings.Compare(b.DateString(), a.DateString()); c != 0 {
		return c
	}
	return strings.Compare(string(a.ID), string(b.ID))
}

// LoadAll fetches every post and merges it into the collection. The API
// carries neither dates nor reactions, so post i gets a date i+1 minutes
// before now and zeroed reactions.
func (s *Posts) LoadAll(ctx context.Context) error {
	s.mu.Lock()
	s.status = StatusLoading
	s.mu.Unlock()

	fetched, err := s.api.List(ctx)
	if err != nil {
		s.mu.Lock()
		s.status = StatusFailed
		s.err = err.Error()
		s.mu.Unlock()
		return fmt.Errorf("loading posts: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	loaded := lo.Map(fetched, func(p domain.Post, i int) domain.Post {
		p.Date = now.Add(-time.Duration(i+1) * time.Minute)
		p.Reactions = domain.Reactions{}
		return p
	})
	s.entities.UpsertMany(loaded)
	s.status = StatusSucceeded
	s.err = ""
	s.version++
	return nil
}

// Create persists a draft and inserts the server's copy. Nothing is
// inserted if the call fails.
func (s *Posts) Create(ctx context.Context, draft domain.Draft) (domain.Post, error) {
	created, err := s.api.Create(ctx, draft)
	if err != nil {
		return domain.Post{}, fmt.Errorf("creating post: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created.Date = s.now()
	created.Reactions = domain.Reactions{}
	if !s.entities.AddOne(created) {
		s.log.WithFields(log.Fields{
			"id":    created.ID,
			"title": created.Title,
		}).Warn("Create returned an id already in the store; keeping the existing post")
		return created, nil
	}
	s.version++
	return created, nil
}

// Update sends the post to the server and upserts the result. A failed
// call is not an error: the input post is kept as the local edit.
func (s *Posts) Update(ctx context.Context, post domain.Post) (domain.Post, error) {
	result, err := s.api.Update(ctx, post)
	if err != nil {
		s.log.WithFields(log.Fields{
			"id":    post.ID,
			"error": err,
		}).Debug("Update rejected upstream; keeping local edit")
		result = post
	}
	if !result.ID.Valid() {
		s.log.WithFields(log.Fields{
			log.ErrorKey: domain.ErrMissingID,
			"result":     fmt.Sprintf("%+v", result),
		}).Warn("Update could not complete")
		return result, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result.Date = s.now()
	s.entities.UpsertOne(result)
	s.version++
	return result, nil
}

// Delete removes the post once the server answers 200. Any other status
// produces a result carrying the status line instead; only a failed
// round trip is returned as an error.
func (s *Posts) Delete(ctx context.Context, post domain.Post) (DeleteResult, error) {
	status, err := s.api.Delete(ctx, post.ID)
	if err != nil {
		return DeleteResult{}, fmt.Errorf("deleting post %s: %w", post.ID, err)
	}

	res := DeleteResult{Post: post}
	if !status.OK() {
		res = DeleteResult{Message: status.String()}
	}
	if !res.OK() {
		s.log.WithFields(log.Fields{
			"id":     post.ID,
			"result": res.Message,
		}).Warn("Delete could not complete")
		return res, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entities.RemoveOne(post.ID) {
		s.version++
	}
	return res, nil
}

// AddReaction bumps one reaction counter. A missing post is a no-op.
func (s *Posts) AddReaction(id domain.PostID, kind domain.ReactionKind) error {
	if _, err := domain.ParseReactionKind(string(kind)); err != nil {
		return fmt.Errorf("reaction %q: %w", kind, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entities.UpdateOne(id, func(p *domain.Post) { _ = p.Reactions.Inc(kind) }) {
		s.version++
	}
	return nil
}

// IncreaseCount bumps the auxiliary counter. It is unrelated to posts.
func (s *Posts) IncreaseCount() {
	s.mu.Lock()
	s.count++
	s.mu.Unlock()
}

// All returns every post, newest first.
func (s *Posts) All() []domain.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entities.SelectAll()
}

// IDs returns post ids in display order.
func (s *Posts) IDs() []domain.PostID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entities.SelectIDs()
}

// ByID looks up a single post.
func (s *Posts) ByID(id domain.PostID) (domain.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entities.SelectByID(id)
}

// Len returns the number of stored posts.
func (s *Posts) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entities.Len()
}

// ForUser returns the posts written by userID, newest first. The result is
// memoized until the collection changes or a different user is asked for;
// callers must not modify it.
func (s *Posts) ForUser(userID int) []domain.Post {
	s.mu.RLock()
	version := s.version
	s.mu.RUnlock()

	s.memoMu.Lock()
	defer s.memoMu.Unlock()

	if s.memo.valid && s.memo.version == version && s.memo.userID == userID {
		return s.memo.posts
	}

	s.mu.RLock()
	version = s.version
	posts := lo.Filter(s.entities.SelectAll(), func(p domain.Post, _ int) bool {
		return p.UserID == userID
	})
	s.mu.RUnlock()

	s.memo = userMemo{valid: true, version: version, userID: userID, posts: posts}
	return posts
}

// ForUserRef is ForUser for an id taken from text, such as a route or a
// form field. An id that is not a number matches no posts.
func (s *Posts) ForUserRef(ref string) []domain.Post {
	id, err := strconv.Atoi(strings.TrimSpace(ref))
	if err != nil {
		return nil
	}
	return s.ForUser(id)
}

// Status returns the bulk load lifecycle state.
func (s *Posts) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Err returns the message of the last failed load, or "".
func (s *Posts) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Count returns the auxiliary counter.
func (s *Posts) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}
