package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/postboard/app"
	"github.com/CrestNiraj12/postboard/domain"
)

var errNetwork = errors.New("Network Error")

type fakeAPI struct {
	mu sync.Mutex

	list      []domain.Post
	listErr   error
	created   domain.Post
	createErr error
	updated   *domain.Post
	updateErr error
	delStatus app.DeleteStatus
	delErr    error

	updateCalls []domain.Post
	deleteCalls []domain.PostID
}

func (f *fakeAPI) List(context.Context) ([]domain.Post, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.Post(nil), f.list...), nil
}

func (f *fakeAPI) Create(_ context.Context, d domain.Draft) (domain.Post, error) {
	if f.createErr != nil {
		return domain.Post{}, f.createErr
	}
	return f.created, nil
}

func (f *fakeAPI) Update(_ context.Context, p domain.Post) (domain.Post, error) {
	f.mu.Lock()
	f.updateCalls = append(f.updateCalls, p)
	f.mu.Unlock()
	if f.updateErr != nil {
		return domain.Post{}, f.updateErr
	}
	if f.updated != nil {
		return *f.updated, nil
	}
	return p, nil
}

func (f *fakeAPI) Delete(_ context.Context, id domain.PostID) (app.DeleteStatus, error) {
	f.mu.Lock()
	f.deleteCalls = append(f.deleteCalls, id)
	f.mu.Unlock()
	if f.delErr != nil {
		return app.DeleteStatus{}, f.delErr
	}
	return f.delStatus, nil
}

type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, api *fakeAPI) (*Posts, *fixedClock, *test.Hook) {
	t.Helper()
	clock := &fixedClock{t: epoch}
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return NewPosts(api, WithClock(clock.Now), WithLogger(logger)), clock, hook
}

func rawPost(id, userID int, title string) domain.Post {
	return domain.Post{ID: domain.PostIDFromInt(id), UserID: userID, Title: title, Body: title + " body"}
}

func assertNewestFirst(t *testing.T, posts []domain.Post) {
	t.Helper()
	for i := 1; i < len(posts); i++ {
		require.GreaterOrEqual(t, posts[i-1].DateString(), posts[i].DateString(),
			"posts %d and %d out of order", i-1, i)
	}
}

func TestNewPosts_InitialState(t *testing.T) {
	s, _, _ := newTestStore(t, &fakeAPI{})
	assert.Equal(t, StatusIdle, s.Status())
	assert.Empty(t, s.Err())
	assert.Zero(t, s.Count())
	assert.Zero(t, s.Len())
	assert.Empty(t, s.All())
}

func TestLoadAll_SynthesizesDatesAndReactions(t *testing.T) {
	api := &fakeAPI{list: []domain.Post{rawPost(1, 1, "a"), rawPost(2, 1, "b"), rawPost(3, 2, "c")}}
	s, _, _ := newTestStore(t, api)

	require.NoError(t, s.LoadAll(context.Background()))
	assert.Equal(t, StatusSucceeded, s.Status())

	p1, _ := s.ByID("1")
	p2, _ := s.ByID("2")
	p3, _ := s.ByID("3")
	assert.Equal(t, epoch.Add(-1*time.Minute), p1.Date)
	assert.Equal(t, time.Minute, p1.Date.Sub(p2.Date))
	assert.Equal(t, time.Minute, p2.Date.Sub(p3.Date))
	for _, p := range []domain.Post{p1, p2, p3} {
		assert.Equal(t, domain.Reactions{}, p.Reactions)
	}

	ids := s.IDs()
	assert.Equal(t, []domain.PostID{"1", "2", "3"}, ids)
}

func TestLoadAll_MergesWithExistingPosts(t *testing.T) {
	api := &fakeAPI{created: rawPost(101, 4, "local")}
	s, clock, _ := newTestStore(t, api)

	_, err := s.Create(context.Background(), domain.Draft{UserID: "4", Title: "local"})
	require.NoError(t, err)

	clock.Advance(time.Hour)
	api.list = []domain.Post{rawPost(1, 1, "a")}
	require.NoError(t, s.LoadAll(context.Background()))

	assert.Equal(t, 2, s.Len())
	_, ok := s.ByID("101")
	assert.True(t, ok, "load must merge, not replace")
}

func TestLoadAll_ReloadOverwritesById(t *testing.T) {
	api := &fakeAPI{list: []domain.Post{rawPost(1, 1, "old")}}
	s, _, _ := newTestStore(t, api)
	require.NoError(t, s.LoadAll(context.Background()))
	require.NoError(t, s.AddReaction("1", domain.Heart))

	api.list = []domain.Post{rawPost(1, 1, "new")}
	require.NoError(t, s.LoadAll(context.Background()))

	p, _ := s.ByID("1")
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "new", p.Title)
	assert.Zero(t, p.Reactions.Heart, "reload resets reactions")
}

func TestLoadAll_FailureKeepsCollection(t *testing.T) {
	api := &fakeAPI{list: []domain.Post{rawPost(1, 1, "a")}}
	s, _, _ := newTestStore(t, api)
	require.NoError(t, s.LoadAll(context.Background()))

	api.listErr = errNetwork
	err := s.LoadAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errNetwork)
	assert.Equal(t, StatusFailed, s.Status())
	assert.Equal(t, "Network Error", s.Err())
	assert.Equal(t, 1, s.Len())
}

type blockingAPI struct {
	fakeAPI
	entered chan struct{}
	release chan struct{}
}

func (b *blockingAPI) List(ctx context.Context) ([]domain.Post, error) {
	close(b.entered)
	<-b.release
	return b.fakeAPI.List(ctx)
}

func TestLoadAll_StatusLoadingWhileInFlight(t *testing.T) {
	api := &blockingAPI{entered: make(chan struct{}), release: make(chan struct{})}
	s := NewPosts(api)

	done := make(chan error, 1)
	go func() { done <- s.LoadAll(context.Background()) }()

	<-api.entered
	assert.Equal(t, StatusLoading, s.Status())
	close(api.release)
	require.NoError(t, <-done)
	assert.Equal(t, StatusSucceeded, s.Status())
}

func TestCreate_StampsAndInserts(t *testing.T) {
	api := &fakeAPI{created: domain.Post{ID: "101", UserID: 2, Title: "hello"}}
	s, clock, _ := newTestStore(t, api)
	clock.Advance(5 * time.Second)

	got, err := s.Create(context.Background(), domain.Draft{UserID: "2", Title: "hello"})
	require.NoError(t, err)
	assert.Equal(t, epoch.Add(5*time.Second), got.Date)

	stored, ok := s.ByID("101")
	require.True(t, ok)
	assert.Equal(t, 2, stored.UserID)
	assert.Equal(t, domain.Reactions{}, stored.Reactions)
}

func TestCreate_FailureLeavesStoreUnchanged(t *testing.T) {
	api := &fakeAPI{createErr: errNetwork}
	s, _, _ := newTestStore(t, api)

	_, err := s.Create(context.Background(), domain.Draft{Title: "x"})
	assert.ErrorIs(t, err, errNetwork)
	assert.Zero(t, s.Len())
}

func TestCreate_DuplicateIDIsReported(t *testing.T) {
	api := &fakeAPI{created: domain.Post{ID: "101", UserID: 1, Title: "first"}}
	s, _, hook := newTestStore(t, api)

	_, err := s.Create(context.Background(), domain.Draft{Title: "first"})
	require.NoError(t, err)
	api.created = domain.Post{ID: "101", UserID: 1, Title: "second"}
	_, err = s.Create(context.Background(), domain.Draft{Title: "second"})
	require.NoError(t, err)

	p, _ := s.ByID("101")
	assert.Equal(t, "first", p.Title)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestUpdate_UsesServerResult(t *testing.T) {
	api := &fakeAPI{list: []domain.Post{rawPost(7, 1, "a")}}
	s, clock, _ := newTestStore(t, api)
	require.NoError(t, s.LoadAll(context.Background()))

	clock.Advance(time.Minute)
	server := domain.Post{ID: "7", UserID: 1, Title: "from server"}
	api.updated = &server
	got, err := s.Update(context.Background(), domain.Post{ID: "7", UserID: 1, Title: "mine"})
	require.NoError(t, err)
	assert.Equal(t, "from server", got.Title)

	p, _ := s.ByID("7")
	assert.Equal(t, "from server", p.Title)
	assert.Equal(t, epoch.Add(time.Minute), p.Date)
	assert.Equal(t, 1, s.Len())
}

func TestUpdate_FallsBackToInputOnError(t *testing.T) {
	api := &fakeAPI{updateErr: errors.New("500 Internal Server Error")}
	s, clock, hook := newTestStore(t, api)
	clock.Advance(42 * time.Second)

	got, err := s.Update(context.Background(), domain.Post{ID: "7", Title: "x"})
	require.NoError(t, err)
	assert.Equal(t, domain.PostID("7"), got.ID)

	p, ok := s.ByID("7")
	require.True(t, ok)
	assert.Equal(t, "x", p.Title)
	assert.WithinDuration(t, epoch.Add(42*time.Second), p.Date, time.Millisecond)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)
}

func TestUpdate_MissingIDSkipsUpsert(t *testing.T) {
	api := &fakeAPI{updated: &domain.Post{Title: "no id"}}
	s, _, hook := newTestStore(t, api)

	_, err := s.Update(context.Background(), domain.Post{ID: "7", Title: "x"})
	require.NoError(t, err)
	assert.Zero(t, s.Len())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "Update could not complete", hook.LastEntry().Message)
	assert.ErrorIs(t, hook.LastEntry().Data[logrus.ErrorKey].(error), domain.ErrMissingID)
}

func TestDelete_StatusBranching(t *testing.T) {
	tests := []struct {
		name      string
		status    app.DeleteStatus
		wantOK    bool
		wantMsg   string
		wantCount int
	}{
		{name: "ok removes", status: app.DeleteStatus{Code: 200, Text: "OK"}, wantOK: true, wantCount: 1},
		{name: "not found keeps", status: app.DeleteStatus{Code: 404, Text: "Not Found"}, wantMsg: "404: Not Found", wantCount: 2},
		{name: "no content keeps", status: app.DeleteStatus{Code: 204, Text: "No Content"}, wantMsg: "204: No Content", wantCount: 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			api := &fakeAPI{list: []domain.Post{rawPost(3, 1, "a"), rawPost(4, 1, "b")}, delStatus: tc.status}
			s, _, hook := newTestStore(t, api)
			require.NoError(t, s.LoadAll(context.Background()))
			target, _ := s.ByID("3")

			res, err := s.Delete(context.Background(), target)
			require.NoError(t, err)
			assert.Equal(t, tc.wantOK, res.OK())
			assert.Equal(t, tc.wantMsg, res.Message)
			assert.Equal(t, tc.wantCount, s.Len())
			if tc.wantOK {
				assert.Equal(t, target, res.Post)
				_, ok := s.ByID("3")
				assert.False(t, ok)
			} else {
				require.NotNil(t, hook.LastEntry())
				assert.Equal(t, "Delete could not complete", hook.LastEntry().Message)
			}
		})
	}
}

func TestDelete_TransportErrorIsReturned(t *testing.T) {
	api := &fakeAPI{list: []domain.Post{rawPost(3, 1, "a")}, delErr: errNetwork}
	s, _, _ := newTestStore(t, api)
	require.NoError(t, s.LoadAll(context.Background()))

	_, err := s.Delete(context.Background(), domain.Post{ID: "3"})
	assert.ErrorIs(t, err, errNetwork)
	assert.Equal(t, 1, s.Len())
}

func TestForUser_FiltersAndMemoizes(t *testing.T) {
	api := &fakeAPI{list: []domain.Post{rawPost(1, 1, "a"), rawPost(2, 1, "b"), rawPost(3, 2, "c")}}
	s, _, _ := newTestStore(t, api)
	require.NoError(t, s.LoadAll(context.Background()))

	got := s.ForUser(2)
	require.Len(t, got, 1)
	assert.Equal(t, domain.PostID("3"), got[0].ID)

	byRef := s.ForUserRef("2")
	require.Len(t, byRef, 1)
	assert.Same(t, &got[0], &byRef[0], "same input must reuse the memoized slice")

	assert.Len(t, s.ForUser(1), 2)
	assert.Empty(t, s.ForUserRef("abc"))

	// A mutation invalidates the memo.
	require.NoError(t, s.AddReaction("3", domain.Rocket))
	again := s.ForUser(2)
	assert.Equal(t, 1, again[0].Reactions.Rocket)
}

func TestAddReaction(t *testing.T) {
	api := &fakeAPI{list: []domain.Post{rawPost(5, 1, "a"), rawPost(6, 1, "b")}}
	s, _, _ := newTestStore(t, api)
	require.NoError(t, s.LoadAll(context.Background()))

	require.NoError(t, s.AddReaction("5", domain.Heart))
	p5, _ := s.ByID("5")
	p6, _ := s.ByID("6")
	assert.Equal(t, domain.Reactions{Heart: 1}, p5.Reactions)
	assert.Equal(t, domain.Reactions{}, p6.Reactions)

	require.NoError(t, s.AddReaction("99", domain.Heart), "missing post is a no-op")
	assert.ErrorIs(t, s.AddReaction("5", "angry"), domain.ErrUnknownReaction)
}

func TestIncreaseCount_IndependentOfPosts(t *testing.T) {
	s, _, _ := newTestStore(t, &fakeAPI{})
	s.IncreaseCount()
	s.IncreaseCount()
	assert.Equal(t, 2, s.Count())
	assert.Zero(t, s.Len())
}

func TestSortInvariant_AcrossMixedWrites(t *testing.T) {
	api := &fakeAPI{list: []domain.Post{rawPost(1, 1, "a"), rawPost(2, 1, "b"), rawPost(3, 1, "c")}}
	s, clock, _ := newTestStore(t, api)
	require.NoError(t, s.LoadAll(context.Background()))
	assertNewestFirst(t, s.All())

	for i := 0; i < 5; i++ {
		clock.Advance(-time.Duration(i*37) * time.Second)
		api.created = rawPost(100+i, 1, fmt.Sprintf("c%d", i))
		_, err := s.Create(context.Background(), domain.Draft{Title: "c"})
		require.NoError(t, err)
		assertNewestFirst(t, s.All())
	}

	clock.Advance(time.Hour)
	_, err := s.Update(context.Background(), rawPost(2, 1, "edited"))
	require.NoError(t, err)
	all := s.All()
	assertNewestFirst(t, all)
	assert.Equal(t, domain.PostID("2"), all[0].ID)
}

func TestConcurrentOperations_LastWriteWins(t *testing.T) {
	api := &fakeAPI{list: []domain.Post{rawPost(1, 1, "a"), rawPost(2, 1, "b")}}
	s, _, _ := newTestStore(t, api)
	require.NoError(t, s.LoadAll(context.Background()))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = s.Update(context.Background(), rawPost(1+i%2, 1, fmt.Sprintf("edit-%d", i)))
			_ = s.AddReaction(domain.PostIDFromInt(1+i%2), domain.Coffee)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 2, s.Len())
	assert.Len(t, api.updateCalls, 20)
	assertNewestFirst(t, s.All())
}
