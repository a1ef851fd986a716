package feedapp_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"chirp/internal/adapters/database"
	"chirp/internal/adapters/database/dbtest"
	redisadapter "chirp/internal/adapters/redis"
	"chirp/internal/core/errs"
	"chirp/internal/core/feed"
	feedapp "chirp/internal/core/feed/service"
	hashtagapp "chirp/internal/core/hashtag/service"
	interactionapp "chirp/internal/core/interaction/service"
	"chirp/internal/core/post"
	postapp "chirp/internal/core/post/service"
	"chirp/internal/core/user"
	feedPort "chirp/internal/ports/feed"
	postPort "chirp/internal/ports/post"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type fixture struct {
	db           *gorm.DB
	feed         *feedapp.FeedService
	posts        *postapp.PostService
	interactions *interactionapp.InteractionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	logger := zap.NewNop()
	cache := redisadapter.NopFeedCache{}

	postRepo := database.NewPostRepositoryDatabase(db)
	feedSvc := feedapp.NewFeedService(database.NewFeedRepositoryDatabase(db), cache, logger)
	postSvc := postapp.NewPostService(postRepo,
		hashtagapp.NewHashtagService(database.NewHashtagRepositoryDatabase(db), logger),
		feedSvc, cache, logger)
	interactionSvc := interactionapp.NewInteractionService(postRepo, database.NewCommentRepositoryDatabase(db), cache, logger)

	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	clock := func() time.Time {
		n++
		return t0.Add(time.Duration(n) * time.Minute)
	}
	postSvc.Now = clock
	interactionSvc.Now = clock

	return &fixture{db: db, feed: feedSvc, posts: postSvc, interactions: interactionSvc}
}

func (f *fixture) user(t *testing.T, nickname string) string {
	t.Helper()
	u := &user.User{ID: uuid.Must(uuid.NewV4()), Email: nickname + "@example.com", Nickname: nickname, Password: "secret-hash"}
	require.NoError(t, f.db.Create(u).Error)
	return u.ID.String()
}

func TestGetFeedReturnsNewestPage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.user(t, "alice")
	b := f.user(t, "bob")

	var created []*postPort.PostDTO
	for i := 0; i < feed.PageSize+3; i++ {
		p, err := f.posts.CreatePost(ctx, a, fmt.Sprintf("post %d #n%d", i, i), nil)
		require.NoError(t, err)
		created = append(created, p)
	}
	newest := created[len(created)-1]
	for _, text := range []string{"first", "second", "third"} {
		_, err := f.interactions.AddComment(ctx, b, newest.ID, text)
		require.NoError(t, err)
	}

	posts, err := f.feed.GetFeed(ctx)
	require.NoError(t, err)
	require.Len(t, posts, feed.PageSize)

	for i, p := range posts {
		assert.Equal(t, created[len(created)-1-i].ID, p.ID)
		assert.Empty(t, p.Hashtags, "timeline entries carry no hashtags")
	}
	for i := 1; i < len(posts); i++ {
		newer, err := time.Parse(time.RFC3339Nano, posts[i-1].CreatedAt)
		require.NoError(t, err)
		older, err := time.Parse(time.RFC3339Nano, posts[i].CreatedAt)
		require.NoError(t, err)
		assert.True(t, newer.After(older), "%s should be after %s", posts[i-1].CreatedAt, posts[i].CreatedAt)
	}

	comments := posts[0].Comments
	require.Len(t, comments, 3)
	assert.Equal(t, []string{"third", "second", "first"},
		[]string{comments[0].Content, comments[1].Content, comments[2].Content})
	assert.Equal(t, "bob", comments[0].User.Nickname)
}

func TestGetFeedEmpty(t *testing.T) {
	f := newFixture(t)

	posts, err := f.feed.GetFeed(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestLikerShapes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.user(t, "alice")
	b := f.user(t, "bob")

	p, err := f.posts.CreatePost(ctx, a, "like me", nil)
	require.NoError(t, err)
	_, err = f.interactions.AddLike(ctx, b, p.ID)
	require.NoError(t, err)

	detail, err := f.feed.GetPost(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, detail.Likers, 1)
	assert.Equal(t, postPort.LikerDTO{ID: b, Nickname: "bob"}, detail.Likers[0])

	posts, err := f.feed.GetFeed(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Len(t, posts[0].Likers, 1)
	assert.Equal(t, postPort.LikerDTO{ID: b}, posts[0].Likers[0])

	// the creation echo of a retweet lists likers by id only
	rt, err := f.posts.Retweet(ctx, b, p.ID)
	require.NoError(t, err)
	_, err = f.interactions.AddLike(ctx, a, rt.ID)
	require.NoError(t, err)
	echo, err := f.feed.EchoPost(ctx, uuid.FromStringOrNil(rt.ID))
	require.NoError(t, err)
	require.Len(t, echo.Likers, 1)
	assert.Equal(t, postPort.LikerDTO{ID: a}, echo.Likers[0])
}

func TestRetweetNestsOriginalOneLevel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.user(t, "alice")
	b := f.user(t, "bob")
	c := f.user(t, "carol")

	p, err := f.posts.CreatePost(ctx, a, "with a picture", []string{"cat.png"})
	require.NoError(t, err)
	_, err = f.interactions.AddComment(ctx, c, p.ID, "cute")
	require.NoError(t, err)
	rt, err := f.posts.Retweet(ctx, b, p.ID)
	require.NoError(t, err)

	view, err := f.feed.GetPost(ctx, rt.ID)
	require.NoError(t, err)
	require.NotNil(t, view.Retweet)
	assert.Equal(t, "alice", view.Retweet.User.Nickname)
	require.Len(t, view.Retweet.Images, 1)
	assert.Equal(t, "cat.png", view.Retweet.Images[0].Src)
	require.Len(t, view.Retweet.Comments, 1)
	assert.Equal(t, "carol", view.Retweet.Comments[0].User.Nickname)

	posts, err := f.feed.GetFeed(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, rt.ID, posts[0].ID)
	require.NotNil(t, posts[0].Retweet)
	assert.Equal(t, p.ID, posts[0].Retweet.ID)
	assert.Nil(t, posts[1].Retweet)
}

func TestGetPostNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.feed.GetPost(context.Background(), uuid.Must(uuid.NewV4()).String())
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = f.feed.GetPost(context.Background(), "42")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

// stubCache serves a fixed page and records writes
type stubCache struct {
	page   []*postPort.PostDTO
	hit    bool
	getErr error
	sets   int
}

func (c *stubCache) Get(ctx context.Context) ([]*postPort.PostDTO, int64, bool, error) {
	return c.page, 0, c.hit, c.getErr
}

func (c *stubCache) Set(ctx context.Context, gen int64, posts []*postPort.PostDTO) error {
	c.sets++
	c.page = posts
	return nil
}

func (c *stubCache) Invalidate(ctx context.Context) error { return nil }

func TestGetFeedServedFromCache(t *testing.T) {
	f := newFixture(t)
	cache := &stubCache{page: []*postPort.PostDTO{{ID: "cached"}}, hit: true}
	f.feed.FeedCache = cache

	posts, err := f.feed.GetFeed(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "cached", posts[0].ID)
	assert.Equal(t, 0, cache.sets)
}

func TestGetFeedFallsBackWhenCacheFails(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "alice")
	_, err := f.posts.CreatePost(context.Background(), a, "hello", nil)
	require.NoError(t, err)

	cache := &stubCache{getErr: errors.New("redis down")}
	f.feed.FeedCache = cache

	posts, err := f.feed.GetFeed(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, 0, cache.sets, "without a known generation nothing is cached")
}

// memCache keeps pages per generation the way FeedCacheRedis does
type memCache struct {
	mu    sync.Mutex
	gen   int64
	pages map[int64][]*postPort.PostDTO
}

func (c *memCache) Get(ctx context.Context) ([]*postPort.PostDTO, int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	page, ok := c.pages[c.gen]
	return page, c.gen, ok, nil
}

func (c *memCache) Set(ctx context.Context, gen int64, posts []*postPort.PostDTO) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pages == nil {
		c.pages = map[int64][]*postPort.PostDTO{}
	}
	c.pages[gen] = posts
	return nil
}

func (c *memCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	return nil
}

// afterLatest runs a hook once, right after the store returns the page
type afterLatest struct {
	feedPort.FeedRepository
	once sync.Once
	hook func()
}

func (r *afterLatest) Latest(ctx context.Context, limit int) ([]*post.Post, error) {
	posts, err := r.FeedRepository.Latest(ctx, limit)
	r.once.Do(r.hook)
	return posts, err
}

func TestGetFeedDoesNotCachePageOverlappingAMutation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.user(t, "alice")
	_, err := f.posts.CreatePost(ctx, a, "first", nil)
	require.NoError(t, err)

	cache := &memCache{}
	f.posts.FeedCache = cache
	repo := &afterLatest{FeedRepository: database.NewFeedRepositoryDatabase(f.db)}
	repo.hook = func() {
		_, err := f.posts.CreatePost(ctx, a, "second", nil)
		require.NoError(t, err)
	}
	svc := feedapp.NewFeedService(repo, cache, zap.NewNop())

	posts, err := svc.GetFeed(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1, "the first read saw the store before the create")

	posts, err = svc.GetFeed(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "second", posts[0].Content)

	posts, err = svc.GetFeed(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 2, "served from the cache of the new generation")
}

func TestStorageFailureSurfacesAsStorageError(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	}), database.GormConfig())
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).WillReturnError(errors.New("connection reset by peer"))

	svc := feedapp.NewFeedService(database.NewFeedRepositoryDatabase(db), redisadapter.NopFeedCache{}, zap.NewNop())
	_, err = svc.GetFeed(context.Background())
	assert.ErrorIs(t, err, errs.ErrStorage)
	assert.NoError(t, mock.ExpectationsWereMet())
}
