package postapp_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"chirp/internal/adapters/database"
	"chirp/internal/adapters/database/dbtest"
	redisadapter "chirp/internal/adapters/redis"
	feedapp "chirp/internal/core/feed/service"
	hashtagapp "chirp/internal/core/hashtag/service"
	interactionapp "chirp/internal/core/interaction/service"
	postapp "chirp/internal/core/post/service"
	"chirp/internal/core/user"
	postPort "chirp/internal/ports/post"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// countingCache records invalidations and never holds anything
type countingCache struct {
	redisadapter.NopFeedCache
	mu          sync.Mutex
	invalidated int
}

func (c *countingCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	return nil
}

func (c *countingCache) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invalidated
}

type engine struct {
	db           *gorm.DB
	posts        *postapp.PostService
	feed         *feedapp.FeedService
	interactions *interactionapp.InteractionService
	cache        *countingCache
}

func newEngine(t *testing.T) *engine {
	t.Helper()
	db := dbtest.Open(t)
	logger := zap.NewNop()
	cache := &countingCache{}

	postRepo := database.NewPostRepositoryDatabase(db)
	feedSvc := feedapp.NewFeedService(database.NewFeedRepositoryDatabase(db), cache, logger)
	hashtagSvc := hashtagapp.NewHashtagService(database.NewHashtagRepositoryDatabase(db), logger)
	postSvc := postapp.NewPostService(postRepo, hashtagSvc, feedSvc, cache, logger)
	interactionSvc := interactionapp.NewInteractionService(postRepo, database.NewCommentRepositoryDatabase(db), cache, logger)

	clock := steppingClock()
	postSvc.Now = clock
	interactionSvc.Now = clock

	return &engine{db: db, posts: postSvc, feed: feedSvc, interactions: interactionSvc, cache: cache}
}

// steppingClock returns a clock that advances one second per call
func steppingClock() func() time.Time {
	var mu sync.Mutex
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		n++
		return t0.Add(time.Duration(n) * time.Second)
	}
}

func (e *engine) user(t *testing.T, nickname string) string {
	t.Helper()
	u := &user.User{
		ID:       uuid.Must(uuid.NewV4()),
		Email:    nickname + "@example.com",
		Nickname: nickname,
		Password: "x",
	}
	require.NoError(t, e.db.Create(u).Error)
	return u.ID.String()
}

func (e *engine) post(t *testing.T, authorID, content string, images ...string) *postPort.PostDTO {
	t.Helper()
	p, err := e.posts.CreatePost(context.Background(), authorID, content, images)
	require.NoError(t, err)
	return p
}

func (e *engine) count(t *testing.T, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}
