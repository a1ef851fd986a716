package feedapp

import (
	"context"
	"fmt"

	"chirp/internal/core/errs"
	"chirp/internal/core/feed"
	feedPort "chirp/internal/ports/feed"
	postPort "chirp/internal/ports/post"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// FeedService assembles read views. It never writes to the store.
type FeedService struct {
	FeedRepository feedPort.FeedRepository
	FeedCache      feedPort.FeedCache
	Logger         *zap.Logger
}

func NewFeedService(feedRepo feedPort.FeedRepository, cache feedPort.FeedCache, logger *zap.Logger) *FeedService {
	return &FeedService{
		FeedRepository: feedRepo,
		FeedCache:      cache,
		Logger:         logger,
	}
}

// GetPost returns the detail view of one post
func (s *FeedService) GetPost(ctx context.Context, postID string) (*postPort.PostDTO, error) {
	id, err := uuid.FromString(postID)
	if err != nil {
		return nil, fmt.Errorf("post %q: %w", postID, errs.ErrNotFound)
	}
	p, err := s.FeedRepository.FindDetailed(ctx, id)
	if err != nil {
		return nil, err
	}
	return hydrateDetail(p), nil
}

// EchoPost returns the view sent back right after a post or retweet is created
func (s *FeedService) EchoPost(ctx context.Context, id uuid.UUID) (*postPort.PostDTO, error) {
	p, err := s.FeedRepository.FindDetailed(ctx, id)
	if err != nil {
		return nil, err
	}
	return hydrateEcho(p), nil
}

// GetFeed returns the newest feed.PageSize posts, newest first
func (s *FeedService) GetFeed(ctx context.Context) ([]*postPort.PostDTO, error) {
	// the generation is read before the store so a mutation committed
	// while the page is built makes this fill unreachable
	cached, gen, ok, err := s.FeedCache.Get(ctx)
	cacheable := err == nil
	if err != nil {
		s.Logger.Warn("⚠️ feed cache read failed, loading from store", zap.Error(err))
	} else if ok {
		return cached, nil
	}

	posts, err := s.FeedRepository.Latest(ctx, feed.PageSize)
	if err != nil {
		return nil, err
	}

	views := make([]*postPort.PostDTO, 0, len(posts))
	for _, p := range posts {
		views = append(views, hydrateTimeline(p))
	}

	if cacheable {
		if err := s.FeedCache.Set(ctx, gen, views); err != nil {
			s.Logger.Warn("⚠️ could not cache feed", zap.Int64("gen", gen), zap.Error(err))
		}
	}
	return views, nil
}
