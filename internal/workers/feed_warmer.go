package workers

import (
	"context"
	"time"

	postPort "chirp/internal/ports/post"

	"go.uber.org/zap"
)

// FeedLoader is the part of the feed service the warmer drives
type FeedLoader interface {
	GetFeed(ctx context.Context) ([]*postPort.PostDTO, error)
}

// FeedWarmer keeps the cached newest page populated so readers rarely hit
// the store after a mutation invalidated it.
type FeedWarmer struct {
	Feed     FeedLoader
	Interval time.Duration
	Logger   *zap.Logger
}

func NewFeedWarmer(feed FeedLoader, interval time.Duration, logger *zap.Logger) *FeedWarmer {
	return &FeedWarmer{
		Feed:     feed,
		Interval: interval,
		Logger:   logger,
	}
}

// Run warms once immediately and then every Interval until ctx is done
func (w *FeedWarmer) Run(ctx context.Context) {
	w.Logger.Info("🚀 FeedWarmer started", zap.Duration("interval", w.Interval))
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		w.Warm(ctx)
		select {
		case <-ctx.Done():
			w.Logger.Info("🛑 FeedWarmer stopped")
			return
		case <-ticker.C:
		}
	}
}

// Warm loads the feed once; the feed service refills the cache on a miss
func (w *FeedWarmer) Warm(ctx context.Context) {
	posts, err := w.Feed.GetFeed(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.Logger.Warn("⚠️ could not warm feed cache", zap.Error(err))
		}
		return
	}
	w.Logger.Debug("feed cache warm", zap.Int("posts", len(posts)))
}
