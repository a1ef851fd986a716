package hashtagapp

import (
	"context"
	"errors"
	"fmt"

	"chirp/internal/core/errs"
	hashtagEntity "chirp/internal/core/hashtag"
	hashtagPort "chirp/internal/ports/hashtag"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxResolveAttempts bounds the find/insert/re-read loop for one tag name
const maxResolveAttempts = 3

type HashtagService struct {
	HashtagRepository hashtagPort.HashtagRepository
	Logger            *zap.Logger
}

func NewHashtagService(repo hashtagPort.HashtagRepository, logger *zap.Logger) *HashtagService {
	return &HashtagService{
		HashtagRepository: repo,
		Logger:            logger,
	}
}

// Resolve maps every distinct tag in text to its stored Hashtag, creating the
// missing ones. The result follows the order tags first appear in text.
func (s *HashtagService) Resolve(ctx context.Context, text string) ([]*hashtagEntity.Hashtag, error) {
	names := hashtagEntity.Extract(text)
	tags := make([]*hashtagEntity.Hashtag, len(names))
	if len(names) == 0 {
		return tags, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			h, err := s.resolveOne(gctx, name)
			if err != nil {
				return err
			}
			tags[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tags, nil
}

// resolveOne finds name or inserts it. Losing an insert race to a concurrent
// caller is not an error: the winner's row is read back instead.
func (s *HashtagService) resolveOne(ctx context.Context, name string) (*hashtagEntity.Hashtag, error) {
	for attempt := 1; attempt <= maxResolveAttempts; attempt++ {
		h, err := s.HashtagRepository.FindByName(ctx, name)
		if err == nil {
			return h, nil
		}
		if !errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}

		h = &hashtagEntity.Hashtag{
			ID:   uuid.Must(uuid.NewV4()),
			Name: name,
		}
		created, err := s.HashtagRepository.CreateIfAbsent(ctx, h)
		if err != nil {
			return nil, err
		}
		if created {
			return h, nil
		}
		s.Logger.Debug("hashtag insert lost race, re-reading", zap.String("name", name), zap.Int("attempt", attempt))
	}
	return nil, errs.Storage("resolve hashtag", fmt.Errorf("%q still missing after %d attempts", name, maxResolveAttempts))
}
