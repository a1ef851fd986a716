package postapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chirp/internal/core/errs"
	hashtagEntity "chirp/internal/core/hashtag"
	postEntity "chirp/internal/core/post"
	feedPort "chirp/internal/ports/feed"
	postPort "chirp/internal/ports/post"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// HashtagResolver maps post text to stored hashtags
type HashtagResolver interface {
	Resolve(ctx context.Context, text string) ([]*hashtagEntity.Hashtag, error)
}

// PostViewer renders the view returned after a post is created
type PostViewer interface {
	EchoPost(ctx context.Context, id uuid.UUID) (*postPort.PostDTO, error)
}

type PostService struct {
	PostRepository postPort.PostRepository
	Hashtags       HashtagResolver
	Viewer         PostViewer
	FeedCache      feedPort.FeedCache
	Logger         *zap.Logger
	Now            func() time.Time
}

func NewPostService(
	postRepo postPort.PostRepository,
	hashtags HashtagResolver,
	viewer PostViewer,
	cache feedPort.FeedCache,
	logger *zap.Logger,
) *PostService {
	return &PostService{
		PostRepository: postRepo,
		Hashtags:       hashtags,
		Viewer:         viewer,
		FeedCache:      cache,
		Logger:         logger,
		Now:            time.Now,
	}
}

// CreatePost stores a new original post with its images and hashtags.
// Post, image rows and hashtag links are written in one transaction.
func (s *PostService) CreatePost(ctx context.Context, authorID, content string, imageSrcs []string) (*postPort.PostDTO, error) {
	uid, err := uuid.FromString(authorID)
	if err != nil {
		return nil, errs.Validation("invalid author id")
	}
	if strings.TrimSpace(content) == "" {
		return nil, errs.Validation("content is required")
	}

	tags, err := s.Hashtags.Resolve(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("resolve hashtags: %w", err)
	}
	tagIDs := make([]uuid.UUID, 0, len(tags))
	for _, h := range tags {
		tagIDs = append(tagIDs, h.ID)
	}

	now := s.Now()
	p := &postEntity.Post{
		ID:        uuid.Must(uuid.NewV4()),
		Content:   content,
		UserID:    uid,
		CreatedAt: now,
	}
	for _, src := range imageSrcs {
		if strings.TrimSpace(src) == "" {
			continue
		}
		p.Images = append(p.Images, postEntity.Image{
			ID:        uuid.Must(uuid.NewV4()),
			Src:       src,
			CreatedAt: now,
		})
	}

	if err := s.PostRepository.CreateWithAttachments(ctx, p, tagIDs); err != nil {
		s.Logger.Error("❌ failed to create post", zap.String("userID", authorID), zap.Error(err))
		return nil, err
	}
	s.Logger.Info("✅ created post",
		zap.String("postID", p.ID.String()),
		zap.String("userID", authorID),
		zap.Int("images", len(p.Images)),
		zap.Int("hashtags", len(tagIDs)))

	s.invalidateFeed(ctx)
	return s.Viewer.EchoPost(ctx, p.ID)
}

// Retweet reposts targetPostID for actingUserID. A retweet of a retweet is
// redirected to the original, so retweets never chain.
func (s *PostService) Retweet(ctx context.Context, actingUserID, targetPostID string) (*postPort.PostDTO, error) {
	uid, err := uuid.FromString(actingUserID)
	if err != nil {
		return nil, errs.Validation("invalid user id")
	}
	targetID, err := uuid.FromString(targetPostID)
	if err != nil {
		return nil, fmt.Errorf("post %q: %w", targetPostID, errs.ErrNotFound)
	}

	target, err := s.PostRepository.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target.UserID == uid {
		return nil, fmt.Errorf("cannot retweet your own post: %w", errs.ErrForbidden)
	}

	original := target
	if target.IsRetweet() {
		original, err = s.PostRepository.FindByID(ctx, *target.RetweetID)
		if errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("retweeted post was deleted: %w", errs.ErrNotFound)
		}
		if err != nil {
			return nil, err
		}
		if original.UserID == uid {
			return nil, fmt.Errorf("cannot retweet a retweet of your own post: %w", errs.ErrForbidden)
		}
	}

	_, err = s.PostRepository.FindRetweet(ctx, uid, original.ID)
	if err == nil {
		return nil, fmt.Errorf("already retweeted: %w", errs.ErrConflict)
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	originalID := original.ID
	retweet := &postEntity.Post{
		ID:        uuid.Must(uuid.NewV4()),
		Content:   postEntity.RetweetContent,
		UserID:    uid,
		RetweetID: &originalID,
		CreatedAt: s.Now(),
	}
	// the unique (user_id, retweet_id) index catches a concurrent duplicate
	if err := s.PostRepository.CreateRetweet(ctx, retweet); err != nil {
		return nil, err
	}
	s.Logger.Info("🔁 retweeted",
		zap.String("postID", retweet.ID.String()),
		zap.String("originalID", originalID.String()),
		zap.String("userID", actingUserID))

	s.invalidateFeed(ctx)
	return s.Viewer.EchoPost(ctx, retweet.ID)
}

// DeletePost removes postID when actingUserID owns it. Deleting a post that
// does not exist or belongs to someone else succeeds without effect.
func (s *PostService) DeletePost(ctx context.Context, actingUserID, postID string) error {
	uid, err := uuid.FromString(actingUserID)
	if err != nil {
		return errs.Validation("invalid user id")
	}
	pid, err := uuid.FromString(postID)
	if err != nil {
		return nil
	}

	deleted, err := s.PostRepository.DeleteOwned(ctx, pid, uid)
	if err != nil {
		return err
	}
	if deleted {
		s.Logger.Info("🗑️ deleted post", zap.String("postID", postID), zap.String("userID", actingUserID))
		s.invalidateFeed(ctx)
	}
	return nil
}

func (s *PostService) invalidateFeed(ctx context.Context) {
	if err := s.FeedCache.Invalidate(ctx); err != nil {
		s.Logger.Warn("⚠️ could not invalidate feed cache", zap.Error(err))
	}
}
