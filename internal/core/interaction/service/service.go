package interactionapp

import (
	"context"
	"fmt"
	"strings"
	"time"

	commentEntity "chirp/internal/core/comment"
	"chirp/internal/core/errs"
	feedapp "chirp/internal/core/feed/service"
	commentPort "chirp/internal/ports/comment"
	feedPort "chirp/internal/ports/feed"
	postPort "chirp/internal/ports/post"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// InteractionService handles likes and comments on existing posts
type InteractionService struct {
	PostRepository    postPort.PostRepository
	CommentRepository commentPort.CommentRepository
	FeedCache         feedPort.FeedCache
	Logger            *zap.Logger
	Now               func() time.Time
}

func NewInteractionService(
	postRepo postPort.PostRepository,
	commentRepo commentPort.CommentRepository,
	cache feedPort.FeedCache,
	logger *zap.Logger,
) *InteractionService {
	return &InteractionService{
		PostRepository:    postRepo,
		CommentRepository: commentRepo,
		FeedCache:         cache,
		Logger:            logger,
		Now:               time.Now,
	}
}

// AddLike makes userID a liker of postID. Liking twice is not an error.
func (s *InteractionService) AddLike(ctx context.Context, userID, postID string) (*postPort.LikeDTO, error) {
	uid, pid, err := s.target(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if err := s.PostRepository.AddLiker(ctx, pid, uid); err != nil {
		return nil, err
	}
	s.invalidateFeed(ctx)
	return &postPort.LikeDTO{PostID: pid.String(), UserID: uid.String()}, nil
}

// RemoveLike drops the like of userID on postID, if there is one.
func (s *InteractionService) RemoveLike(ctx context.Context, userID, postID string) (*postPort.LikeDTO, error) {
	uid, pid, err := s.target(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if err := s.PostRepository.RemoveLiker(ctx, pid, uid); err != nil {
		return nil, err
	}
	s.invalidateFeed(ctx)
	return &postPort.LikeDTO{PostID: pid.String(), UserID: uid.String()}, nil
}

// AddComment stores a comment on postID and returns it with its author.
func (s *InteractionService) AddComment(ctx context.Context, userID, postID, content string) (*postPort.CommentDTO, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errs.Validation("content is required")
	}
	uid, pid, err := s.target(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	c := &commentEntity.Comment{
		ID:        uuid.Must(uuid.NewV4()),
		Content:   content,
		PostID:    pid,
		UserID:    uid,
		CreatedAt: s.Now(),
	}
	if err := s.CommentRepository.Create(ctx, c); err != nil {
		s.Logger.Error("❌ failed to create comment", zap.String("postID", postID), zap.Error(err))
		return nil, err
	}
	s.invalidateFeed(ctx)

	full, err := s.CommentRepository.FindByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return feedapp.CommentDTO(full), nil
}

// target parses both ids and checks that the post exists
func (s *InteractionService) target(ctx context.Context, userID, postID string) (uuid.UUID, uuid.UUID, error) {
	uid, err := uuid.FromString(userID)
	if err != nil {
		return uuid.Nil, uuid.Nil, errs.Validation("invalid user id")
	}
	pid, err := uuid.FromString(postID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("post %q: %w", postID, errs.ErrNotFound)
	}
	exists, err := s.PostRepository.Exists(ctx, pid)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if !exists {
		return uuid.Nil, uuid.Nil, fmt.Errorf("post %s: %w", postID, errs.ErrNotFound)
	}
	return uid, pid, nil
}

func (s *InteractionService) invalidateFeed(ctx context.Context) {
	if err := s.FeedCache.Invalidate(ctx); err != nil {
		s.Logger.Warn("⚠️ could not invalidate feed cache", zap.Error(err))
	}
}
