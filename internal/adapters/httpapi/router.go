package httpapi

import (
	"context"

	"chirp/internal/adapters/httpapi/middleware"
	"chirp/internal/adapters/storage"
	postPort "chirp/internal/ports/post"
	storagePort "chirp/internal/ports/storage"
	userPort "chirp/internal/ports/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Inbound ports the controllers depend on
type UserUseCase interface {
	LoginUser(ctx context.Context, email, password string) (*userPort.LoginResponse, error)
	RegisterUser(ctx context.Context, email, nickname, password string) (*userPort.UserDTO, error)
}

type PostUseCase interface {
	CreatePost(ctx context.Context, authorID, content string, imageSrcs []string) (*postPort.PostDTO, error)
	Retweet(ctx context.Context, actingUserID, targetPostID string) (*postPort.PostDTO, error)
	DeletePost(ctx context.Context, actingUserID, postID string) error
}

type InteractionUseCase interface {
	AddLike(ctx context.Context, userID, postID string) (*postPort.LikeDTO, error)
	RemoveLike(ctx context.Context, userID, postID string) (*postPort.LikeDTO, error)
	AddComment(ctx context.Context, userID, postID, content string) (*postPort.CommentDTO, error)
}

type FeedUseCase interface {
	GetPost(ctx context.Context, postID string) (*postPort.PostDTO, error)
	GetFeed(ctx context.Context) ([]*postPort.PostDTO, error)
}

// Deps is everything SetupRoutes wires into the controllers
type Deps struct {
	Users        UserUseCase
	Posts        PostUseCase
	Interactions InteractionUseCase
	Feed         FeedUseCase
	Images       storagePort.ImageStorage
	JWTSecret    []byte
	Logger       *zap.Logger
}

// SetupRoutes only routes; the use cases are injected from outside
func SetupRoutes(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(d.Logger))
	r.MaxMultipartMemory = storage.MaxImageSize

	uc := NewUserController(d.Users, d.Logger)
	pc := NewPostController(d.Posts, d.Feed, d.Logger)
	ic := NewInteractionController(d.Interactions, d.Logger)
	fc := NewFeedController(d.Feed, d.Logger)
	upc := NewUploadController(d.Images, d.Logger)
	auth := middleware.JWTAuthMiddleware(d.JWTSecret)

	// registration and login need no token
	r.POST("/register", uc.RegisterUser)
	r.POST("/login", uc.LoginUser)

	r.GET("/posts", fc.GetFeed)
	r.GET("/post/:postId", pc.GetPost)

	r.POST("/post", auth, pc.CreatePost)
	r.POST("/post/images", auth, upc.UploadImages)
	r.DELETE("/post/:postId", auth, pc.DeletePost)
	r.POST("/post/:postId/retweet", auth, pc.Retweet)
	r.POST("/post/:postId/comment", auth, ic.AddComment)
	r.PATCH("/post/:postId/like", auth, ic.AddLike)
	r.DELETE("/post/:postId/like", auth, ic.RemoveLike)
	return r
}
