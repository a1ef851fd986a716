package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"chirp/internal/adapters/database"
	"chirp/internal/adapters/httpapi"
	redisadapter "chirp/internal/adapters/redis"
	"chirp/internal/adapters/storage"
	"chirp/internal/config"
	feedapp "chirp/internal/core/feed/service"
	hashtagapp "chirp/internal/core/hashtag/service"
	interactionapp "chirp/internal/core/interaction/service"
	postapp "chirp/internal/core/post/service"
	userapp "chirp/internal/core/user/service"
	feedPort "chirp/internal/ports/feed"
	storagePort "chirp/internal/ports/storage"
	"chirp/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

var (
	// Serve flags
	skipMigrate bool
	port        string
)

// serveCmd runs the HTTP API until SIGINT or SIGTERM
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Do not migrate the schema on startup")
	serveCmd.Flags().StringVar(&port, "port", "", "Listen port (overrides APP_PORT)")
}

func runServe(ctx context.Context) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.OpenDB(cfg, logger)
	if err != nil {
		return err
	}
	defer closeDB(db, logger)
	if !skipMigrate {
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Info("✅ Database migrations completed")
	}

	rdb, err := config.NewRedis(ctx, cfg, logger)
	if err != nil {
		return err
	}
	var cache feedPort.FeedCache = redisadapter.NopFeedCache{}
	if rdb != nil {
		defer closeRedis(rdb, logger)
		cache = redisadapter.NewFeedCacheRedis(rdb, cfg.FeedCacheTTL, logger)
	}

	images, err := imageStorage(ctx, cfg)
	if err != nil {
		return err
	}

	postRepo := database.NewPostRepositoryDatabase(db)
	feedSvc := feedapp.NewFeedService(database.NewFeedRepositoryDatabase(db), cache, logger)
	hashtagSvc := hashtagapp.NewHashtagService(database.NewHashtagRepositoryDatabase(db), logger)
	postSvc := postapp.NewPostService(postRepo, hashtagSvc, feedSvc, cache, logger)
	interactionSvc := interactionapp.NewInteractionService(postRepo, database.NewCommentRepositoryDatabase(db), cache, logger)
	userSvc := userapp.NewUserService(database.NewUserRepositoryDatabase(db), []byte(cfg.JWTSecret), logger)

	r := httpapi.SetupRoutes(httpapi.Deps{
		Users:        userSvc,
		Posts:        postSvc,
		Interactions: interactionSvc,
		Feed:         feedSvc,
		Images:       images,
		JWTSecret:    []byte(cfg.JWTSecret),
		Logger:       logger,
	})

	if rdb != nil {
		go workers.NewFeedWarmer(feedSvc, cfg.FeedCacheTTL, logger).Run(ctx)
	}

	listen := cfg.Port
	if port != "" {
		listen = port
	}
	srv := &http.Server{
		Addr:              ":" + listen,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("App is running...", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("🛑 shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func imageStorage(ctx context.Context, cfg *config.Config) (storagePort.ImageStorage, error) {
	if cfg.ImageStorage == config.StorageS3 {
		return storage.NewS3ImageStorage(ctx, storage.S3Options{
			Region:          cfg.AWSRegion,
			Bucket:          cfg.AWSBucket,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
	}
	return storage.NewDiskImageStorage(cfg.UploadDir)
}

func closeRedis(rdb *redis.Client, logger *zap.Logger) {
	if err := rdb.Close(); err != nil {
		logger.Error("Error closing Redis connection", zap.Error(err))
	}
}

func closeDB(db *gorm.DB, logger *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Error getting raw DB", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
	}
}
