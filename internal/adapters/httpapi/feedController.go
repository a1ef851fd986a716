package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FeedController struct {
	fc     FeedUseCase
	logger *zap.Logger
}

func NewFeedController(fc FeedUseCase, logger *zap.Logger) *FeedController {
	return &FeedController{fc: fc, logger: logger}
}

// GetFeed returns the newest page of posts
func (ctl *FeedController) GetFeed(c *gin.Context) {
	posts, err := ctl.fc.GetFeed(c.Request.Context())
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}
