package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PostController struct {
	pc     PostUseCase
	fc     FeedUseCase
	logger *zap.Logger
}

func NewPostController(pc PostUseCase, fc FeedUseCase, logger *zap.Logger) *PostController {
	return &PostController{pc: pc, fc: fc, logger: logger}
}

// imageRefs accepts either a single reference or a list of them
type imageRefs []string

func (r *imageRefs) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = nil
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*r = imageRefs{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*r = many
	return nil
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	var req struct {
		Content string    `json:"content"`
		Image   imageRefs `json:"image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	res, err := ctl.pc.CreatePost(c.Request.Context(), userID, req.Content, req.Image)
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (ctl *PostController) GetPost(c *gin.Context) {
	res, err := ctl.fc.GetPost(c.Request.Context(), c.Param("postId"))
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DeletePost answers with the requested id whether or not anything was removed
func (ctl *PostController) DeletePost(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	postID := c.Param("postId")
	if err := ctl.pc.DeletePost(c.Request.Context(), userID, postID); err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"PostId": postID})
}

func (ctl *PostController) Retweet(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	res, err := ctl.pc.Retweet(c.Request.Context(), userID, c.Param("postId"))
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}
