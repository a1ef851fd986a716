package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type InteractionController struct {
	ic     InteractionUseCase
	logger *zap.Logger
}

func NewInteractionController(ic InteractionUseCase, logger *zap.Logger) *InteractionController {
	return &InteractionController{ic: ic, logger: logger}
}

func (ctl *InteractionController) AddComment(c *gin.Context) {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	res, err := ctl.ic.AddComment(c.Request.Context(), userID, c.Param("postId"), req.Content)
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (ctl *InteractionController) AddLike(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	res, err := ctl.ic.AddLike(c.Request.Context(), userID, c.Param("postId"))
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *InteractionController) RemoveLike(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	res, err := ctl.ic.RemoveLike(c.Request.Context(), userID, c.Param("postId"))
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
