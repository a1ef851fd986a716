package httpapi

import (
	"errors"
	"net/http"

	userapp "chirp/internal/core/user/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserController struct {
	uc     UserUseCase
	logger *zap.Logger
}

func NewUserController(uc UserUseCase, logger *zap.Logger) *UserController {
	return &UserController{uc: uc, logger: logger}
}

func (ctl *UserController) LoginUser(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	res, err := ctl.uc.LoginUser(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, userapp.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *UserController) RegisterUser(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Nickname string `json:"nickname" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	u, err := ctl.uc.RegisterUser(c.Request.Context(), req.Email, req.Nickname, req.Password)
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}
