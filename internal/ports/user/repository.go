package user

import (
	"context"

	"chirp/internal/core/user"
)

// UserRepository port for storing and loading users
type UserRepository interface {
	Create(ctx context.Context, user *user.User) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

// DTOs for the use cases
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

type UserDTO struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}
