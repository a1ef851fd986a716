package userapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chirp/internal/core/errs"
	userEntity "chirp/internal/core/user"
	userPort "chirp/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is how long an issued JWT stays valid
const TokenTTL = 24 * time.Hour

// ErrInvalidCredentials is returned for an unknown email or a wrong password
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserService registers users and issues the tokens the request layer checks
type UserService struct {
	UserRepository userPort.UserRepository
	Logger         *zap.Logger
	jwtKey         []byte
}

func NewUserService(repo userPort.UserRepository, jwtKey []byte, logger *zap.Logger) *UserService {
	return &UserService{
		UserRepository: repo,
		Logger:         logger,
		jwtKey:         jwtKey,
	}
}

// LoginUser checks the password and issues a JWT
func (s *UserService) LoginUser(ctx context.Context, email, password string) (*userPort.LoginResponse, error) {
	user, err := s.UserRepository.FindByEmail(ctx, email)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		s.Logger.Error("❌ error finding user", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.Logger.Info("invalid password", zap.String("userID", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(TokenTTL)
	token, err := s.generateJWT(user, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("could not generate token: %w", err)
	}

	return &userPort.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

// generateJWT signs an HS256 token whose subject is the user id
func (s *UserService) generateJWT(user *userEntity.User, expiresAt time.Time) (string, error) {
	claims := &jwt.StandardClaims{
		Subject:   user.ID.String(),
		Issuer:    "chirp",
		ExpiresAt: expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}

// RegisterUser creates a user with a bcrypt password hash
func (s *UserService) RegisterUser(ctx context.Context, email, nickname, password string) (*userPort.UserDTO, error) {
	email = strings.TrimSpace(email)
	nickname = strings.TrimSpace(nickname)
	if email == "" || nickname == "" || password == "" {
		return nil, errs.Validation("email, nickname and password are required")
	}

	// the unique index on email still guards concurrent registrations
	existing, err := s.UserRepository.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("email already registered: %w", errs.ErrConflict)
	}
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u, err := s.UserRepository.Create(ctx, &userEntity.User{
		ID:       uuid.Must(uuid.NewV4()),
		Email:    email,
		Nickname: nickname,
		Password: string(hashedPassword),
	})
	if err != nil {
		return nil, err
	}

	return &userPort.UserDTO{
		ID:       u.ID.String(),
		Email:    u.Email,
		Nickname: u.Nickname,
	}, nil
}
