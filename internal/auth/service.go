package auth

import (
	"context"
	"errors"

	"github.com/fkhayef/bloghub/internal/user"
)

// ErrInvalidCredentials is returned for any login failure, including an
// inactive account, so that account existence does not leak.
var ErrInvalidCredentials = errors.New("invalid email or password")

// UserStore is the slice of the identity store the auth service needs
type UserStore interface {
	Create(ctx context.Context, username, email, hashedPassword string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByUsername(ctx context.Context, username string) (*user.User, error)
}

// Service handles registration and login
type Service struct {
	users  UserStore
	tokens *TokenManager
}

// NewService creates a new auth service with dependencies injected
func NewService(users UserStore, tokens *TokenManager) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register creates a new user from credentials. The password is hashed
// before it reaches the store; duplicate usernames and emails surface as
// user.ErrUsernameTaken / user.ErrEmailTaken.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*user.User, error) {
	existing, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, user.ErrUsernameTaken
	}

	existing, err = s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, user.ErrEmailTaken
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	return s.users.Create(ctx, req.Username, req.Email, hash)
}

// Login verifies credentials and returns a bearer access token
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive || !CheckPassword(u.HashedPassword, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(u.ID)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}
