package user

import (
	"context"
	"errors"
	"time"

	"github.com/fkhayef/bloghub/internal/policy"
	"github.com/fkhayef/bloghub/internal/post"
)

// Common errors
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUsernameTaken   = errors.New("username already in use")
	ErrEmailTaken      = errors.New("email already in use")
	ErrNotProfileOwner = errors.New("not allowed to update this profile")
)

// PostStore is the slice of the content store the user service needs for
// author pages and profile statistics
type PostStore interface {
	CountByAuthor(ctx context.Context, authorID int64) (int, error)
	ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]*post.Post, error)
}

// Service handles user profile business logic
type Service struct {
	store Store
	posts PostStore
}

// NewService creates a new user service with dependencies injected
func NewService(store Store, posts PostStore) *Service {
	return &Service{store: store, posts: posts}
}

// GetByID retrieves a user by their ID
func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetByUsername retrieves a user by their username
func (s *Service) GetByUsername(ctx context.Context, username string) (*User, error) {
	user, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// LoadActor resolves a user ID to the actor behind a request. Used by the
// auth middleware so that deactivation and renames take effect immediately
// instead of at token expiry.
func (s *Service) LoadActor(ctx context.Context, userID int64) (policy.Actor, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return policy.Actor{}, err
	}
	return policy.Actor{
		ID:        user.ID,
		Username:  user.Username,
		Active:    user.IsActive,
		Superuser: user.IsSuperuser,
	}, nil
}

// UpdateProfile applies the allow-listed fields present in req to the
// actor's own profile and returns the full updated user
func (s *Service) UpdateProfile(ctx context.Context, actor policy.Actor, req *UpdateProfileRequest) (*User, error) {
	if !policy.CanUpdateProfile(actor, actor.ID) {
		return nil, ErrNotProfileOwner
	}

	user, err := s.store.UpdateProfile(ctx, actor.ID, req)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Stats returns author-page statistics for the named user
func (s *Service) Stats(ctx context.Context, username string) (*StatsResponse, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	count, err := s.posts.CountByAuthor(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &StatsResponse{
		Username:   user.Username,
		TotalPosts: count,
		JoinedDate: user.CreatedAt.Format(time.RFC3339),
	}, nil
}

// ListPosts returns the named user's posts, newest first, for their author page
func (s *Service) ListPosts(ctx context.Context, username string, skip, limit int) ([]*post.Post, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if skip < 0 {
		skip = 0
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	return s.posts.ListByAuthor(ctx, user.ID, limit, skip)
}
