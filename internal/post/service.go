package post

import (
	"context"
	"errors"
	"strings"

	"github.com/fkhayef/bloghub/internal/policy"
)

// Common errors
var (
	ErrPostNotFound   = errors.New("post not found")
	ErrAuthorNotFound = errors.New("author not found")
	ErrNotPostAuthor  = errors.New("only the author may modify this post")
	ErrNotAllowed     = errors.New("not allowed to create posts")
	ErrEmptyTitle     = errors.New("title must not be empty")
	ErrEmptyContent   = errors.New("content must not be empty")
)

const (
	defaultListLimit = 100
	maxListLimit     = 100
)

// Service handles post business logic and ownership checks
type Service struct {
	store Store
}

// NewService creates a new post service with the store dependency injected
func NewService(store Store) *Service {
	return &Service{store: store}
}

// List retrieves posts with pagination, newest first, plus the total count
func (s *Service) List(ctx context.Context, skip, limit int) ([]*Post, int, error) {
	skip, limit = clamp(skip, limit)
	return s.store.List(ctx, limit, skip)
}

// GetByID retrieves a single post
func (s *Service) GetByID(ctx context.Context, id int64) (*Post, error) {
	post, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Create persists a new post authored by the actor. The author is always
// the actor, never a client-supplied id.
func (s *Service) Create(ctx context.Context, actor policy.Actor, req *CreatePostRequest) (*Post, error) {
	if !policy.CanCreate(actor) {
		return nil, ErrNotAllowed
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrEmptyTitle
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrEmptyContent
	}

	return s.store.Create(ctx, actor.ID, req)
}

// Update applies a partial update to a post owned by the actor
func (s *Service) Update(ctx context.Context, actor policy.Actor, id int64, req *UpdatePostRequest) (*Post, error) {
	post, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanModify(actor, post.AuthorID) {
		return nil, ErrNotPostAuthor
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, ErrEmptyTitle
	}
	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		return nil, ErrEmptyContent
	}

	updated, err := s.store.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// Deleted between the fetch and the update
		return nil, ErrPostNotFound
	}
	return updated, nil
}

// Delete removes a post owned by the actor
func (s *Service) Delete(ctx context.Context, actor policy.Actor, id int64) error {
	post, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanDelete(actor, post.AuthorID) {
		return ErrNotPostAuthor
	}

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPostNotFound
	}
	return nil
}

// ListByAuthor retrieves one author's posts newest first, failing with
// ErrAuthorNotFound when the user does not exist
func (s *Service) ListByAuthor(ctx context.Context, authorID int64, skip, limit int) ([]*Post, error) {
	exists, err := s.store.AuthorExists(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrAuthorNotFound
	}

	skip, limit = clamp(skip, limit)
	return s.store.ListByAuthor(ctx, authorID, limit, skip)
}

func clamp(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return skip, limit
}
