package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const userColumns = `id, username, email, hashed_password, is_active, is_superuser, is_verified,
		       first_name, last_name, bio, avatar_url, website, location, created_at`

// Store is the persistence surface the user service depends on
type Store interface {
	Create(ctx context.Context, username, email, hashedPassword string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, id int64, req *UpdateProfileRequest) (*User, error)
}

// Repository handles user data persistence in Postgres
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new user repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user. Duplicate usernames and emails surface as
// ErrUsernameTaken / ErrEmailTaken via the unique constraints.
func (r *Repository) Create(ctx context.Context, username, email, hashedPassword string) (*User, error) {
	query := `
		INSERT INTO users (username, email, hashed_password)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, username, email, hashedPassword).Scan(scanDest(user)...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			if pqErr.Constraint == "users_email_key" {
				return nil, ErrEmailTaken
			}
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by their ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	return r.getBy(ctx, "id = $1", id)
}

// GetByUsername retrieves a user by their username
func (r *Repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.getBy(ctx, "username = $1", username)
}

// GetByEmail retrieves a user by their email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getBy(ctx, "email = $1", email)
}

// UpdateProfile applies the non-nil fields of req to the user's profile
// columns and returns the updated row
func (r *Repository) UpdateProfile(ctx context.Context, id int64, req *UpdateProfileRequest) (*User, error) {
	query := `
		UPDATE users
		SET first_name = COALESCE($2, first_name),
		    last_name  = COALESCE($3, last_name),
		    bio        = COALESCE($4, bio),
		    avatar_url = COALESCE($5, avatar_url),
		    website    = COALESCE($6, website),
		    location   = COALESCE($7, location)
		WHERE id = $1
		RETURNING ` + userColumns

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, id,
		req.FirstName, req.LastName, req.Bio, req.AvatarURL, req.Website, req.Location,
	).Scan(scanDest(user)...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}

func (r *Repository) getBy(ctx context.Context, where string, arg interface{}) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(scanDest(user)...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func scanDest(u *User) []interface{} {
	return []interface{}{
		&u.ID,
		&u.Username,
		&u.Email,
		&u.HashedPassword,
		&u.IsActive,
		&u.IsSuperuser,
		&u.IsVerified,
		&u.FirstName,
		&u.LastName,
		&u.Bio,
		&u.AvatarURL,
		&u.Website,
		&u.Location,
		&u.CreatedAt,
	}
}
