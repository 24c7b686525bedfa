package post

import (
	"context"
	"database/sql"
	"fmt"
)

// Store is the persistence surface the post service depends on
type Store interface {
	Create(ctx context.Context, authorID int64, req *CreatePostRequest) (*Post, error)
	GetByID(ctx context.Context, id int64) (*Post, error)
	List(ctx context.Context, limit, offset int) ([]*Post, int, error)
	ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]*Post, error)
	CountByAuthor(ctx context.Context, authorID int64) (int, error)
	AuthorExists(ctx context.Context, authorID int64) (bool, error)
	Update(ctx context.Context, id int64, req *UpdatePostRequest) (*Post, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

const postColumns = `p.id, p.title, p.content, p.author_id, p.created_at,
		       u.id, u.username, u.email`

const postFrom = ` FROM posts p JOIN users u ON u.id = p.author_id`

// Repository handles post data persistence in Postgres
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new post repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new post owned by authorID
func (r *Repository) Create(ctx context.Context, authorID int64, req *CreatePostRequest) (*Post, error) {
	query := `
		WITH inserted AS (
			INSERT INTO posts (title, content, author_id)
			VALUES ($1, $2, $3)
			RETURNING id, title, content, author_id, created_at
		)
		SELECT ` + postColumns + `
		FROM inserted p
		JOIN users u ON u.id = p.author_id
	`

	post := &Post{Author: &Author{}}
	err := r.db.QueryRowContext(ctx, query, req.Title, req.Content, authorID).Scan(scanDest(post)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

// GetByID retrieves a post with its author by post ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Post, error) {
	query := `SELECT ` + postColumns + postFrom + ` WHERE p.id = $1`

	post := &Post{Author: &Author{}}
	err := r.db.QueryRowContext(ctx, query, id).Scan(scanDest(post)...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

// List retrieves posts newest first with pagination, plus the total count
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Post, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	query := `SELECT ` + postColumns + postFrom + `
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $1 OFFSET $2`

	posts, err := r.queryPosts(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// ListByAuthor retrieves a single author's posts newest first
func (r *Repository) ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]*Post, error) {
	query := `SELECT ` + postColumns + postFrom + `
		WHERE p.author_id = $1
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3`

	return r.queryPosts(ctx, query, authorID, limit, offset)
}

// CountByAuthor returns the number of posts authored by the given user
func (r *Repository) CountByAuthor(ctx context.Context, authorID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM posts WHERE author_id = $1`
	if err := r.db.QueryRowContext(ctx, query, authorID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

// AuthorExists reports whether a user with the given ID exists
func (r *Repository) AuthorExists(ctx context.Context, authorID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`
	if err := r.db.QueryRowContext(ctx, query, authorID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check author: %w", err)
	}
	return exists, nil
}

// Update applies the non-nil fields of req to the post and returns the
// updated row with its author
func (r *Repository) Update(ctx context.Context, id int64, req *UpdatePostRequest) (*Post, error) {
	query := `
		WITH updated AS (
			UPDATE posts
			SET title   = COALESCE($2, title),
			    content = COALESCE($3, content)
			WHERE id = $1
			RETURNING id, title, content, author_id, created_at
		)
		SELECT ` + postColumns + `
		FROM updated p
		JOIN users u ON u.id = p.author_id
	`

	post := &Post{Author: &Author{}}
	err := r.db.QueryRowContext(ctx, query, id, req.Title, req.Content).Scan(scanDest(post)...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return post, nil
}

// Delete removes a post and reports whether a row was deleted
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *Repository) queryPosts(ctx context.Context, query string, args ...interface{}) ([]*Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []*Post
	for rows.Next() {
		post := &Post{Author: &Author{}}
		if err := rows.Scan(scanDest(post)...); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read posts: %w", err)
	}

	return posts, nil
}

func scanDest(p *Post) []interface{} {
	return []interface{}{
		&p.ID,
		&p.Title,
		&p.Content,
		&p.AuthorID,
		&p.CreatedAt,
		&p.Author.ID,
		&p.Author.Username,
		&p.Author.Email,
	}
}
