package post

import "time"

// CreatePostRequest represents the request body for creating a post
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,max=300"`
	Content string `json:"content" validate:"required"`
}

// UpdatePostRequest represents a partial update to a post. Absent fields
// are left unchanged.
type UpdatePostRequest struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,max=300"`
	Content *string `json:"content,omitempty"`
}

// PostResponse represents the response for a single post
type PostResponse struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	AuthorID  int64   `json:"author_id"`
	CreatedAt string  `json:"created_at"`
	Author    *Author `json:"author,omitempty"`
}

// ToResponse converts a Post model to a PostResponse DTO
func (p *Post) ToResponse() *PostResponse {
	return &PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		AuthorID:  p.AuthorID,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		Author:    p.Author,
	}
}

// ToResponses converts a slice of posts to response DTOs
func ToResponses(posts []*Post) []*PostResponse {
	out := make([]*PostResponse, len(posts))
	for i, p := range posts {
		out[i] = p.ToResponse()
	}
	return out
}
