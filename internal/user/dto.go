package user

import "time"

// UpdateProfileRequest represents the request body for updating the current
// user's profile. Only these fields are settable through the profile path;
// email, password, and privilege flags have no counterpart here, so any such
// key in a request body is silently dropped during decoding.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Bio       *string `json:"bio,omitempty" validate:"omitempty,max=1000"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	Website   *string `json:"website,omitempty" validate:"omitempty,url"`
	Location  *string `json:"location,omitempty" validate:"omitempty,max=100"`
}

// UserResponse represents the full self-service view of a user
type UserResponse struct {
	ID          int64   `json:"id"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	IsActive    bool    `json:"is_active"`
	IsSuperuser bool    `json:"is_superuser"`
	IsVerified  bool    `json:"is_verified"`
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	Website     *string `json:"website,omitempty"`
	Location    *string `json:"location,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// PublicProfileResponse is the restricted projection of a user shown on
// author pages. It never carries email, credential, or privilege flags.
type PublicProfileResponse struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Website   *string `json:"website,omitempty"`
	Location  *string `json:"location,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// StatsResponse represents author-page statistics for a user
type StatsResponse struct {
	Username   string `json:"username"`
	TotalPosts int    `json:"total_posts"`
	JoinedDate string `json:"joined_date"`
}

// ToResponse converts a User model to its full UserResponse DTO
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		IsVerified:  u.IsVerified,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Bio:         u.Bio,
		AvatarURL:   u.AvatarURL,
		Website:     u.Website,
		Location:    u.Location,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}

// ToPublicProfile projects a User down to its public view
func (u *User) ToPublicProfile() *PublicProfileResponse {
	return &PublicProfileResponse{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
		Website:   u.Website,
		Location:  u.Location,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}
