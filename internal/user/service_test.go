package user

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/bloghub/internal/policy"
	"github.com/fkhayef/bloghub/internal/post"
)

type fakeStore struct {
	users map[int64]*User
}

func newFakeStore(users ...*User) *fakeStore {
	f := &fakeStore{users: map[int64]*User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeStore) Create(ctx context.Context, username, email, hashedPassword string) (*User, error) {
	u := &User{ID: int64(len(f.users) + 1), Username: username, Email: email, HashedPassword: hashedPassword, IsActive: true}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id int64) (*User, error) {
	return f.users[id], nil
}

func (f *fakeStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) UpdateProfile(ctx context.Context, id int64, req *UpdateProfileRequest) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	if req.FirstName != nil {
		u.FirstName = req.FirstName
	}
	if req.LastName != nil {
		u.LastName = req.LastName
	}
	if req.Bio != nil {
		u.Bio = req.Bio
	}
	if req.AvatarURL != nil {
		u.AvatarURL = req.AvatarURL
	}
	if req.Website != nil {
		u.Website = req.Website
	}
	if req.Location != nil {
		u.Location = req.Location
	}
	return u, nil
}

type fakePostStore struct {
	countByAuthor map[int64]int
	postsByAuthor map[int64][]*post.Post
}

func (f *fakePostStore) CountByAuthor(ctx context.Context, authorID int64) (int, error) {
	return f.countByAuthor[authorID], nil
}

func (f *fakePostStore) ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]*post.Post, error) {
	return f.postsByAuthor[authorID], nil
}

func strPtr(s string) *string { return &s }

func seedAlice() *User {
	return &User{
		ID:             7,
		Username:       "alice",
		Email:          "alice@example.com",
		HashedPassword: "$2a$10$secret",
		IsActive:       true,
		Bio:            strPtr("writes things"),
		CreatedAt:      time.Date(2023, 3, 15, 9, 0, 0, 0, time.UTC),
	}
}

func TestUpdateProfile_AppliesOnlyPresentFields(t *testing.T) {
	alice := seedAlice()
	s := NewService(newFakeStore(alice), &fakePostStore{})
	actor := policy.Actor{ID: 7, Active: true}

	updated, err := s.UpdateProfile(context.Background(), actor, &UpdateProfileRequest{
		FirstName: strPtr("Alice"),
		Location:  strPtr("Berlin"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice", *updated.FirstName)
	assert.Equal(t, "Berlin", *updated.Location)
	// Absent fields stay unchanged
	assert.Equal(t, "writes things", *updated.Bio)
	assert.Nil(t, updated.LastName)
}

func TestUpdateProfile_IgnoresForbiddenJSONKeys(t *testing.T) {
	// email and is_superuser have no counterpart on the patch DTO, so they
	// vanish during decoding while allow-listed keys apply
	var req UpdateProfileRequest
	body := `{"email":"evil@example.com","is_superuser":true,"bio":"new bio"}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	alice := seedAlice()
	s := NewService(newFakeStore(alice), &fakePostStore{})

	updated, err := s.UpdateProfile(context.Background(), policy.Actor{ID: 7, Active: true}, &req)
	require.NoError(t, err)

	assert.Equal(t, "new bio", *updated.Bio)
	assert.Equal(t, "alice@example.com", updated.Email)
	assert.False(t, updated.IsSuperuser)
}

func TestUpdateProfile_DeniedForInactiveActor(t *testing.T) {
	s := NewService(newFakeStore(seedAlice()), &fakePostStore{})

	_, err := s.UpdateProfile(context.Background(), policy.Actor{ID: 7, Active: false}, &UpdateProfileRequest{})
	assert.ErrorIs(t, err, ErrNotProfileOwner)
}

func TestPublicProfile_OmitsSensitiveFields(t *testing.T) {
	data, err := json.Marshal(seedAlice().ToPublicProfile())
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))

	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "bio")
	assert.Contains(t, fields, "created_at")
	assert.NotContains(t, fields, "email")
	assert.NotContains(t, fields, "hashed_password")
	assert.NotContains(t, fields, "is_active")
	assert.NotContains(t, fields, "is_superuser")
	assert.NotContains(t, fields, "is_verified")
}

func TestStats(t *testing.T) {
	posts := &fakePostStore{countByAuthor: map[int64]int{7: 3}}
	s := NewService(newFakeStore(seedAlice()), posts)

	stats, err := s.Stats(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, "alice", stats.Username)
	assert.Equal(t, 3, stats.TotalPosts)
	assert.Equal(t, "2023-03-15T09:00:00Z", stats.JoinedDate)
}

func TestStats_UnknownUser(t *testing.T) {
	s := NewService(newFakeStore(), &fakePostStore{})

	_, err := s.Stats(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestStats_CountMatchesListedPosts(t *testing.T) {
	authored := []*post.Post{
		{ID: 1, Title: "One", AuthorID: 7},
		{ID: 2, Title: "Two", AuthorID: 7},
	}
	posts := &fakePostStore{
		countByAuthor: map[int64]int{7: len(authored)},
		postsByAuthor: map[int64][]*post.Post{7: authored},
	}
	s := NewService(newFakeStore(seedAlice()), posts)

	stats, err := s.Stats(context.Background(), "alice")
	require.NoError(t, err)
	listed, err := s.ListPosts(context.Background(), "alice", 0, 10)
	require.NoError(t, err)

	assert.Equal(t, len(listed), stats.TotalPosts)
}

func TestListPosts_UnknownUser(t *testing.T) {
	s := NewService(newFakeStore(), &fakePostStore{})

	_, err := s.ListPosts(context.Background(), "nonexistent", 0, 10)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLoadActor(t *testing.T) {
	s := NewService(newFakeStore(seedAlice()), &fakePostStore{})

	actor, err := s.LoadActor(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), actor.ID)
	assert.Equal(t, "alice", actor.Username)
	assert.True(t, actor.Active)
	assert.False(t, actor.Superuser)
}

func TestLoadActor_UnknownUser(t *testing.T) {
	s := NewService(newFakeStore(), &fakePostStore{})

	_, err := s.LoadActor(context.Background(), 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
