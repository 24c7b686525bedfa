package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/bloghub/internal/user"
)

type fakeUserStore struct {
	byEmail    map[string]*user.User
	byUsername map[string]*user.User
	created    *user.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byEmail:    map[string]*user.User{},
		byUsername: map[string]*user.User{},
	}
}

func (f *fakeUserStore) add(u *user.User) {
	f.byEmail[u.Email] = u
	f.byUsername[u.Username] = u
}

func (f *fakeUserStore) Create(ctx context.Context, username, email, hashedPassword string) (*user.User, error) {
	u := &user.User{
		ID:             int64(len(f.byEmail) + 1),
		Username:       username,
		Email:          email,
		HashedPassword: hashedPassword,
		IsActive:       true,
		CreatedAt:      time.Now(),
	}
	f.add(u)
	f.created = u
	return u, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return f.byUsername[username], nil
}

func newTestService(store *fakeUserStore) *Service {
	return NewService(store, NewTokenManager("test-secret", time.Hour))
}

func TestRegister_Success(t *testing.T) {
	store := newFakeUserStore()
	s := newTestService(store)

	u, err := s.Register(context.Background(), &RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "alice@example.com", u.Email)
	// Stored credential is a hash of the password, not the password
	assert.NotEqual(t, "s3cret-pass", store.created.HashedPassword)
	assert.True(t, CheckPassword(store.created.HashedPassword, "s3cret-pass"))
}

func TestRegister_UsernameTaken(t *testing.T) {
	store := newFakeUserStore()
	store.add(&user.User{ID: 1, Username: "alice", Email: "old@example.com"})
	s := newTestService(store)

	_, err := s.Register(context.Background(), &RegisterRequest{
		Username: "alice",
		Email:    "new@example.com",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, user.ErrUsernameTaken)
}

func TestRegister_EmailTaken(t *testing.T) {
	store := newFakeUserStore()
	store.add(&user.User{ID: 1, Username: "alice", Email: "alice@example.com"})
	s := newTestService(store)

	_, err := s.Register(context.Background(), &RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestLogin_Success(t *testing.T) {
	store := newFakeUserStore()
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	store.add(&user.User{ID: 7, Username: "alice", Email: "alice@example.com", HashedPassword: hash, IsActive: true})

	s := newTestService(store)
	token, err := s.Login(context.Background(), &LoginRequest{Email: "alice@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	assert.Equal(t, "bearer", token.TokenType)

	userID, err := NewTokenManager("test-secret", time.Hour).VerifyToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
}

func TestLogin_WrongPassword(t *testing.T) {
	store := newFakeUserStore()
	hash, _ := HashPassword("s3cret-pass")
	store.add(&user.User{ID: 7, Username: "alice", Email: "alice@example.com", HashedPassword: hash, IsActive: true})

	s := newTestService(store)
	_, err := s.Login(context.Background(), &LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	s := newTestService(newFakeUserStore())

	_, err := s.Login(context.Background(), &LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	store := newFakeUserStore()
	hash, _ := HashPassword("s3cret-pass")
	store.add(&user.User{ID: 7, Username: "alice", Email: "alice@example.com", HashedPassword: hash, IsActive: false})

	s := newTestService(store)
	_, err := s.Login(context.Background(), &LoginRequest{Email: "alice@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
