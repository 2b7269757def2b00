package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrition-tracker/internal/domain"
	"nutrition-tracker/internal/repository"
)

// fakeLookup is an in-memory account store keyed by username and email.
type fakeLookup struct {
	users []*domain.User
}

func (f *fakeLookup) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeLookup) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func newTestAuthenticator(t *testing.T, users ...*domain.User) *Authenticator {
	t.Helper()
	codec, err := NewTokenCodec([]byte("super-secret"), "HS256", 30*time.Minute)
	require.NoError(t, err)
	return NewAuthenticator(&fakeLookup{users: users}, codec)
}

func testUser(t *testing.T, username, email, password string) *domain.User {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	return &domain.User{
		ID:           1,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		Role:         domain.RoleUser,
	}
}

func TestAuthenticate_ByUsernameAndEmail(t *testing.T) {
	t.Parallel()

	user := testUser(t, "alice", "alice@x.com", "pw12345678")
	authn := newTestAuthenticator(t, user)
	ctx := context.Background()

	got, err := authn.Authenticate(ctx, "alice", "pw12345678")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	got, err = authn.Authenticate(ctx, "alice@x.com", "pw12345678")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	t.Parallel()

	authn := newTestAuthenticator(t, testUser(t, "alice", "alice@x.com", "pw12345678"))

	_, err := authn.Authenticate(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_UnknownIdentifier(t *testing.T) {
	t.Parallel()

	authn := newTestAuthenticator(t, testUser(t, "alice", "alice@x.com", "pw12345678"))

	_, err := authn.Authenticate(context.Background(), "nobody", "pw12345678")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_InactiveAccountStillProvesIdentity(t *testing.T) {
	t.Parallel()

	user := testUser(t, "alice", "alice@x.com", "pw12345678")
	user.IsActive = false
	authn := newTestAuthenticator(t, user)

	// status policy is layered on top; credentials alone must still verify
	got, err := authn.Authenticate(context.Background(), "alice", "pw12345678")
	require.NoError(t, err)
	assert.ErrorIs(t, RequireActive(got), ErrAccountInactive)
}

func TestResolveToken_RoundTrip(t *testing.T) {
	t.Parallel()

	user := testUser(t, "alice", "alice@x.com", "pw12345678")
	authn := newTestAuthenticator(t, user)

	token, err := authn.IssueToken(user)
	require.NoError(t, err)

	got, err := authn.ResolveToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}

func TestResolveToken_UniformFailure(t *testing.T) {
	t.Parallel()

	user := testUser(t, "alice", "alice@x.com", "pw12345678")
	authn := newTestAuthenticator(t, user)
	ctx := context.Background()

	// expired token
	expired, err := authn.codec.Issue("alice", -time.Minute)
	require.NoError(t, err)
	_, err = authn.ResolveToken(ctx, expired)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.ErrorIs(t, err, ErrExpiredToken, "internal cause stays observable for logging")

	// valid token for an account that no longer exists
	ghost, err := authn.codec.Issue("ghost", time.Hour)
	require.NoError(t, err)
	_, err = authn.ResolveToken(ctx, ghost)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	// garbage
	_, err = authn.ResolveToken(ctx, "not.a.token")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	// all three present the same client-facing message
	assert.EqualError(t, ErrUnauthenticated, "could not validate credentials")
}

func TestResolveToken_ThirtyMinuteScenario(t *testing.T) {
	t.Parallel()

	user := testUser(t, "alice", "alice@x.com", "pw12345678")
	codec, err := NewTokenCodec([]byte("super-secret"), "HS256", 30*time.Minute)
	require.NoError(t, err)
	authn := NewAuthenticator(&fakeLookup{users: []*domain.User{user}}, codec)
	ctx := context.Background()

	token, err := codec.Issue("alice", 30*time.Minute)
	require.NoError(t, err)

	got, err := authn.ResolveToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	// simulate 31 minutes elapsed by issuing with the equivalent negative ttl
	stale, err := codec.Issue("alice", -time.Minute)
	require.NoError(t, err)
	_, err = authn.ResolveToken(ctx, stale)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestRequireActive(t *testing.T) {
	t.Parallel()

	active := &domain.User{IsActive: true}
	assert.NoError(t, RequireActive(active))

	inactive := &domain.User{IsActive: false}
	assert.ErrorIs(t, RequireActive(inactive), ErrAccountInactive)
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	admin := &domain.User{Role: domain.RoleAdmin}
	user := &domain.User{Role: domain.RoleUser}

	assert.NoError(t, RequireRole(admin, domain.RoleAdmin))
	assert.NoError(t, RequireRole(admin, domain.RoleUser), "admin outranks user")
	assert.NoError(t, RequireRole(user, domain.RoleUser))
	assert.ErrorIs(t, RequireRole(user, domain.RoleAdmin), ErrForbidden)
}
