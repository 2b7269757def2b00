package auth

import (
	"context"
	"errors"
	"fmt"

	"nutrition-tracker/internal/domain"
	"nutrition-tracker/internal/repository"
)

var (
	// ErrInvalidCredentials covers both an unknown identifier and a wrong
	// password; callers must not be able to tell which.
	ErrInvalidCredentials = errors.New("invalid authentication credentials")
	// ErrUnauthenticated is the uniform outcome for every token-resolution
	// failure (bad signature, expired, unknown subject). The internal cause
	// stays wrapped underneath it for logging.
	ErrUnauthenticated = errors.New("could not validate credentials")
	// ErrAccountInactive indicates a valid identity whose account has been
	// deactivated.
	ErrAccountInactive = errors.New("inactive user")
	// ErrForbidden indicates an authenticated user lacking the required role.
	ErrForbidden = errors.New("insufficient permissions")
)

// UserLookup is the account-store dependency of the auth core.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Authenticator verifies credentials, mints bearer tokens and resolves them
// back to accounts. It holds no mutable state.
type Authenticator struct {
	users UserLookup
	codec *TokenCodec
}

func NewAuthenticator(users UserLookup, codec *TokenCodec) *Authenticator {
	return &Authenticator{users: users, codec: codec}
}

// Authenticate proves that identifier (username or email) and password name a
// real account. Username lookup takes precedence. Inactive accounts still
// authenticate; status policy is applied separately by RequireActive.
func (a *Authenticator) Authenticate(ctx context.Context, identifier, password string) (*domain.User, error) {
	user, err := a.users.GetByUsername(ctx, identifier)
	if errors.Is(err, repository.ErrNotFound) {
		user, err = a.users.GetByEmail(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}
	if !CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssueToken mints a bearer token for the user with the codec's default TTL.
func (a *Authenticator) IssueToken(user *domain.User) (string, error) {
	return a.codec.Issue(user.Username, a.codec.TTL())
}

// ResolveToken recovers the account behind a bearer token. Every failure mode
// collapses into ErrUnauthenticated so that callers cannot distinguish a bad
// token from an unknown account.
func (a *Authenticator) ResolveToken(ctx context.Context, tokenString string) (*domain.User, error) {
	claims, err := a.codec.Decode(tokenString)
	if err != nil {
		return nil, unauthenticated(err)
	}

	user, err := a.users.GetByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, unauthenticated(err)
		}
		return nil, fmt.Errorf("lookup subject: %w", err)
	}
	return user, nil
}

func unauthenticated(cause error) error {
	return fmt.Errorf("%w: %w", ErrUnauthenticated, cause)
}

// RequireActive rejects deactivated accounts.
func RequireActive(user *domain.User) error {
	if !user.IsActive {
		return ErrAccountInactive
	}
	return nil
}

// RequireRole rejects users whose role does not meet the required one.
func RequireRole(user *domain.User, required domain.Role) error {
	if !user.Role.Meets(required) {
		return ErrForbidden
	}
	return nil
}
