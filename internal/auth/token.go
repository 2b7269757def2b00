package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken indicates a malformed token, a bad signature, or a
	// token signed with an algorithm other than the configured one.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken indicates a well-formed, correctly signed token whose
	// expiry has passed.
	ErrExpiredToken = errors.New("token expired")
)

// Claims is the decoded content of a bearer token.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// TokenCodec issues and verifies signed bearer tokens. The signing secret,
// algorithm and default TTL are fixed at construction.
type TokenCodec struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

func NewTokenCodec(secret []byte, algorithm string, ttl time.Duration) (*TokenCodec, error) {
	if len(secret) == 0 {
		return nil, errors.New("signing secret is required")
	}
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	return &TokenCodec{secret: secret, method: method, ttl: ttl}, nil
}

// TTL returns the configured default token lifetime.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for subject expiring at now+ttl. A zero or negative ttl
// produces an already-expired token; callers wanting the default lifetime
// pass TTL().
func (c *TokenCodec) Issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(c.method, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	})
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies signature, algorithm and expiry, and returns the embedded
// claims. Only the configured algorithm is accepted; a token signed with a
// different method fails with ErrInvalidToken even if its signature would
// otherwise check out.
func (c *TokenCodec) Decode(tokenString string) (Claims, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{c.method.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, fmt.Errorf("%w: %w", ErrExpiredToken, err)
		}
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return Claims{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	out := Claims{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
