package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T) *TokenCodec {
	t.Helper()
	codec, err := NewTokenCodec([]byte("super-secret"), "HS256", 30*time.Minute)
	require.NoError(t, err)
	return codec
}

func TestNewTokenCodec_Invalid(t *testing.T) {
	t.Parallel()

	_, err := NewTokenCodec(nil, "HS256", time.Minute)
	assert.Error(t, err)

	_, err = NewTokenCodec([]byte("secret"), "XS999", time.Minute)
	assert.Error(t, err)
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(t)

	token, err := codec.Issue("alice", time.Hour)
	require.NoError(t, err)

	claims, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 5*time.Second)
}

func TestTokenCodec_Expired(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(t)

	for _, ttl := range []time.Duration{0, -time.Second, -time.Hour} {
		token, err := codec.Issue("alice", ttl)
		require.NoError(t, err)

		_, err = codec.Decode(token)
		assert.ErrorIs(t, err, ErrExpiredToken, "ttl %v", ttl)
		assert.NotErrorIs(t, err, ErrInvalidToken)
	}
}

func TestTokenCodec_ExpiryBoundary(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(t)

	// still inside the window
	token, err := codec.Issue("alice", 2*time.Second)
	require.NoError(t, err)
	_, err = codec.Decode(token)
	assert.NoError(t, err)
}

func TestTokenCodec_TamperedSignature(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(t)

	token, err := codec.Issue("alice", time.Hour)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = codec.Decode(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(t)

	other, err := NewTokenCodec([]byte("a-different-secret"), "HS256", time.Minute)
	require.NoError(t, err)

	token, err := other.Issue("alice", time.Hour)
	require.NoError(t, err)

	_, err = codec.Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenCodec_AlgorithmConfusion(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(t)

	// correctly signed with the shared secret, but with HS512 instead of the
	// configured HS256
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := foreign.SignedString([]byte("super-secret"))
	require.NoError(t, err)

	_, err = codec.Decode(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenCodec_Malformed(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(t)

	for _, token := range []string{"", "not.a.jwt", "garbage"} {
		_, err := codec.Decode(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestTokenCodec_MissingSubject(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(t)

	token, err := codec.Issue("", time.Hour)
	require.NoError(t, err)

	_, err = codec.Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
