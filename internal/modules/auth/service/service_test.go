package service

import (
	"testing"
	"time"

	"anoa.com/edusphere/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, expiresAt, err := svc.Issue("a@x.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "a@x.com", claims.Subject)
}

func TestIssueRejectsEmptyEmail(t *testing.T) {
	_, _, err := NewTokenService("secret", 0).Issue("")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestVerifyRejects(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	expired := &tokenService{
		secret: []byte("secret"),
		ttl:    time.Hour,
		now:    func() time.Time { return time.Now().Add(-2 * time.Hour) },
	}
	expiredToken, _, err := expired.Issue("a@x.com")
	require.NoError(t, err)

	otherSecret, _, err := NewTokenService("other", time.Hour).Issue("a@x.com")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Email: "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		Email: "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Email: "a@x.com"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"malformed", "not-a-token"},
		{"expired", expiredToken},
		{"wrong secret", otherSecret},
		{"alg none", noneToken},
		{"other algorithm", hs512},
		{"missing expiry", noExpiry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Verify(tt.token)
			assert.ErrorIs(t, err, apperror.ErrUnauthorized)
			assert.Nil(t, claims)
		})
	}
}
