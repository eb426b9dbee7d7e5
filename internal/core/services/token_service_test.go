package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

func TestTokenService(t *testing.T) {
	const (
		secret = "insights-test-secret"
		issuer = "kanso-accounts"
	)

	valid := NewTokenService(secret, issuer, time.Hour)

	t.Run("Success: Should round trip the user id", func(t *testing.T) {
		token, err := valid.GenerateToken("user-42")
		require.NoError(t, err)

		userID, err := valid.ValidateToken(token)

		require.NoError(t, err)
		assert.Equal(t, "user-42", userID)
	})

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-42",
		Issuer:    issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "user-42",
		Issuer:  issuer,
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	mustToken := func(svc *TokenService, userID string) string {
		token, err := svc.GenerateToken(userID)
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"Fail: Expired token", mustToken(NewTokenService(secret, issuer, -time.Minute), "user-42"), jwt.ErrTokenExpired},
		{"Fail: Signed with another secret", mustToken(NewTokenService("other-secret", issuer, time.Hour), "user-42"), jwt.ErrTokenSignatureInvalid},
		{"Fail: Issued by someone else", mustToken(NewTokenService(secret, "elsewhere", time.Hour), "user-42"), jwt.ErrTokenInvalidIssuer},
		{"Fail: Unsigned 'none' token", noneToken, jwt.ErrTokenSignatureInvalid},
		{"Fail: Missing expiry", noExpiry, jwt.ErrTokenRequiredClaimMissing},
		{"Fail: Malformed token", "this-is-not-a-jwt", jwt.ErrTokenMalformed},
		{"Fail: Empty subject", mustToken(valid, ""), errMissingSubject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, err := valid.ValidateToken(tt.token)

			assert.Empty(t, userID)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
