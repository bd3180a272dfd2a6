package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shop/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "shop-test",
	})
}

func employeeInput() TokenInput {
	return TokenInput{
		SubjectType: SubjectEmployee,
		UserID:      3,
		Name:        "Ada",
		Email:       "ada@example.com",
		Permissions: []string{"manage-orders", "view-dashboard"},
	}
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateToken(employeeInput())
	require.NoError(t, err)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), token.ExpiresAt, time.Second)

	claims, err := svc.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, SubjectEmployee, claims.SubjectType)
	assert.Equal(t, int64(3), claims.UserID)
	assert.Equal(t, "employee:3", claims.Principal())
	assert.Equal(t, "employee:3", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.IsEmployee())
	assert.True(t, claims.HasPermission("manage-orders"))
	assert.False(t, claims.HasPermission("manage-roles"))
	assert.True(t, claims.HasAnyPermission("manage-roles", "view-dashboard"))
	assert.Greater(t, claims.RemainingTTL(), 14*time.Minute)
}

func TestJWTService_GenerateToken_InvalidInput(t *testing.T) {
	svc := newTestJWTService()

	_, err := svc.GenerateToken(TokenInput{SubjectType: SubjectCustomer})
	assert.ErrorIs(t, err, ErrInvalidClaims)

	_, err = svc.GenerateToken(TokenInput{SubjectType: "robot", UserID: 1})
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestJWTService_ValidateToken_Errors(t *testing.T) {
	svc := newTestJWTService()
	token, err := svc.GenerateToken(employeeInput())
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		later := newTestJWTService()
		later.now = func() time.Time { return time.Now().Add(time.Hour) }
		_, err := later.ValidateToken(token.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("not yet valid", func(t *testing.T) {
		earlier := newTestJWTService()
		earlier.now = func() time.Time { return time.Now().Add(-time.Hour) }
		_, err := earlier.ValidateToken(token.AccessToken)
		assert.ErrorIs(t, err, ErrTokenNotYetValid)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "another-secret-another-secret-00", AccessTokenExpiration: time.Minute, Issuer: "shop-test"})
		_, err := other.ValidateToken(token.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "test-secret-key-at-least-32-chars", AccessTokenExpiration: time.Minute, Issuer: "elsewhere"})
		_, err := other.ValidateToken(token.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned token", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{Issuer: "shop-test"},
			SubjectType:      SubjectEmployee,
			UserID:           1,
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = svc.ValidateToken(unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing user id", func(t *testing.T) {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{Issuer: "shop-test"},
			SubjectType:      SubjectCustomer,
		}).SignedString(svc.secret)
		require.NoError(t, err)
		_, err = svc.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
