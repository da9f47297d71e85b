package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festivo/backend/internal/domain/identity"
	"github.com/festivo/backend/internal/infrastructure/config"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-for-festivo-tests-32ch",
		AccessTokenExpiration: expiration,
		Issuer:                "festivo-test",
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := newTestService(time.Hour)
	tenantID := uuid.New()
	userID := uuid.New()

	token, expiresAt, err := svc.GenerateAccessToken(GenerateTokenInput{
		TenantID: tenantID,
		UserID:   userID,
		Email:    "styret@festival.no",
		Role:     identity.RoleBoard,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, tenantID.String(), claims.TenantID)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "styret@festival.no", claims.Email)
	assert.Equal(t, identity.RoleBoard, claims.GetRole())

	gotTenant, err := claims.GetTenantUUID()
	require.NoError(t, err)
	assert.Equal(t, tenantID, gotTenant)
}

func TestValidateAccessToken_Errors(t *testing.T) {
	svc := newTestService(time.Hour)

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expired := newTestService(-time.Minute)
		token, _, err := expired.GenerateAccessToken(GenerateTokenInput{
			TenantID: uuid.New(),
			UserID:   uuid.New(),
			Role:     identity.RoleAdmin,
		})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                "a-completely-different-secret-value-32",
			AccessTokenExpiration: time.Hour,
			Issuer:                "festivo-test",
		})
		token, _, err := other.GenerateAccessToken(GenerateTokenInput{
			TenantID: uuid.New(),
			UserID:   uuid.New(),
			Role:     identity.RoleAdmin,
		})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		token, _, err := svc.GenerateAccessToken(GenerateTokenInput{
			TenantID: uuid.New(),
			UserID:   uuid.New(),
			Role:     identity.Role("superuser"),
		})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})
}
