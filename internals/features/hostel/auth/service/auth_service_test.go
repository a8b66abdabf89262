package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"hostelku_backend/internals/configs"
	"hostelku_backend/internals/features/hostel/auth/model"
)

func newTestService(t *testing.T) *AuthService {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.AccessPassword{}))
	return NewAuthService(db)
}

func seedPassword(t *testing.T, s *AuthService, scope, plain string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, s.DB.Create(&model.AccessPassword{
		AccessPasswordScope: scope,
		AccessPasswordHash:  string(hash),
	}).Error)
}

func TestVerifyWrongPassword(t *testing.T) {
	svc := newTestService(t)
	seedPassword(t, svc, model.ScopePenalty, "secret")

	_, err := svc.Verify(context.Background(), model.ScopePenalty, "nope")
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusUnauthorized, fe.Code)
}

func TestVerifyUnknownScope(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Verify(context.Background(), model.ScopeReminder, "secret")
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
}

func TestVerifyNonLoginScopeReturnsNoToken(t *testing.T) {
	svc := newTestService(t)
	seedPassword(t, svc, model.ScopePenalty, "secret")

	token, err := svc.Verify(context.Background(), model.ScopePenalty, "secret")
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestVerifyLoginIssuesToken(t *testing.T) {
	svc := newTestService(t)
	seedPassword(t, svc, model.ScopeLogin, "secret")

	prev := configs.JWTSecret
	configs.JWTSecret = "test-signing-key"
	t.Cleanup(func() { configs.JWTSecret = prev })

	token, err := svc.Verify(context.Background(), model.ScopeLogin, "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte("test-signing-key"), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, model.ScopeLogin, claims["scope"])
}
