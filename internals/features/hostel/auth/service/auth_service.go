package service

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hostelku_backend/internals/configs"
	"hostelku_backend/internals/features/hostel/auth/model"
)

// AuthService verifies scope passwords and issues short-lived admin tokens
// for the login scope.
type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService { return &AuthService{DB: db} }

// SeedFromEnv upserts password hashes from ACCESS_PASSWORD_<SCOPE> env vars
// on boot. Unset scopes are left untouched.
func (s *AuthService) SeedFromEnv(ctx context.Context) {
	scopes := map[string]string{
		model.ScopeLogin:    configs.GetEnv("ACCESS_PASSWORD_LOGIN"),
		model.ScopePenalty:  configs.GetEnv("ACCESS_PASSWORD_PENALTY"),
		model.ScopeReminder: configs.GetEnv("ACCESS_PASSWORD_REMINDER"),
	}
	for scope, plain := range scopes {
		if plain == "" {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[AUTH] hash for scope %s failed: %v", scope, err)
			continue
		}
		err = s.DB.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "access_password_scope"}},
			DoUpdates: clause.AssignmentColumns([]string{"access_password_hash"}),
		}).Create(&model.AccessPassword{
			AccessPasswordScope: scope,
			AccessPasswordHash:  string(hash),
		}).Error
		if err != nil {
			log.Printf("[AUTH] seed scope %s failed: %v", scope, err)
		}
	}
}

// Verify checks a plaintext password against a scope's stored hash. For the
// login scope a signed JWT is returned; other scopes just gate a UI section.
func (s *AuthService) Verify(ctx context.Context, scope, password string) (string, error) {
	var row model.AccessPassword
	if err := s.DB.WithContext(ctx).First(&row, "access_password_scope = ?", scope).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", fiber.NewError(fiber.StatusNotFound, "unknown scope")
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(row.AccessPasswordHash), []byte(password)); err != nil {
		return "", fiber.NewError(fiber.StatusUnauthorized, "wrong password")
	}

	if scope != model.ScopeLogin {
		return "", nil
	}
	if configs.JWTSecret == "" {
		return "", fiber.NewError(fiber.StatusServiceUnavailable, "admin tokens are disabled")
	}

	claims := jwt.MapClaims{
		"scope": scope,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(12 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return "", err
	}
	return signed, nil
}
