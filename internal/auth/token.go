package auth

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inkwell-cms/inkwell/blog/domain"
	"github.com/inkwell-cms/inkwell/internal/config"
)

const (
	// tokenValidity is how long an issued admin token remains valid.
	tokenValidity = 48 * time.Hour

	adminRole = "admin"
)

// Login checks the given credentials against the configured admin account
// and returns a signed token on success. Missing configuration yields a
// ConfigurationError; a credential mismatch yields ErrInvalidCredentials.
func Login(cfg *config.Config, email, password string) (string, error) {
	if err := cfg.ValidateAuth(); err != nil {
		return "", err
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(cfg.AdminEmail)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(cfg.AdminPassword)) == 1
	if !emailOK || !passOK {
		return "", domain.ErrInvalidCredentials
	}

	return IssueToken(cfg.JWTSecret)
}

// IssueToken signs an admin token valid for two days.
func IssueToken(secret string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": adminRole,
		"iat":  jwt.NewNumericDate(now),
		"exp":  jwt.NewNumericDate(now.Add(tokenValidity)),
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// VerifyToken parses and validates an admin token. Only HS256 signatures
// with the admin role claim are accepted.
func VerifyToken(secret, tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return fmt.Errorf("invalid token claims")
	}

	if role, _ := claims["role"].(string); role != adminRole {
		return fmt.Errorf("token does not carry the admin role")
	}

	return nil
}
