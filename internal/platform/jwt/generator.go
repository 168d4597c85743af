package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Generator defines the interface for JWT token generation.
type Generator interface {
	// GenerateToken creates a signed session token for the given user.
	GenerateToken(userID uint, email, role string) (string, error)
	// GenerateAdminToken creates a signed token for the fixed admin identity.
	GenerateAdminToken(email, name string) (string, error)
}

// generator implements the Generator interface.
type generator struct {
	secret          []byte
	expiration      time.Duration
	adminExpiration time.Duration
}

// NewGenerator creates a new JWT generator with the provided secret and
// expiration durations for user and admin tokens.
func NewGenerator(secret string, expiration, adminExpiration time.Duration) *generator {
	return &generator{
		secret:          []byte(secret),
		expiration:      expiration,
		adminExpiration: adminExpiration,
	}
}

// GenerateToken creates a signed JWT with the user's id, email and role.
func (g *generator) GenerateToken(userID uint, email, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID,
		"exp":   time.Now().Add(g.expiration).Unix(),
		"iat":   time.Now().Unix(),
		"email": email,
		"role":  role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// GenerateAdminToken creates a signed JWT carrying the admin marker claims.
// Admin tokens are shorter-lived than user tokens because they guard the
// whole management surface.
func (g *generator) GenerateAdminToken(email, name string) (string, error) {
	claims := jwt.MapClaims{
		"type":  "admin",
		"role":  "admin",
		"email": email,
		"name":  name,
		"exp":   time.Now().Add(g.adminExpiration).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign admin token: %w", err)
	}

	return signed, nil
}
