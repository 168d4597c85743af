package jwtmw

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// EnvKeyJWTSecret is the environment variable holding the signing secret.
const EnvKeyJWTSecret = "JWT_SECRET"

// Context keys populated by the middleware for downstream handlers.
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextRole   = "role"
	ContextAdmin  = "admin"
)

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c)
		if !ok {
			return
		}

		if sub, ok := claims["sub"].(float64); ok { // JWT numbers are decoded as float64
			c.Set(ContextUserID, uint(sub))
		}
		if email, ok := claims["email"].(string); ok {
			c.Set(ContextEmail, email)
		}
		if role, ok := claims["role"].(string); ok {
			c.Set(ContextRole, role)
		}

		// Pass control to the next handler
		c.Next()
	}
}

// AdminRequired returns a Gin middleware that only admits tokens carrying
// the admin marker claims. A valid non-admin token is rejected with 403,
// a missing or invalid token with 401.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c)
		if !ok {
			return
		}

		typ, _ := claims["type"].(string)
		role, _ := claims["role"].(string)
		if typ != "admin" || role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		email, _ := claims["email"].(string)
		name, _ := claims["name"].(string)
		c.Set(ContextAdmin, gin.H{"email": email, "role": role, "name": name})

		c.Next()
	}
}

// parseBearer extracts and verifies the bearer token, aborting the request
// on failure. It returns the token claims and whether parsing succeeded.
func parseBearer(c *gin.Context) (jwt.MapClaims, bool) {
	// 1. Get Authorization header
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return nil, false
	}
	tokenStr := strings.TrimPrefix(auth, "Bearer ")

	// 2. Load secret key from environment variable
	secret := os.Getenv(EnvKeyJWTSecret)
	if secret == "" {
		// Server misconfiguration (JWT_SECRET not set)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
		return nil, false
	}

	// 3. Parse and verify JWT signature
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Check signing algorithm (only HMAC allowed)
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		// Validation error or invalid token
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return nil, false
	}
	return claims, true
}
