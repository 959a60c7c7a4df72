// Package auth issues and verifies the JWTs backing user sessions and
// exposes the gin middleware that loads the current user.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hadron_scholar_backend/internal/models"
	"hadron_scholar_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

// CookieName is the session cookie carrying the JWT for browser clients.
// API clients may instead send "Authorization: Bearer <token>".
const CookieName = "session_token"

const contextUserKey = "user"

// GenerateToken signs an HS256 token for the user.
func GenerateToken(user *models.User, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken parses and validates a token string.
func VerifyToken(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// AuthMiddleware rejects the request unless a valid token resolves to a
// known user. The user is placed in the gin context.
func AuthMiddleware(users *services.UserService, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := userFromRequest(c, users, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		c.Set(contextUserKey, user)
		c.Next()
	}
}

// OptionalAuth loads the user when a valid token is present but never
// rejects the request. Used on public listings that mark favorites.
func OptionalAuth(users *services.UserService, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := userFromRequest(c, users, secret); err == nil {
			c.Set(contextUserKey, user)
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by the middleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(contextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

func userFromRequest(c *gin.Context, users *services.UserService, secret string) (*models.User, error) {
	tokenString := tokenFromRequest(c)
	if tokenString == "" {
		return nil, errors.New("authentication required")
	}

	claims, err := VerifyToken(tokenString, secret)
	if err != nil {
		return nil, errors.New("invalid or expired token")
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, errors.New("invalid token subject")
	}

	user, err := users.GetByID(userID)
	if err != nil {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func tokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	if cookie, err := c.Cookie(CookieName); err == nil {
		return cookie
	}
	return ""
}
