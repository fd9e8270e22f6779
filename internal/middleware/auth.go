package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"yatube/internal/models"
	"yatube/internal/services"

	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"

const (
	detailNotAuthenticated = "Authentication credentials were not provided."
	detailTokenNotValid    = "Given token not valid for any token type"
)

// authPrefixes are the accepted Authorization header schemes.
var authPrefixes = []string{"Bearer", "JWT"}

// TokenParser resolves an access token to a user id.
type TokenParser interface {
	ParseAccess(token string) (uint, error)
}

// UserLoader fetches the user a token belongs to.
type UserLoader interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// LoadUser authenticates the request from its Authorization header and
// stores the user under CheckUserKey. Requests without credentials pass
// through anonymously; a bad token is rejected outright.
func LoadUser(tokens TokenParser, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		userID, err := tokens.ParseAccess(raw)
		if err != nil {
			abortTokenNotValid(c)
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if !errors.Is(err, services.ErrNotFound) {
				log.Printf("Failed to load user %d: %v", userID, err)
			}
			abortTokenNotValid(c)
			return
		}

		c.Set(CheckUserKey, user)
		c.Next()
	}
}

// AuthRequired rejects anonymous requests.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": detailNotAuthenticated})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(CheckUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return "", false
	}
	for _, p := range authPrefixes {
		if scheme == p {
			return strings.TrimSpace(token), true
		}
	}
	return "", false
}

func abortTokenNotValid(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"detail": detailTokenNotValid,
		"code":   "token_not_valid",
	})
}
