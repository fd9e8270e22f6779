package handlers

import (
	"errors"
	"log"
	"net/http"

	"yatube/internal/services"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	detailNotFound    = "Not found."
	detailServerError = "A server error occurred."
)

// RespondError renders err with the status code its kind maps to.
func RespondError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, verr.Fields)
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": detailNotFound})
	case errors.Is(err, services.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "No active account found with the given credentials"})
	case errors.Is(err, services.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired", "code": "token_not_valid"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to perform this action."})
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": detailServerError})
	}
}

// RespondNotFound is the body for unknown routes and objects.
func RespondNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"detail": detailNotFound})
}

// RespondMethodNotAllowed is the body for known routes hit with the wrong verb.
func RespondMethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": `Method "` + c.Request.Method + `" not allowed.`})
}

// badRequest reports an unparseable request body.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"detail": "JSON parse error - " + err.Error()})
}

// pathID reads a numeric path parameter. Anything else cannot match a row.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, ok := utils.ParseID(c.Param(name))
	if !ok {
		RespondNotFound(c)
	}
	return id, ok
}
