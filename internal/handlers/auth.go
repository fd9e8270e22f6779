package handlers

import (
	"errors"
	"io"
	"net/http"

	"yatube/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthHandler issues and checks JWT access/refresh pairs.
type AuthHandler struct {
	users  *services.UserService
	tokens *services.TokenService
}

func NewAuthHandler(users *services.UserService, tokens *services.TokenService) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

type credentialsRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" form:"refresh"`
}

type verifyRequest struct {
	Token string `json:"token" form:"token"`
}

// CreateToken exchanges a username and password for a token pair.
func (h *AuthHandler) CreateToken(c *gin.Context) {
	var req credentialsRequest
	if !bindBody(c, &req) {
		return
	}
	verr := services.NewValidationError()
	requireField(verr, "username", req.Username)
	requireField(verr, "password", req.Password)
	if err := verr.OrNil(); err != nil {
		RespondError(c, err)
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		RespondError(c, err)
		return
	}
	pair, err := h.tokens.Issue(user)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req refreshRequest
	if !bindBody(c, &req) {
		return
	}
	if req.Refresh == "" {
		RespondError(c, services.FieldError("refresh", services.MsgRequired))
		return
	}

	access, err := h.tokens.Refresh(req.Refresh)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access})
}

func (h *AuthHandler) VerifyToken(c *gin.Context) {
	var req verifyRequest
	if !bindBody(c, &req) {
		return
	}
	if req.Token == "" {
		RespondError(c, services.FieldError("token", services.MsgRequired))
		return
	}

	if err := h.tokens.Verify(req.Token); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// bindBody decodes a JSON or form body into obj. An empty body leaves obj
// zero so required-field checks can report it.
func bindBody(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBind(obj)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	badRequest(c, err)
	return false
}

func requireField(verr *services.ValidationError, field, value string) {
	if value == "" {
		verr.Add(field, services.MsgRequired)
	}
}
