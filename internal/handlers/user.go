package handlers

import (
	"net/http"

	"yatube/internal/middleware"
	"yatube/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Register creates an account. The password is never echoed back.
func (h *UserHandler) Register(c *gin.Context) {
	var in services.UserInput
	if !bindBody(c, &in) {
		return
	}
	user, err := h.users.Register(c.Request.Context(), in)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializeUser(user))
}

func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, serializeUser(middleware.CurrentUser(c)))
}
