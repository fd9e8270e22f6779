package handlers

import (
	"net/http"

	"yatube/internal/middleware"
	"yatube/internal/services"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	follows *services.FollowService
}

func NewFollowHandler(follows *services.FollowService) *FollowHandler {
	return &FollowHandler{follows: follows}
}

// List returns who the caller follows; ?search= matches followed usernames.
func (h *FollowHandler) List(c *gin.Context) {
	follows, err := h.follows.List(c.Request.Context(), middleware.CurrentUser(c), c.Query("search"))
	if err != nil {
		RespondError(c, err)
		return
	}
	out := make([]FollowResponse, 0, len(follows))
	for i := range follows {
		out = append(out, serializeFollow(&follows[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *FollowHandler) Create(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		respondBodyError(c, err)
		return
	}

	verr := services.NewValidationError()
	var in services.FollowInput
	if following := body.String(verr, "following"); following != nil {
		in.Following = *following
	}
	if err := verr.OrNil(); err != nil {
		RespondError(c, err)
		return
	}

	follow, err := h.follows.Create(c.Request.Context(), middleware.CurrentUser(c), in)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializeFollow(follow))
}
