package handlers

import (
	"net/http"

	"yatube/internal/services"

	"github.com/gin-gonic/gin"
)

// GroupHandler exposes groups read-only.
type GroupHandler struct {
	groups *services.GroupService
}

func NewGroupHandler(groups *services.GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

func (h *GroupHandler) List(c *gin.Context) {
	groups, err := h.groups.List(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	out := make([]GroupResponse, 0, len(groups))
	for i := range groups {
		out = append(out, serializeGroup(&groups[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *GroupHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	group, err := h.groups.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializeGroup(group))
}
