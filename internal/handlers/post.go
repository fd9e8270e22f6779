package handlers

import (
	"net/http"

	"yatube/internal/middleware"
	"yatube/internal/services"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	posts  *services.PostService
	images *services.ImageStore
}

func NewPostHandler(posts *services.PostService, images *services.ImageStore) *PostHandler {
	return &PostHandler{posts: posts, images: images}
}

// List returns all posts, or one page of them when limit is given.
// ?group=<id> narrows the list to one group.
func (h *PostHandler) List(c *gin.Context) {
	var filter services.PostFilter
	if g := c.Query("group"); g != "" {
		// An unparseable id yields 0, which matches no group.
		id, _ := utils.ParseID(g)
		filter.GroupID = &id
	}

	page, paginated := utils.ParsePage(c.Request.URL.Query())
	if paginated {
		filter.Limit = page.Limit
		filter.Offset = page.Offset
	}

	posts, total, err := h.posts.List(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, err)
		return
	}

	results := serializePosts(posts, h.images)
	if !paginated {
		c.JSON(http.StatusOK, results)
		return
	}
	c.JSON(http.StatusOK, PageResponse{
		Count:    total,
		Next:     page.NextURL(c.Request, total),
		Previous: page.PreviousURL(c.Request),
		Results:  results,
	})
}

func (h *PostHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	post, err := h.posts.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializePost(post, h.images))
}

func (h *PostHandler) Create(c *gin.Context) {
	in, err := h.decode(c)
	if err != nil {
		respondBodyError(c, err)
		return
	}
	post, err := h.posts.Create(c.Request.Context(), middleware.CurrentUser(c), in)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializePost(post, h.images))
}

// Update serves both PUT and PATCH.
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	in, err := h.decode(c)
	if err != nil {
		respondBodyError(c, err)
		return
	}
	partial := c.Request.Method == http.MethodPatch
	post, err := h.posts.Update(c.Request.Context(), middleware.CurrentUser(c), id, in, partial)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializePost(post, h.images))
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	if err := h.posts.Delete(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PostHandler) decode(c *gin.Context) (services.PostInput, error) {
	body, err := readBody(c)
	if err != nil {
		return services.PostInput{}, err
	}

	verr := services.NewValidationError()
	in := services.PostInput{
		Text:     body.String(verr, "text"),
		HasGroup: body.has("group"),
	}
	if in.HasGroup {
		in.GroupID = body.PK(verr, "group")
	}
	in.Image, in.HasImage = body.Image(verr, "image")
	return in, verr.OrNil()
}
