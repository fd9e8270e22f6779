package handlers

import (
	"net/http"

	"yatube/internal/middleware"
	"yatube/internal/services"

	"github.com/gin-gonic/gin"
)

// CommentHandler serves comments nested under /posts/:post_id/.
type CommentHandler struct {
	comments *services.CommentService
}

func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

func (h *CommentHandler) List(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	comments, err := h.comments.List(c.Request.Context(), postID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializeComments(comments))
}

func (h *CommentHandler) Get(c *gin.Context) {
	postID, id, ok := commentPath(c)
	if !ok {
		return
	}
	comment, err := h.comments.Get(c.Request.Context(), postID, id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializeComment(comment))
}

func (h *CommentHandler) Create(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	in, err := decodeComment(c)
	if err != nil {
		respondBodyError(c, err)
		return
	}
	comment, err := h.comments.Create(c.Request.Context(), middleware.CurrentUser(c), postID, in)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializeComment(comment))
}

func (h *CommentHandler) Update(c *gin.Context) {
	postID, id, ok := commentPath(c)
	if !ok {
		return
	}
	in, err := decodeComment(c)
	if err != nil {
		respondBodyError(c, err)
		return
	}
	partial := c.Request.Method == http.MethodPatch
	comment, err := h.comments.Update(c.Request.Context(), middleware.CurrentUser(c), postID, id, in, partial)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializeComment(comment))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	postID, id, ok := commentPath(c)
	if !ok {
		return
	}
	if err := h.comments.Delete(c.Request.Context(), middleware.CurrentUser(c), postID, id); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func commentPath(c *gin.Context) (postID, id uint, ok bool) {
	if postID, ok = pathID(c, "post_id"); !ok {
		return 0, 0, false
	}
	id, ok = pathID(c, "id")
	return postID, id, ok
}

func decodeComment(c *gin.Context) (services.CommentInput, error) {
	body, err := readBody(c)
	if err != nil {
		return services.CommentInput{}, err
	}
	verr := services.NewValidationError()
	in := services.CommentInput{Text: body.String(verr, "text")}
	return in, verr.OrNil()
}
