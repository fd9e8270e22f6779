package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"yatube/internal/services"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// ImageHandler serves stored post images from the media root.
type ImageHandler struct {
	images *services.ImageStore
}

func NewImageHandler(images *services.ImageStore) *ImageHandler {
	return &ImageHandler{images: images}
}

// Serve handles GET <media url>*filepath.
func (h *ImageHandler) Serve(c *gin.Context) {
	rel := strings.TrimPrefix(path.Clean("/"+c.Param("filepath")), "/")
	if rel == "" || rel == "." {
		RespondNotFound(c)
		return
	}

	full := filepath.Join(h.images.Root(), filepath.FromSlash(rel))
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		RespondNotFound(c)
		return
	}

	mt, err := mimetype.DetectFile(full)
	if err != nil || !strings.HasPrefix(mt.String(), "image/") {
		RespondNotFound(c)
		return
	}

	// Stored names are never reused.
	c.Header("Cache-Control", "public, max-age=604800")
	c.Header("Content-Type", mt.String())
	c.Header("X-Content-Type-Options", "nosniff")
	http.ServeFile(c.Writer, c.Request, full)
}
