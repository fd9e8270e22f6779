package handlers

import (
	"net/http"

	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
)

// rootResources are the list endpoints advertised by the API root.
var rootResources = []string{"posts", "groups", "follow"}

// APIRoot lists the top-level resources with absolute URLs.
func APIRoot(c *gin.Context) {
	base := utils.RequestOrigin(c.Request) + c.Request.URL.Path

	out := make(map[string]string, len(rootResources))
	for _, name := range rootResources {
		out[name] = base + name + "/"
	}
	c.JSON(http.StatusOK, out)
}
