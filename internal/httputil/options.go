package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func options(c *gin.Context, allowed string) {
	c.Header("allow", allowed)
	c.Status(http.StatusNoContent)
}

// OptionsGet answers an OPTIONS request for resources that only support GET.
func OptionsGet(c *gin.Context) {
	options(c, "GET")
}

func OptionsGetPost(c *gin.Context) {
	options(c, "GET, POST")
}

func OptionsGetPatchDelete(c *gin.Context) {
	options(c, "GET, PATCH, DELETE")
}

func OptionsPost(c *gin.Context) {
	options(c, "POST")
}
