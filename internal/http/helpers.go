package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// parseIDParam extracts and validates an unsigned integer ID from URL
// parameters. Responds with a 400 and returns false on garbage input.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// redirectWithFlash issues a 302 to path carrying a one-line message as
// a query parameter, rendered by the next page.
func redirectWithFlash(c *gin.Context, path, message string) {
	separator := "?"
	if strings.Contains(path, "?") {
		separator = "&"
	}
	c.Redirect(http.StatusFound, path+separator+"flash="+url.QueryEscape(message))
}

// refererPath extracts a same-site redirect target from the Referer
// header, falling back to "/" when it is absent or points elsewhere.
func refererPath(c *gin.Context) string {
	referer := c.Request.Referer()
	if referer == "" {
		return "/"
	}
	parsed, err := url.Parse(referer)
	if err != nil || parsed.Path == "" {
		return "/"
	}
	if parsed.Host != "" && parsed.Host != c.Request.Host {
		return "/"
	}
	return parsed.Path
}
