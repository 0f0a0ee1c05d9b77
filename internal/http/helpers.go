package http

import (
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"knyharnia/internal/auth"
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

// parseQueryID reads an optional unsigned integer query parameter, returning
// 0 when absent or malformed.
func parseQueryID(c *gin.Context, paramName string) uint {
	idStr := c.Query(paramName)
	if idStr == "" {
		return 0
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

// redirectBack returns to the referring page, falling back to the listing
// when no referrer is known. Only the local path of the referer is trusted.
func redirectBack(c *gin.Context) {
	target := "/"
	if referer := c.Request.Referer(); referer != "" {
		if u, err := url.Parse(referer); err == nil {
			target = auth.SanitizeRedirectPath(u.RequestURI())
		}
	}
	c.Redirect(http.StatusFound, target)
}

// respondServerError logs the error and sends a generic 500. The actual
// error is never exposed to the client.
func respondServerError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.String(http.StatusInternalServerError, "internal server error")
}

// viewerData carries the fields every page's navigation needs.
func viewerData(c *gin.Context) gin.H {
	return gin.H{
		"Authenticated": auth.IsAuthenticated(c),
		"Username":      auth.GetUsername(c),
		"CSRFToken":     auth.GetCSRFToken(c),
	}
}
