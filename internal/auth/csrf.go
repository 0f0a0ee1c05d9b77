package auth

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

// contextKeyCSRFToken is where the per-request token is stashed for
// templates.
const contextKeyCSRFToken = "csrf_token"

// CSRFMiddleware creates a Gin middleware protecting the HTML forms. Safe
// methods (GET, HEAD, OPTIONS, TRACE) pass through untouched.
func CSRFMiddleware(secret []byte, secure bool) gin.HandlerFunc {
	csrfProtect := csrf.Protect(
		secret,
		csrf.Secure(secure),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteStrictMode),
		csrf.Path("/"),
		csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler)),
	)

	return func(c *gin.Context) {
		passed := false
		handler := csrfProtect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Set(contextKeyCSRFToken, csrf.Token(r))
			// Session middleware runs after this and layers its context on
			// top of the CSRF request replacement.
			c.Request = r
			c.Next()
		}))

		handler.ServeHTTP(c.Writer, c.Request)

		// On rejection gorilla/csrf writes the response and returns without
		// entering the inner handler; the rest of the chain must not run.
		if !passed {
			c.Abort()
		}
	}
}

// GetCSRFToken returns the token to embed in the current request's forms.
func GetCSRFToken(c *gin.Context) string {
	return c.GetString(contextKeyCSRFToken)
}

// csrfErrorHandler sends failed form submissions back where they came from.
// Only the local path of the referer is used as the redirect target.
func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	target := ""
	if referer := r.Referer(); referer != "" {
		if u, err := url.Parse(referer); err == nil {
			target = SanitizeRedirectPath(u.RequestURI())
		}
	}
	if target != "" {
		separator := "?"
		if strings.Contains(target, "?") {
			separator = "&"
		}
		http.Redirect(w, r, target+separator+"error=Session+expired.+Please+try+again.", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte("CSRF token invalid or missing"))
}
