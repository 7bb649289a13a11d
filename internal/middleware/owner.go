package middleware

import (
	"net/http"

	"github.com/bettyshin1213/hbd-public/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const (
	msgOwnerOnly = "only the birthday person can do this; please log in"
	msgReadOnly  = "this site is in read-only demo mode; changes are disabled"
)

// RequireOwner rejects requests without the privileged owner session.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsOwner(c) {
			response.Outcome(c, http.StatusForbidden, false, msgOwnerOnly, nil, "/")
			return
		}
		c.Next()
	}
}

// WritesEnabled short-circuits mutating owner endpoints with 403 when the site
// runs in read-only demo mode.
func WritesEnabled(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			response.Outcome(c, http.StatusForbidden, false, msgReadOnly, nil, "/")
			return
		}
		c.Next()
	}
}
