package response

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	FlashCookie = "flash"

	msgInternal = "something went wrong, please try again later"
)

// OK sends a 200 JSON response.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Result sends the {ok, message} envelope merged with extra fields.
func Result(c *gin.Context, status int, ok bool, message string, extra gin.H) {
	body := gin.H{"ok": ok}
	if message != "" {
		body["message"] = message
	}
	for k, v := range extra {
		body[k] = v
	}
	c.AbortWithStatusJSON(status, body)
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	Result(c, http.StatusBadRequest, false, message, nil)
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context, message string) {
	Result(c, http.StatusUnauthorized, false, message, nil)
}

// ForbiddenMsg sends a 403 error response with a custom message.
func ForbiddenMsg(c *gin.Context, message string) {
	Result(c, http.StatusForbidden, false, message, nil)
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context) {
	Result(c, http.StatusNotFound, false, "not found", nil)
}

// NotFoundMsg sends a 404 error with a custom message.
func NotFoundMsg(c *gin.Context, message string) {
	Result(c, http.StatusNotFound, false, message, nil)
}

// MethodNotAllowed sends a 405 error response.
func MethodNotAllowed(c *gin.Context) {
	Result(c, http.StatusMethodNotAllowed, false, "method not allowed", nil)
}

// InternalError sends a 500 with a generic message; callers log the cause.
func InternalError(c *gin.Context) {
	Result(c, http.StatusInternalServerError, false, msgInternal, nil)
}

// WantsJSON reports whether the client expects a JSON reply rather than a
// redirect back to the page.
func WantsJSON(c *gin.Context) bool {
	if strings.HasPrefix(c.ContentType(), gin.MIMEJSON) {
		return true
	}
	if strings.Contains(c.GetHeader("Accept"), gin.MIMEJSON) {
		return true
	}
	return strings.EqualFold(c.GetHeader("X-Requested-With"), "XMLHttpRequest")
}

// Outcome replies with JSON for API clients, or stores message in a short-lived
// flash cookie and redirects form posts back to target. extra is JSON-only.
func Outcome(c *gin.Context, status int, ok bool, message string, extra gin.H, target string) {
	if WantsJSON(c) {
		Result(c, status, ok, message, extra)
		return
	}
	if message != "" {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(FlashCookie, message, 60, "/", "", false, false)
	}
	if target == "" {
		target = "/"
	}
	c.Redirect(http.StatusSeeOther, target)
	c.Abort()
}

// PopFlash returns and clears the pending flash message.
func PopFlash(c *gin.Context) string {
	msg, err := c.Cookie(FlashCookie)
	if err != nil || msg == "" {
		return ""
	}
	c.SetCookie(FlashCookie, "", -1, "/", "", false, false)
	return msg
}
