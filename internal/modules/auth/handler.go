package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bettyshin1213/hbd-public/internal/middleware"
	"github.com/bettyshin1213/hbd-public/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgLoggedIn  = "logged in"
	msgLoggedOut = "logged out"
	msgFailed    = "something went wrong, please try again later"
)

type Handler struct {
	svc      *Service
	sessions *middleware.Sessions
	log      *zap.Logger
}

func NewHandler(svc *Service, sessions *middleware.Sessions, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, sessions: sessions, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.login)
	rg.POST("/logout", h.logout)
	rg.GET("/session", h.session)
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	_ = c.ShouldBind(&dto)
	next := safeNext(c.Query("next"))
	if next == "/" {
		next = safeNext(dto.Next)
	}

	if err := h.svc.Login(dto.Password); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			response.Outcome(c, http.StatusUnauthorized, false, err.Error(), nil, "/")
			return
		}
		h.log.Error("login failed", zap.Error(err))
		response.Outcome(c, http.StatusInternalServerError, false, msgFailed, nil, "/")
		return
	}

	if err := h.sessions.Rotate(c); err != nil {
		h.log.Warn("drop pre-login session failed", zap.Error(err))
	}
	middleware.CurrentSession(c).Owner = true
	if err := h.sessions.Save(c); err != nil {
		h.log.Error("save session failed", zap.Error(err))
		response.Outcome(c, http.StatusInternalServerError, false, msgFailed, nil, "/")
		return
	}
	response.Outcome(c, http.StatusOK, true, msgLoggedIn, gin.H{"next": next}, next)
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.sessions.Destroy(c); err != nil {
		h.log.Warn("drop session failed", zap.Error(err))
	}
	response.Outcome(c, http.StatusOK, true, msgLoggedOut, nil, "/")
}

func (h *Handler) session(c *gin.Context) {
	response.OK(c, gin.H{"is_owner": middleware.IsOwner(c)})
}

// safeNext keeps redirects on this site.
func safeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.ContainsAny(next, "\\\r\n") {
		return "/"
	}
	return next
}
