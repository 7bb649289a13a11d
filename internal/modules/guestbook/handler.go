package guestbook

import (
	"errors"
	"net/http"
	"time"

	"github.com/bettyshin1213/hbd-public/internal/middleware"
	"github.com/bettyshin1213/hbd-public/internal/models"
	"github.com/bettyshin1213/hbd-public/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgCreated  = "your message was added to the guestbook"
	msgVerified = "verified"
	msgUpdated  = "message updated"
	msgDeleted  = "message deleted"
	msgFailed   = "something went wrong, please try again later"
)

// SessionSaver persists the visitor session before the response is written.
type SessionSaver interface {
	Save(c *gin.Context) error
}

type Handler struct {
	svc      *Service
	likes    *LikeTracker
	sessions SessionSaver
	log      *zap.Logger
}

func NewHandler(svc *Service, sessions SessionSaver, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, likes: NewLikeTracker(svc), sessions: sessions, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/guestbook")
	g.GET("", h.list)
	g.POST("/add", h.create)
	g.POST("/:id/verify", h.verify)
	g.POST("/:id/update", h.update)
	g.POST("/:id/delete", h.delete)

	m := rg.Group("/messages")
	m.POST("/:id/like", h.like)
	m.POST("/:id/unlike", h.unlike)
}

// Views lists messages rendered for the current visitor.
func (h *Handler) Views(c *gin.Context) ([]MessageView, error) {
	messages, err := h.svc.List()
	if err != nil {
		return nil, err
	}
	visitor := middleware.CurrentSession(c)
	views := make([]MessageView, 0, len(messages))
	for i := range messages {
		views = append(views, NewMessageView(&messages[i], visitor))
	}
	return views, nil
}

func (h *Handler) list(c *gin.Context) {
	views, err := h.Views(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, views)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateMessageDTO
	_ = c.ShouldBind(&dto)

	m, err := h.svc.Create(&dto)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Outcome(c, http.StatusOK, true, msgCreated, gin.H{
		"extra": gin.H{
			"message_id": m.ID,
			"nickname":   m.Nickname,
			"text":       m.Text,
			"created_at": m.CreatedAt.Format(time.RFC3339),
			"like_count": m.LikeCount,
		},
	}, "/")
}

func (h *Handler) verify(c *gin.Context) {
	var dto PINDTO
	_ = c.ShouldBind(&dto)

	if _, err := h.svc.Verify(c.Param("id"), dto.PIN, middleware.IsOwner(c)); err != nil {
		h.fail(c, err)
		return
	}
	response.Outcome(c, http.StatusOK, true, msgVerified, nil, "/")
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateMessageDTO
	_ = c.ShouldBind(&dto)

	if _, err := h.svc.Update(c.Param("id"), &dto, middleware.IsOwner(c)); err != nil {
		h.fail(c, err)
		return
	}
	response.Outcome(c, http.StatusOK, true, msgUpdated, nil, "/")
}

func (h *Handler) delete(c *gin.Context) {
	var dto PINDTO
	_ = c.ShouldBind(&dto)

	m, err := h.svc.Delete(c.Param("id"), dto.PIN, middleware.IsOwner(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Outcome(c, http.StatusOK, true, msgDeleted, gin.H{"message_id": m.ID}, "/")
}

func (h *Handler) like(c *gin.Context) {
	h.toggleLike(c, true)
}

func (h *Handler) unlike(c *gin.Context) {
	h.toggleLike(c, false)
}

func (h *Handler) toggleLike(c *gin.Context, liked bool) {
	m, err := h.svc.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	visitor := middleware.CurrentSession(c)
	changed := visitor.HasLiked(m.ID) != liked
	count, err := h.apply(visitor, m, liked)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.sessions.Save(c); err != nil {
		h.log.Error("save session failed", zap.String("message_id", m.ID), zap.Error(err))
		// Undo the toggle; the stored session still holds the old state.
		if changed {
			if _, rerr := h.apply(visitor, m, !liked); rerr != nil {
				h.log.Error("revert like failed", zap.String("message_id", m.ID), zap.Error(rerr))
			}
		}
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"ok": true, "liked": liked, "count": count})
}

func (h *Handler) apply(v Visitor, m *models.MessageModel, liked bool) (int, error) {
	if liked {
		return h.likes.Like(v, m)
	}
	return h.likes.Unlike(v, m)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrMessageNotFound):
		response.Outcome(c, http.StatusNotFound, false, err.Error(), nil, "/")
	case errors.Is(err, ErrTextRequired), errors.Is(err, ErrInvalidPIN), IsAuthorizationError(err):
		response.Outcome(c, http.StatusBadRequest, false, err.Error(), nil, "/")
	default:
		h.log.Error("guestbook operation failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		response.Outcome(c, http.StatusInternalServerError, false, msgFailed, nil, "/")
	}
}
