package note

import (
	"errors"
	"net/http"

	"github.com/bettyshin1213/hbd-public/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgSaved  = "the birthday note was saved"
	msgFailed = "something went wrong, please try again later"
)

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, ownerMW, writeMW gin.HandlerFunc) {
	rg.POST("/owner-note", ownerMW, writeMW, h.save)
}

// Current returns the rendered note, or nil when none exists.
func (h *Handler) Current() (*View, error) {
	n, err := h.svc.Get()
	if err != nil {
		return nil, err
	}
	return NewView(n), nil
}

func (h *Handler) save(c *gin.Context) {
	var dto SaveNoteDTO
	_ = c.ShouldBind(&dto)

	if _, err := h.svc.Save(dto.Content); err != nil {
		if errors.Is(err, ErrContentRequired) {
			response.Outcome(c, http.StatusBadRequest, false, err.Error(), nil, "/")
			return
		}
		h.log.Error("save owner note failed", zap.Error(err))
		response.Outcome(c, http.StatusInternalServerError, false, msgFailed, nil, "/")
		return
	}
	response.Outcome(c, http.StatusOK, true, msgSaved, nil, "/")
}
