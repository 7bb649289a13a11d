package photo

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bettyshin1213/hbd-public/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	MediaPrefix  = "/media/photos"
	LetterPrefix = "/static/letter"

	msgUploaded = "upload complete"
	msgDeleted  = "photo deleted"
	msgReset    = "gallery restored to the original photos"

	msgUploadFailed  = "an error occurred while uploading"
	msgDeleteFailed  = "an error occurred while deleting"
	msgResetFailed   = "an error occurred while resetting the gallery"
	msgRestoreFailed = "an error occurred while restoring the original photos"
	msgListFailed    = "could not read the gallery"
)

// Handler exposes the gallery, its owner-only mutations and the letter photos.
type Handler struct {
	store   Store
	letters *Gallery
	log     *zap.Logger
}

func NewHandler(store Store, letters *Gallery, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{store: store, letters: letters, log: log}
}

// RegisterRoutes mounts the photo routes. ownerMW guards owner-only routes and
// writeMW rejects mutations in read-only mode.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, ownerMW, writeMW gin.HandlerFunc) {
	rg.GET("/photos", h.list)
	rg.GET(MediaPrefix+"/*filename", h.serve)
	rg.GET("/letter", ownerMW, h.letter)

	w := rg.Group("/photos", ownerMW, writeMW)
	w.POST("/upload", h.upload)
	w.POST("/delete/*filename", h.delete)
	w.POST("/reset", h.reset)
}

// Items lists the working gallery as public items.
func (h *Handler) Items() ([]Item, error) {
	photos, err := h.store.List()
	if err != nil {
		return nil, err
	}
	return Items(photos, MediaPrefix), nil
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Items()
	if err != nil {
		h.log.Error("list photos failed", zap.Error(err))
		response.Result(c, http.StatusInternalServerError, false, msgListFailed, nil)
		return
	}
	response.OK(c, items)
}

func (h *Handler) serve(c *gin.Context) {
	path, err := h.store.Path(wildcard(c))
	if err != nil {
		if errors.Is(err, ErrPhotoNotFound) || errors.Is(err, ErrInvalidName) {
			response.NotFound(c)
			return
		}
		h.log.Error("serve photo failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	c.File(path)
}

func (h *Handler) letter(c *gin.Context) {
	photos, err := h.letters.List()
	if err != nil {
		h.log.Error("list letter photos failed", zap.Error(err))
		response.Result(c, http.StatusInternalServerError, false, msgListFailed, nil)
		return
	}
	response.OK(c, gin.H{"photos": Items(photos, LetterPrefix)})
}

func (h *Handler) upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil || fh.Filename == "" {
		h.fail(c, ErrNoFile, msgUploadFailed)
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.fail(c, errors.Join(ErrIO, err), msgUploadFailed)
		return
	}
	defer f.Close()

	name, err := h.store.Upload(fh.Filename, f)
	if err != nil {
		h.fail(c, err, msgUploadFailed)
		return
	}
	response.Outcome(c, http.StatusOK, true, msgUploaded, gin.H{"name": name}, "/")
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.store.Delete(wildcard(c)); err != nil {
		h.fail(c, err, msgDeleteFailed)
		return
	}
	response.Outcome(c, http.StatusOK, true, msgDeleted, nil, "/")
}

func (h *Handler) reset(c *gin.Context) {
	if err := h.store.ResetToOrigin(); err != nil {
		switch {
		case errors.Is(err, ErrRestoreFailed):
			h.fail(c, err, msgRestoreFailed)
		default:
			h.fail(c, err, msgResetFailed)
		}
		return
	}
	response.Outcome(c, http.StatusOK, true, msgReset, nil, "/")
}

// fail maps store errors to responses; I/O details are logged, not returned.
func (h *Handler) fail(c *gin.Context, err error, ioMessage string) {
	switch {
	case errors.Is(err, ErrNoFile), errors.Is(err, ErrExtNotAllowed), errors.Is(err, ErrInvalidName):
		response.Outcome(c, http.StatusBadRequest, false, err.Error(), nil, "/")
	case errors.Is(err, ErrPhotoNotFound):
		response.Outcome(c, http.StatusNotFound, false, err.Error(), nil, "/")
	default:
		h.log.Error("photo operation failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		response.Outcome(c, http.StatusInternalServerError, false, ioMessage, nil, "/")
	}
}

func wildcard(c *gin.Context) string {
	return strings.TrimPrefix(c.Param("filename"), "/")
}
