package app

import (
	"time"

	"github.com/bettyshin1213/hbd-public/internal/middleware"
	"github.com/bettyshin1213/hbd-public/internal/modules/guestbook"
	"github.com/bettyshin1213/hbd-public/internal/modules/note"
	"github.com/bettyshin1213/hbd-public/internal/modules/photo"
	"github.com/bettyshin1213/hbd-public/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// home returns everything the index page renders.
func (a *App) home(c *gin.Context) {
	var (
		photos   []photo.Item
		current  *note.View
		messages []guestbook.MessageView
	)
	// The session must be on the context before the readers start.
	isOwner := middleware.IsOwner(c)

	var eg errgroup.Group
	eg.Go(func() (err error) {
		photos, err = a.photos.Items()
		return err
	})
	eg.Go(func() (err error) {
		current, err = a.notes.Current()
		return err
	})
	eg.Go(func() (err error) {
		messages, err = a.guestbook.Views(c)
		return err
	})
	if err := eg.Wait(); err != nil {
		a.logger.Error("load home page failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{
		"youtube_id":        a.cfg.YoutubeID,
		"birthday_username": a.cfg.BirthdayUsername,
		"current_year":      time.Now().Year(),
		"portfolio_mode":    a.cfg.PortfolioMode,
		"is_owner":          isOwner,
		"note":              current,
		"messages":          messages,
		"photos":            photos,
		"flash":             response.PopFlash(c),
	})
}
