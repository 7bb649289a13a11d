package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bettyshin1213/hbd-public/internal/config"
	"github.com/bettyshin1213/hbd-public/internal/database"
	"github.com/bettyshin1213/hbd-public/internal/middleware"
	"github.com/bettyshin1213/hbd-public/internal/modules/auth"
	"github.com/bettyshin1213/hbd-public/internal/modules/guestbook"
	"github.com/bettyshin1213/hbd-public/internal/modules/note"
	"github.com/bettyshin1213/hbd-public/internal/modules/photo"
	"github.com/bettyshin1213/hbd-public/internal/pkg/jwt"
	"github.com/bettyshin1213/hbd-public/internal/pkg/notify"
	pkgredis "github.com/bettyshin1213/hbd-public/internal/pkg/redis"
	sessionpkg "github.com/bettyshin1213/hbd-public/internal/pkg/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const memorySessionCapacity = 10000

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	redis  *pkgredis.Client
	logger *zap.Logger

	sessions  *middleware.Sessions
	photos    *photo.Handler
	guestbook *guestbook.Handler
	notes     *note.Handler
	auth      *auth.Handler
}

// New initializes the application: DB, sessions, notifications, routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	applyRuntimeSettings(cfg, logger)

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	if err := database.Seed(db, cfg); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}

	a := &App{cfg: cfg, db: db, logger: logger}

	store, err := a.sessionStore()
	if err != nil {
		return nil, err
	}
	signer, err := jwt.NewSigner(cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("session signer: %w", err)
	}
	a.sessions = middleware.NewSessions(store, signer, middleware.CookieOptions{
		Name:   cfg.Session.CookieName,
		TTL:    cfg.SessionTTL(),
		Secure: cfg.Session.Secure,
	}, logger)

	photos := photo.NewLocalStore(cfg.OriginPhotoDir(), cfg.PhotoDir())
	if err := photos.EnsureSeeded(); err != nil {
		logger.Warn("seed photo directory failed", zap.String("dir", photos.Dir()), zap.Error(err))
	}
	sink := notify.New(cfg, logger)

	a.photos = photo.NewHandler(photos, photo.NewGallery(cfg.LetterDir()), logger)
	a.guestbook = guestbook.NewHandler(guestbook.NewService(db, sink), a.sessions, logger)
	a.notes = note.NewHandler(note.NewService(db), logger)
	a.auth = auth.NewHandler(auth.NewService(db, cfg.BirthdayUsername, cfg.BirthdayPass), a.sessions, logger)

	a.router = newRouter(cfg, logger)
	a.router.Use(a.sessions.Middleware())
	a.registerRoutes()
	return a, nil
}

func (a *App) sessionStore() (sessionpkg.Store, error) {
	if a.cfg.RedisURL == "" {
		return sessionpkg.NewMemoryStore(memorySessionCapacity, a.cfg.SessionTTL()), nil
	}
	rc, err := pkgredis.Connect(a.cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	a.redis = rc
	return sessionpkg.NewRedisStore(rc, a.cfg.SessionTTL()), nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown releases the database and redis connections.
func (a *App) Shutdown() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("close redis failed", zap.Error(err))
		}
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
