package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/bettyshin1213/hbd-public/internal/pkg/jwt"
	sessionpkg "github.com/bettyshin1213/hbd-public/internal/pkg/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const ContextKeySession = "session"

// CookieOptions controls the session cookie.
type CookieOptions struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// Sessions loads the visitor's server-side session from a signed cookie.
type Sessions struct {
	store  sessionpkg.Store
	signer *jwt.Signer
	opts   CookieOptions
	log    *zap.Logger
}

func NewSessions(store sessionpkg.Store, signer *jwt.Signer, opts CookieOptions, log *zap.Logger) *Sessions {
	if opts.TTL <= 0 {
		opts.TTL = sessionpkg.DefaultTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Sessions{store: store, signer: signer, opts: opts, log: log}
}

// Middleware attaches the current session, or a fresh unsaved one, to the context.
func (m *Sessions) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeySession, m.load(c))
		c.Next()
	}
}

func (m *Sessions) load(c *gin.Context) *sessionpkg.Session {
	raw, err := c.Cookie(m.opts.Name)
	if err != nil || raw == "" {
		return sessionpkg.New()
	}
	claims, err := m.signer.Parse(raw)
	if err != nil {
		return sessionpkg.New()
	}
	s, err := m.store.Get(c.Request.Context(), claims.SessionID)
	if err != nil {
		if !errors.Is(err, sessionpkg.ErrNotFound) {
			m.log.Warn("load session failed", zap.Error(err))
		}
		return sessionpkg.New()
	}
	return s
}

// Save persists the current session and refreshes the cookie. Call before
// writing the response body.
func (m *Sessions) Save(c *gin.Context) error {
	s := CurrentSession(c)
	if err := m.store.Save(c.Request.Context(), s); err != nil {
		return err
	}
	token, err := m.signer.Sign(s.ID, m.opts.TTL)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.opts.Name, token, int(m.opts.TTL.Seconds()), "/", "", m.opts.Secure, true)
	return nil
}

// Rotate moves the current session to a fresh ID and drops the old one from
// the store. Call on privilege changes, then Save.
func (m *Sessions) Rotate(c *gin.Context) error {
	old := CurrentSession(c)
	c.Set(ContextKeySession, old.Renew())
	if err := m.store.Delete(c.Request.Context(), old.ID); err != nil && !errors.Is(err, sessionpkg.ErrNotFound) {
		return err
	}
	return nil
}

// Destroy drops the stored session, expires the cookie and leaves a fresh
// anonymous session on the context.
func (m *Sessions) Destroy(c *gin.Context) error {
	s := CurrentSession(c)
	err := m.store.Delete(c.Request.Context(), s.ID)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.opts.Name, "", -1, "/", "", m.opts.Secure, true)
	c.Set(ContextKeySession, sessionpkg.New())
	return err
}

// CurrentSession returns the request's session. Outside the middleware it
// returns a throwaway anonymous session.
func CurrentSession(c *gin.Context) *sessionpkg.Session {
	if v, ok := c.Get(ContextKeySession); ok {
		if s, ok := v.(*sessionpkg.Session); ok {
			return s
		}
	}
	s := sessionpkg.New()
	c.Set(ContextKeySession, s)
	return s
}

// IsOwner reports whether the request carries the privileged owner session.
func IsOwner(c *gin.Context) bool {
	return CurrentSession(c).IsPrivileged()
}
