package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bettyshin1213/hbd-public/internal/pkg/jwt"
	sessionpkg "github.com/bettyshin1213/hbd-public/internal/pkg/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newSessions(t *testing.T) (*Sessions, *sessionpkg.MemoryStore) {
	t.Helper()
	signer, err := jwt.NewSigner("test")
	require.NoError(t, err)
	store := sessionpkg.NewMemoryStore(100, time.Hour)
	return NewSessions(store, signer, CookieOptions{Name: "sid", TTL: time.Hour}, nil), store
}

func TestSessionCookieRoundTrip(t *testing.T) {
	t.Parallel()

	sessions, store := newSessions(t)
	r := gin.New()
	r.Use(sessions.Middleware())
	r.POST("/mark", func(c *gin.Context) {
		CurrentSession(c).MarkLiked("m1")
		require.NoError(t, sessions.Save(c))
		c.Status(http.StatusOK)
	})
	r.GET("/check", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"liked": CurrentSession(c).HasLiked("m1")})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/mark", nil))
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/check", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `{"liked":true}`, w.Body.String())

	claims, err := sessions.signer.Parse(cookies[0].Value)
	require.NoError(t, err)
	_, err = store.Get(context.Background(), claims.SessionID)
	assert.NoError(t, err)
}

func TestSessionRotate(t *testing.T) {
	t.Parallel()

	sessions, store := newSessions(t)
	old := &sessionpkg.Session{ID: "old", Liked: []string{"m1"}}
	require.NoError(t, store.Save(context.Background(), old))

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Set(ContextKeySession, old)

	require.NoError(t, sessions.Rotate(c))
	fresh := CurrentSession(c)
	assert.NotEqual(t, "old", fresh.ID)
	assert.True(t, fresh.HasLiked("m1"))

	_, err := store.Get(context.Background(), "old")
	assert.ErrorIs(t, err, sessionpkg.ErrNotFound)

	fresh.MarkLiked("m2")
	assert.Equal(t, []string{"m1"}, old.Liked)
}

func TestSessionTamperedCookieStartsFresh(t *testing.T) {
	t.Parallel()

	sessions, _ := newSessions(t)
	r := gin.New()
	r.Use(sessions.Middleware())
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"owner": IsOwner(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "garbage"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `{"owner":false}`, w.Body.String())
}

func TestRequireOwnerAndWritesEnabled(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		owner    bool
		writable bool
		want     int
	}{
		{"anonymous", false, true, http.StatusForbidden},
		{"owner writable", true, true, http.StatusOK},
		{"owner read-only", true, false, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			called := false
			r := gin.New()
			r.Use(func(c *gin.Context) {
				s := sessionpkg.New()
				s.Owner = tc.owner
				c.Set(ContextKeySession, s)
			})
			r.POST("/x", RequireOwner(), WritesEnabled(tc.writable), func(c *gin.Context) {
				called = true
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/x", nil)
			req.Header.Set("Accept", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
			assert.Equal(t, tc.want == http.StatusOK, called)
		})
	}
}
