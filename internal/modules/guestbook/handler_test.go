package guestbook

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/bettyshin1213/hbd-public/internal/middleware"
	"github.com/bettyshin1213/hbd-public/internal/pkg/jwt"
	sessionpkg "github.com/bettyshin1213/hbd-public/internal/pkg/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const ownerHeader = "X-Test-Owner"

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	svc, _ := newTestService(t)
	signer, err := jwt.NewSigner("test")
	require.NoError(t, err)
	sessions := middleware.NewSessions(sessionpkg.NewMemoryStore(100, time.Hour), signer,
		middleware.CookieOptions{Name: "sid", TTL: time.Hour}, nil)

	r := gin.New()
	r.Use(sessions.Middleware())
	r.Use(func(c *gin.Context) {
		if c.GetHeader(ownerHeader) != "" {
			middleware.CurrentSession(c).Owner = true
		}
	})
	NewHandler(svc, sessions, nil).RegisterRoutes(&r.RouterGroup)
	return r, svc
}

func doJSON(r *gin.Engine, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandlerCreateJSON(t *testing.T) {
	t.Parallel()

	r, svc := newTestRouter(t)
	w := doJSON(r, "/guestbook/add", `{"nickname":"kim","text":"hbd!","pin":"1234"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, true, body["ok"])
	extra, ok := body["extra"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "kim", extra["nickname"])
	assert.Equal(t, float64(0), extra["like_count"])

	m, err := svc.Get(extra["message_id"].(string))
	require.NoError(t, err)
	assert.True(t, m.HasPIN())
}

func TestHandlerCreateValidation(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t)
	w := doJSON(r, "/guestbook/add", `{"text":"  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrTextRequired.Error(), decode(t, w)["message"])

	w = doJSON(r, "/guestbook/add", `{"text":"hi","pin":"12ab"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerFormPostRedirectsWithFlash(t *testing.T) {
	t.Parallel()

	r, svc := newTestRouter(t)
	form := url.Values{"text": {"from a form"}, "pin": {"4321"}}
	req := httptest.NewRequest(http.MethodPost, "/guestbook/add", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	var flash bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "flash" {
			flash = true
		}
	}
	assert.True(t, flash)

	messages, err := svc.List()
	require.NoError(t, err)
	require.Len(t, messages, 1)

	form = url.Values{"pin": {"4321"}}
	req = httptest.NewRequest(http.MethodPost, "/guestbook/"+messages[0].ID+"/verify", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandlerPINReasons(t *testing.T) {
	t.Parallel()

	r, svc := newTestRouter(t)
	withPIN, err := svc.Create(&CreateMessageDTO{Text: "a", PIN: "1234"})
	require.NoError(t, err)
	withoutPIN, err := svc.Create(&CreateMessageDTO{Text: "b"})
	require.NoError(t, err)

	cases := []struct {
		path, body string
		status     int
		message    string
	}{
		{"/guestbook/" + withPIN.ID + "/verify", `{"pin":"1234"}`, http.StatusOK, msgVerified},
		{"/guestbook/" + withPIN.ID + "/verify", `{"pin":"9999"}`, http.StatusBadRequest, ErrPINMismatch.Error()},
		{"/guestbook/" + withPIN.ID + "/verify", `{}`, http.StatusBadRequest, ErrPINRequired.Error()},
		{"/guestbook/" + withoutPIN.ID + "/verify", `{"pin":"1234"}`, http.StatusBadRequest, ErrPINNotSet.Error()},
		{"/guestbook/" + withPIN.ID + "/update", `{"text":"","pin":"1234"}`, http.StatusBadRequest, ErrTextRequired.Error()},
		{"/guestbook/missing/delete", `{"pin":"1234"}`, http.StatusNotFound, ErrMessageNotFound.Error()},
	}
	for _, tc := range cases {
		w := doJSON(r, tc.path, tc.body)
		assert.Equal(t, tc.status, w.Code, tc.path+" "+tc.body)
		assert.Equal(t, tc.message, decode(t, w)["message"], tc.path+" "+tc.body)
	}
}

func TestHandlerOwnerCanDeleteWithoutPIN(t *testing.T) {
	t.Parallel()

	r, svc := newTestRouter(t)
	m, err := svc.Create(&CreateMessageDTO{Text: "no pin"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/guestbook/"+m.ID+"/delete", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(ownerHeader, "1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, m.ID, decode(t, w)["message_id"])
	_, err = svc.Get(m.ID)
	assert.ErrorIs(t, err, ErrMessageNotFound)
}

func TestHandlerLikeUnlikeAcrossRequests(t *testing.T) {
	t.Parallel()

	r, svc := newTestRouter(t)
	m, err := svc.Create(&CreateMessageDTO{Text: "like me"})
	require.NoError(t, err)

	w := doJSON(r, "/messages/"+m.ID+"/like", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"liked":true,"count":1}`, w.Body.String())
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w = doJSON(r, "/messages/"+m.ID+"/like", "", cookies...)
	assert.JSONEq(t, `{"ok":true,"liked":true,"count":1}`, w.Body.String())

	w = doJSON(r, "/messages/"+m.ID+"/like", "")
	assert.JSONEq(t, `{"ok":true,"liked":true,"count":2}`, w.Body.String(), "a new session likes again")

	w = doJSON(r, "/messages/"+m.ID+"/unlike", "", cookies...)
	assert.JSONEq(t, `{"ok":true,"liked":false,"count":1}`, w.Body.String())

	w = doJSON(r, "/messages/"+m.ID+"/unlike", "", cookies...)
	assert.JSONEq(t, `{"ok":true,"liked":false,"count":1}`, w.Body.String())

	w = doJSON(r, "/messages/missing/like", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type failingSaver struct{}

func (failingSaver) Save(*gin.Context) error { return errors.New("store unavailable") }

func TestHandlerLikeRevertedWhenSessionSaveFails(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	liked, err := svc.Create(&CreateMessageDTO{Text: "like me"})
	require.NoError(t, err)
	unliked, err := svc.Create(&CreateMessageDTO{Text: "unlike me"})
	require.NoError(t, err)
	_, err = svc.IncrementLikes(unliked.ID)
	require.NoError(t, err)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		s := sessionpkg.New()
		s.MarkLiked(unliked.ID)
		c.Set(middleware.ContextKeySession, s)
	})
	NewHandler(svc, failingSaver{}, nil).RegisterRoutes(&r.RouterGroup)

	w := doJSON(r, "/messages/"+liked.ID+"/like", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	w = doJSON(r, "/messages/"+liked.ID+"/like", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	stored, err := svc.Get(liked.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.LikeCount, "retries do not inflate the count")

	w = doJSON(r, "/messages/"+unliked.ID+"/unlike", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	stored, err = svc.Get(unliked.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.LikeCount)
}
