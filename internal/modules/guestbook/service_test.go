package guestbook

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bettyshin1213/hbd-public/internal/models"
	"github.com/bettyshin1213/hbd-public/internal/pkg/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type recordingSink struct {
	mu     sync.Mutex
	events []notify.Event
}

func (r *recordingSink) Notify(e notify.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingSink) titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Title)
	}
	return out
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.MessageModel{}))
	return db
}

func newTestService(t *testing.T) (*Service, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	svc := NewService(newTestDB(t), sink)
	return svc, sink
}

func TestCreateDefaultsAndValidation(t *testing.T) {
	t.Parallel()

	svc, sink := newTestService(t)

	_, err := svc.Create(&CreateMessageDTO{Text: "   "})
	assert.ErrorIs(t, err, ErrTextRequired)

	_, err = svc.Create(&CreateMessageDTO{Text: "hi", PIN: "12"})
	assert.ErrorIs(t, err, ErrInvalidPIN)

	m, err := svc.Create(&CreateMessageDTO{Text: "  happy birthday  ", Nickname: "  "})
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "anonymous", m.Nickname)
	assert.Equal(t, "happy birthday", m.Text)
	assert.False(t, m.HasPIN())
	assert.Nil(t, m.UpdatedAt)
	assert.Equal(t, []string{"New guestbook message"}, sink.titles())
}

func TestListNewestFirst(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, text := range []string{"first", "second", "third"} {
		at := base.Add(time.Duration(i) * time.Minute)
		svc.now = func() time.Time { return at }
		_, err := svc.Create(&CreateMessageDTO{Text: text})
		require.NoError(t, err)
	}

	messages, err := svc.List()
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "third", messages[0].Text)
	assert.Equal(t, "first", messages[2].Text)
}

func TestUpdateWithPIN(t *testing.T) {
	t.Parallel()

	svc, sink := newTestService(t)
	m, err := svc.Create(&CreateMessageDTO{Text: "hi", Nickname: "kim", PIN: "1234"})
	require.NoError(t, err)

	_, err = svc.Update(m.ID, &UpdateMessageDTO{Text: "", PIN: "1234"}, false)
	assert.ErrorIs(t, err, ErrTextRequired)

	_, err = svc.Update(m.ID, &UpdateMessageDTO{Text: "edited", PIN: "0000"}, false)
	assert.ErrorIs(t, err, ErrPINMismatch)

	updated, err := svc.Update(m.ID, &UpdateMessageDTO{Text: "edited", PIN: "1234"}, false)
	require.NoError(t, err)
	assert.Equal(t, "kim", updated.Nickname)
	assert.Equal(t, "edited", updated.Text)
	require.NotNil(t, updated.UpdatedAt)

	stored, err := svc.Get(m.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", stored.Text)
	assert.Equal(t, *m.PinHash, *stored.PinHash)
	assert.NotNil(t, stored.UpdatedAt)

	_, err = svc.Verify(m.ID, "1234", false)
	assert.NoError(t, err, "PIN still works after an edit")
	assert.Contains(t, sink.titles(), "Guestbook message edited")
}

func TestOwnerOverridesMissingPIN(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	m, err := svc.Create(&CreateMessageDTO{Text: "no pin"})
	require.NoError(t, err)

	_, err = svc.Verify(m.ID, "1234", false)
	assert.ErrorIs(t, err, ErrPINNotSet)

	updated, err := svc.Update(m.ID, &UpdateMessageDTO{Text: "by owner", Nickname: "owner"}, true)
	require.NoError(t, err)
	assert.Equal(t, "owner", updated.Nickname)

	_, err = svc.Delete(m.ID, "", false)
	assert.ErrorIs(t, err, ErrPINRequired)

	deleted, err := svc.Delete(m.ID, "", true)
	require.NoError(t, err)
	assert.Equal(t, m.ID, deleted.ID)

	_, err = svc.Get(m.ID)
	assert.ErrorIs(t, err, ErrMessageNotFound)
}

func TestDeleteWithPIN(t *testing.T) {
	t.Parallel()

	svc, sink := newTestService(t)
	m, err := svc.Create(&CreateMessageDTO{Text: "bye", PIN: "4321"})
	require.NoError(t, err)

	_, err = svc.Delete(m.ID, "4321", false)
	require.NoError(t, err)
	assert.Contains(t, sink.titles(), "Guestbook message deleted")

	_, err = svc.Delete(m.ID, "4321", false)
	assert.ErrorIs(t, err, ErrMessageNotFound)
}

func TestLikeCounterFloorsAtZero(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	m, err := svc.Create(&CreateMessageDTO{Text: "like me"})
	require.NoError(t, err)

	n, err := svc.IncrementLikes(m.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = svc.DecrementLikes(m.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = svc.DecrementLikes(m.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = svc.IncrementLikes("missing")
	assert.ErrorIs(t, err, ErrMessageNotFound)
}

func TestLikeTrackerAgainstDatabase(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	m, err := svc.Create(&CreateMessageDTO{Text: "like me"})
	require.NoError(t, err)
	tracker := NewLikeTracker(svc)

	visitor := &fakeVisitor{liked: map[string]bool{}}
	n, err := tracker.Like(visitor, m)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = tracker.Like(visitor, m)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	stored, err := svc.Get(m.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.LikeCount)

	n, err = tracker.Unlike(visitor, stored)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

type fakeVisitor struct {
	liked map[string]bool
}

func (f *fakeVisitor) HasLiked(id string) bool { return f.liked[id] }
func (f *fakeVisitor) MarkLiked(id string)     { f.liked[id] = true }
func (f *fakeVisitor) UnmarkLiked(id string)   { delete(f.liked, id) }
