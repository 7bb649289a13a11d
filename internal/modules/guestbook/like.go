package guestbook

import "github.com/bettyshin1213/hbd-public/internal/models"

// Visitor is the per-session state the like tracker reads and updates.
type Visitor interface {
	HasLiked(messageID string) bool
	MarkLiked(messageID string)
	UnmarkLiked(messageID string)
}

// Counter persists like counts. Increment adds exactly one; Decrement
// subtracts one but never goes below zero. Both return the stored count.
type Counter interface {
	IncrementLikes(id string) (int, error)
	DecrementLikes(id string) (int, error)
}

// LikeTracker allows at most one like per visitor session and message. The
// liked set lives only in the session; the check-then-mark step is not
// synchronised across concurrent requests of the same session.
type LikeTracker struct {
	counter Counter
}

func NewLikeTracker(counter Counter) *LikeTracker {
	return &LikeTracker{counter: counter}
}

// Like returns the message's count after liking. Liking twice is a no-op.
func (t *LikeTracker) Like(v Visitor, msg *models.MessageModel) (int, error) {
	if v.HasLiked(msg.ID) {
		return msg.LikeCount, nil
	}
	n, err := t.counter.IncrementLikes(msg.ID)
	if err != nil {
		return msg.LikeCount, err
	}
	msg.LikeCount = n
	v.MarkLiked(msg.ID)
	return n, nil
}

// Unlike reverses this visitor's like. Without a prior like it is a no-op.
func (t *LikeTracker) Unlike(v Visitor, msg *models.MessageModel) (int, error) {
	if !v.HasLiked(msg.ID) {
		return msg.LikeCount, nil
	}
	n, err := t.counter.DecrementLikes(msg.ID)
	if err != nil {
		return msg.LikeCount, err
	}
	msg.LikeCount = n
	v.UnmarkLiked(msg.ID)
	return n, nil
}
