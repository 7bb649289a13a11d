package session

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
)

const DefaultTTL = 14 * 24 * time.Hour

var ErrNotFound = errors.New("session not found")

// Session is the server-side state behind a visitor's cookie.
type Session struct {
	ID    string   `json:"id"`
	Owner bool     `json:"owner"`
	Liked []string `json:"liked,omitempty"`
}

// New returns an empty anonymous session with a fresh ID.
func New() *Session {
	return &Session{ID: uuid.NewString()}
}

func (s *Session) IsPrivileged() bool { return s.Owner }

func (s *Session) HasLiked(messageID string) bool {
	return slices.Contains(s.Liked, messageID)
}

func (s *Session) MarkLiked(messageID string) {
	if !s.HasLiked(messageID) {
		s.Liked = append(s.Liked, messageID)
	}
}

func (s *Session) UnmarkLiked(messageID string) {
	s.Liked = slices.DeleteFunc(s.Liked, func(id string) bool { return id == messageID })
}

// Renew returns a copy of s under a fresh ID.
func (s *Session) Renew() *Session {
	c := s.clone()
	c.ID = uuid.NewString()
	return c
}

func (s *Session) clone() *Session {
	c := *s
	c.Liked = slices.Clone(s.Liked)
	return &c
}

// Store persists sessions by ID.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
