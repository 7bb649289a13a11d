package guestbook

import (
	"errors"
	"time"

	"github.com/bettyshin1213/hbd-public/internal/models"
)

const defaultNickname = "anonymous"

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrTextRequired    = errors.New("please enter a message")
	ErrInvalidPIN      = errors.New("the PIN must be exactly 4 digits")

	ErrPINRequired = errors.New("PIN required (4 digits)")
	ErrPINNotSet   = errors.New("no PIN was set at creation; only the privileged owner may modify")
	ErrPINMismatch = errors.New("PIN mismatch")
)

// IsAuthorizationError reports whether err is a PIN authorization denial.
func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrPINRequired) || errors.Is(err, ErrPINNotSet) || errors.Is(err, ErrPINMismatch)
}

type CreateMessageDTO struct {
	Nickname string `json:"nickname" form:"nickname"`
	Text     string `json:"text"     form:"text"`
	PIN      string `json:"pin"      form:"pin"`
}

type UpdateMessageDTO struct {
	Nickname string `json:"nickname" form:"nickname"`
	Text     string `json:"text"     form:"text"`
	PIN      string `json:"pin"      form:"pin"`
}

type PINDTO struct {
	PIN string `json:"pin" form:"pin"`
}

// MessageView is a message as shown to a particular visitor.
type MessageView struct {
	ID        string     `json:"id"`
	Nickname  string     `json:"nickname"`
	Text      string     `json:"text"`
	LikeCount int        `json:"like_count"`
	HasPIN    bool       `json:"has_pin"`
	Liked     bool       `json:"liked"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// NewMessageView renders m for a visitor.
func NewMessageView(m *models.MessageModel, v Visitor) MessageView {
	view := MessageView{
		ID:        m.ID,
		Nickname:  m.Nickname,
		Text:      m.Text,
		LikeCount: m.LikeCount,
		HasPIN:    m.HasPIN(),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if v != nil {
		view.Liked = v.HasLiked(m.ID)
	}
	return view
}
