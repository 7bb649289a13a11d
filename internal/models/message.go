package models

// MessageModel is an anonymous guestbook entry.
type MessageModel struct {
	Base
	Nickname  string  `json:"nickname"   gorm:"type:varchar(50);not null"`
	Text      string  `json:"text"       gorm:"type:text;not null"`
	PinHash   *string `json:"-"          gorm:"type:varchar(255)"`
	LikeCount int     `json:"like_count" gorm:"not null;default:0"`
}

func (MessageModel) TableName() string { return "messages" }

// HasPIN reports whether the entry was created with an edit PIN.
func (m *MessageModel) HasPIN() bool {
	return m.PinHash != nil && *m.PinHash != ""
}
