package note

import "errors"

var ErrContentRequired = errors.New("please enter a message")

type SaveNoteDTO struct {
	Content string `json:"content" form:"content"`
}

// View is the note as shown on the home page.
type View struct {
	Content   string `json:"content"`
	HTML      string `json:"html"`
	UpdatedAt string `json:"updated_at,omitempty"`
}
