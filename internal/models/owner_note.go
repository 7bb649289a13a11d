package models

// OwnerNoteModel is the single note shown on the home page.
type OwnerNoteModel struct {
	Base
	Content string `json:"content" gorm:"type:text;not null"`
}

func (OwnerNoteModel) TableName() string { return "owner_notes" }
