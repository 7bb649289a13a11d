package note

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/bettyshin1213/hbd-public/internal/models"
	"gorm.io/gorm"
)

var leadingBlankLines = regexp.MustCompile(`^\s*\n+`)

type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// Get returns the note, or nil when none has been saved.
func (s *Service) Get() (*models.OwnerNoteModel, error) {
	var n models.OwnerNoteModel
	if err := s.db.Order("created_at ASC").First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

// Save normalizes content and writes it to the single note row.
func (s *Service) Save(content string) (*models.OwnerNoteModel, error) {
	content = Normalize(content)
	if content == "" {
		return nil, ErrContentRequired
	}

	existing, err := s.Get()
	if err != nil {
		return nil, err
	}
	now := s.now()
	if existing == nil {
		n := models.OwnerNoteModel{Content: content}
		n.CreatedAt = now
		n.Touch(now)
		if err := s.db.Create(&n).Error; err != nil {
			return nil, err
		}
		return &n, nil
	}

	existing.Content = content
	existing.Touch(now)
	err = s.db.Model(&models.OwnerNoteModel{}).Where("id = ?", existing.ID).Updates(map[string]interface{}{
		"content":    existing.Content,
		"updated_at": existing.UpdatedAt,
	}).Error
	if err != nil {
		return nil, err
	}
	return existing, nil
}

// Normalize unifies line endings and strips the BOM, leading blank lines and
// surrounding whitespace.
func Normalize(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.TrimLeft(content, "\uFEFF")
	content = leadingBlankLines.ReplaceAllString(content, "")
	return strings.Trim(content, " \t\n\r\u00A0")
}
