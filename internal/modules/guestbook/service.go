package guestbook

import (
	"errors"
	"strings"
	"time"

	"github.com/bettyshin1213/hbd-public/internal/models"
	"github.com/bettyshin1213/hbd-public/internal/pkg/notify"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	db   *gorm.DB
	sink notify.Sink
	now  func() time.Time
}

func NewService(db *gorm.DB, sink notify.Sink) *Service {
	if sink == nil {
		sink = notify.Noop{}
	}
	return &Service{db: db, sink: sink, now: time.Now}
}

// List returns every message, newest first.
func (s *Service) List() ([]models.MessageModel, error) {
	var messages []models.MessageModel
	err := s.db.Order("created_at DESC").Find(&messages).Error
	return messages, err
}

func (s *Service) Get(id string) (*models.MessageModel, error) {
	var m models.MessageModel
	if err := s.db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *Service) Create(dto *CreateMessageDTO) (*models.MessageModel, error) {
	text := strings.TrimSpace(dto.Text)
	if text == "" {
		return nil, ErrTextRequired
	}
	nickname := strings.TrimSpace(dto.Nickname)
	if nickname == "" {
		nickname = defaultNickname
	}

	m := models.MessageModel{Nickname: nickname, Text: text}
	if pin := strings.TrimSpace(dto.PIN); pin != "" {
		hash, err := HashPIN(pin)
		if err != nil {
			return nil, err
		}
		m.PinHash = &hash
	}
	m.CreatedAt = s.now()

	if err := s.db.Create(&m).Error; err != nil {
		return nil, err
	}
	s.sink.Notify(notify.MessageCreated(m.Nickname, m.Text, m.CreatedAt))
	return &m, nil
}

// Verify checks that the caller may modify the message without changing it.
func (s *Service) Verify(id, pin string, privileged bool) (*models.MessageModel, error) {
	m, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(m, strings.TrimSpace(pin), privileged); err != nil {
		return nil, err
	}
	return m, nil
}

// Update replaces the text, and the nickname when one is given. The PIN hash
// is never changed.
func (s *Service) Update(id string, dto *UpdateMessageDTO, privileged bool) (*models.MessageModel, error) {
	m, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(dto.Text)
	if text == "" {
		return nil, ErrTextRequired
	}
	if err := Authorize(m, strings.TrimSpace(dto.PIN), privileged); err != nil {
		return nil, err
	}

	if nickname := strings.TrimSpace(dto.Nickname); nickname != "" {
		m.Nickname = nickname
	}
	m.Text = text
	m.Touch(s.now())

	err = s.db.Model(&models.MessageModel{}).Where("id = ?", m.ID).Updates(map[string]interface{}{
		"nickname":   m.Nickname,
		"text":       m.Text,
		"updated_at": m.UpdatedAt,
	}).Error
	if err != nil {
		return nil, err
	}
	s.sink.Notify(notify.MessageUpdated(m.Nickname, m.Text, *m.UpdatedAt))
	return m, nil
}

func (s *Service) Delete(id, pin string, privileged bool) (*models.MessageModel, error) {
	m, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(m, strings.TrimSpace(pin), privileged); err != nil {
		return nil, err
	}

	res := s.db.Delete(&models.MessageModel{}, "id = ?", m.ID)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrMessageNotFound
	}
	s.sink.Notify(notify.MessageDeleted(m.ID, m.Nickname, s.now()))
	return m, nil
}

// IncrementLikes adds one like in a single UPDATE and returns the new count.
func (s *Service) IncrementLikes(id string) (int, error) {
	return s.updateLikes(id, gorm.Expr("COALESCE(like_count, 0) + 1"))
}

// DecrementLikes removes one like, floored at zero.
func (s *Service) DecrementLikes(id string) (int, error) {
	return s.updateLikes(id, gorm.Expr("CASE WHEN COALESCE(like_count, 0) > 0 THEN like_count - 1 ELSE 0 END"))
}

func (s *Service) updateLikes(id string, expr clause.Expr) (int, error) {
	var m models.MessageModel
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.MessageModel{}).Where("id = ?", id).UpdateColumn("like_count", expr).Error; err != nil {
			return err
		}
		return tx.Select("like_count").Take(&m, "id = ?", id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrMessageNotFound
	}
	return m.LikeCount, err
}
