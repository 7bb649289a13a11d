package auth

import (
	"crypto/subtle"
	"errors"

	"github.com/bettyshin1213/hbd-public/internal/models"
	"gorm.io/gorm"
)

type Service struct {
	db       *gorm.DB
	username string
	password string
}

// NewService checks logins against the birthday user. An empty password
// disables login.
func NewService(db *gorm.DB, username, password string) *Service {
	return &Service{db: db, username: username, password: password}
}

// Login verifies the shared birthday password.
func (s *Service) Login(password string) error {
	if s.password == "" || password == "" {
		return ErrInvalidPassword
	}

	var u models.UserModel
	err := s.db.Select("id, password_hash").
		Where("username = ? AND is_birthday = ?", s.username, true).
		First(&u).Error
	switch {
	case err == nil:
		if !u.CheckPassword(password) {
			return ErrInvalidPassword
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
			return ErrInvalidPassword
		}
		return nil
	default:
		return err
	}
}
