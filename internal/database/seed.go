package database

import (
	"errors"
	"fmt"

	"github.com/bettyshin1213/hbd-public/internal/config"
	"github.com/bettyshin1213/hbd-public/internal/models"
	"gorm.io/gorm"
)

const (
	demoNote        = "Happy birthday! This is a demo note.\nOnly the owner can edit it."
	demoNickname    = "demo-guest"
	demoMessageText = "Happy birthday! (demo message)"
)

// Seed prepares baseline rows: the birthday user when a password is configured,
// and demo content for an empty database in portfolio mode.
func Seed(db *gorm.DB, cfg *config.AppConfig) error {
	if err := seedBirthdayUser(db, cfg); err != nil {
		return err
	}
	if cfg.PortfolioMode {
		return seedDemo(db)
	}
	return nil
}

func seedBirthdayUser(db *gorm.DB, cfg *config.AppConfig) error {
	if cfg.BirthdayPass == "" {
		return nil
	}
	var existing models.UserModel
	err := db.Where("username = ?", cfg.BirthdayUsername).First(&existing).Error
	if err == nil {
		if existing.CheckPassword(cfg.BirthdayPass) {
			return nil
		}
		if err := existing.SetPassword(cfg.BirthdayPass); err != nil {
			return fmt.Errorf("hash birthday password: %w", err)
		}
		return db.Model(&existing).Update("password_hash", existing.PasswordHash).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup birthday user: %w", err)
	}

	user := models.UserModel{Username: cfg.BirthdayUsername, IsBirthday: true}
	if err := user.SetPassword(cfg.BirthdayPass); err != nil {
		return fmt.Errorf("hash birthday password: %w", err)
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("create birthday user: %w", err)
	}
	return nil
}

func seedDemo(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var notes int64
		if err := tx.Model(&models.OwnerNoteModel{}).Count(&notes).Error; err != nil {
			return err
		}
		if notes == 0 {
			if err := tx.Create(&models.OwnerNoteModel{Content: demoNote}).Error; err != nil {
				return fmt.Errorf("seed demo note: %w", err)
			}
		}

		var messages int64
		if err := tx.Model(&models.MessageModel{}).Count(&messages).Error; err != nil {
			return err
		}
		if messages == 0 {
			msg := models.MessageModel{Nickname: demoNickname, Text: demoMessageText}
			if err := tx.Create(&msg).Error; err != nil {
				return fmt.Errorf("seed demo message: %w", err)
			}
		}
		return nil
	})
}
