package guestbook

import (
	"github.com/bettyshin1213/hbd-public/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const pinLength = 4

// Authorize decides whether a mutation of msg is allowed. It returns nil when
// allowed, otherwise one of ErrPINRequired, ErrPINNotSet or ErrPINMismatch.
// The owner is always allowed; a message created without a PIN can only be
// changed by the owner.
func Authorize(msg *models.MessageModel, pin string, privileged bool) error {
	if privileged {
		return nil
	}
	if !validPIN(pin) {
		return ErrPINRequired
	}
	if !msg.HasPIN() {
		return ErrPINNotSet
	}
	if bcrypt.CompareHashAndPassword([]byte(*msg.PinHash), []byte(pin)) != nil {
		return ErrPINMismatch
	}
	return nil
}

// HashPIN validates and hashes a 4-digit PIN.
func HashPIN(pin string) (string, error) {
	if !validPIN(pin) {
		return "", ErrInvalidPIN
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func validPIN(pin string) bool {
	if len(pin) != pinLength {
		return false
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return false
		}
	}
	return true
}
