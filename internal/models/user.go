package models

import "golang.org/x/crypto/bcrypt"

// UserModel is a named account. The site itself authenticates with a shared
// password; the table is kept for the birthday person's profile.
type UserModel struct {
	Base
	Username     string `json:"username"    gorm:"type:varchar(80);uniqueIndex;not null"`
	PasswordHash string `json:"-"           gorm:"type:varchar(255);not null"`
	IsBirthday   bool   `json:"is_birthday" gorm:"default:false"`
}

func (UserModel) TableName() string { return "users" }

func (u *UserModel) SetPassword(raw string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *UserModel) CheckPassword(raw string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(raw)) == nil
}
