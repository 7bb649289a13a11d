package auth

import "errors"

var ErrInvalidPassword = errors.New("incorrect password")

type LoginDTO struct {
	Password string `json:"password" form:"password"`
	Next     string `json:"next"     form:"next"`
}
