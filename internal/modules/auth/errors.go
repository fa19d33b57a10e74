package auth

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrPhoneTaken         = errors.New("phone number already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
