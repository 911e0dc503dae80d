package domain

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrInterviewNotFound  = errors.New("interview not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
