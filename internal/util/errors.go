package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidTeacher     = errors.New("invalid teacher ID")
	ErrInvalidStudent     = errors.New("invalid student ID")
	ErrInvalidGroup       = errors.New("invalid group ID")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrQuizNotAssigned    = errors.New("quiz not assigned to this student")
	ErrMissingFields      = errors.New("missing required fields")
	ErrAttemptNotFound    = errors.New("quiz attempt not found")
	ErrStudentNotFound    = errors.New("student not found")
)
