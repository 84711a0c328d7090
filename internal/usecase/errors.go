package usecase

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrResumeNotFound    = errors.New("Resume not found")
	ErrJobNotFound       = errors.New("Job not found")
	ErrInvalidProfileURL = errors.New("Invalid LinkedIn URL format")
	ErrUnsupportedFile   = errors.New("Only plain text resumes are supported")
	ErrInternal          = errors.New("internal error")
)
