package domain

import "errors"

var (
	ErrValidation = errors.New("validation failed")

	ErrTaskNotFound      = errors.New("task not found")
	ErrWorkspaceNotFound = errors.New("workspace not found")

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrInvalidCode        = errors.New("invalid verification code")
	ErrExpiredCode        = errors.New("verification code expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnverified         = errors.New("email not verified")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
