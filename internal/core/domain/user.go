package domain

import "time"

const (
	VerificationCodeTTL = 10 * time.Minute
	ResetTokenTTL       = time.Hour
)

type User struct {
	ID                    string
	Name                  string
	Email                 string
	PasswordHash          string
	IsVerified            bool
	VerificationOTP       *string
	VerificationOTPExpiry *time.Time
	ResetTokenHash        *string
	ResetTokenExpiry      *time.Time
	CreatedAt             time.Time
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Session is what a successful login or verification hands back to the client.
type Session struct {
	Token string
	User  User
}
