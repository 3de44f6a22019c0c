package ports

import (
	"context"
	"time"

	"tasktracker/internal/core/domain"
)

type UserRepository interface {
	// CreateUser returns ErrEmailTaken when the email is already registered.
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	GetUserByResetToken(ctx context.Context, tokenHash string, now time.Time) (domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type SessionIssuer interface {
	Issue(userID string) (string, error)
	// Verify returns the user id carried by a valid token, or ErrInvalidToken.
	Verify(token string) (string, error)
}

type Mailer interface {
	SendVerificationCode(ctx context.Context, to, code string) error
	SendPasswordReset(ctx context.Context, to, token string) error
}

// DemoSeeder creates the onboarding workspace for a freshly verified user.
type DemoSeeder interface {
	CreateDemoWorkspace(ctx context.Context, userID string) (domain.Workspace, error)
}

type AuthService interface {
	Register(ctx context.Context, input domain.RegisterInput) (domain.User, error)
	VerifyEmail(ctx context.Context, email, code string) (domain.Session, error)
	ResendVerificationCode(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (domain.Session, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}
