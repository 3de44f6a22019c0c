package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

type AuthService struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	sessions ports.SessionIssuer
	mailer   ports.Mailer
	seeder   ports.DemoSeeder
}

func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	sessions ports.SessionIssuer,
	mailer ports.Mailer,
	seeder ports.DemoSeeder,
) *AuthService {
	return &AuthService{
		users:    users,
		hasher:   hasher,
		sessions: sessions,
		mailer:   mailer,
		seeder:   seeder,
	}
}

// Register stores an unverified account and mails its verification code. A
// mail failure is logged; the account is still created.
func (s *AuthService) Register(ctx context.Context, input domain.RegisterInput) (domain.User, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	if name == "" || email == "" {
		return domain.User{}, fmt.Errorf("%w: name and email are required", domain.ErrValidation)
	}
	if violations := domain.CheckPassword(input.Password); len(violations) > 0 {
		return domain.User{}, fmt.Errorf("%w: %w", domain.ErrValidation, errors.Join(violations...))
	}

	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.User{}, domain.ErrEmailTaken
	case !errors.Is(err, domain.ErrUserNotFound):
		return domain.User{}, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return domain.User{}, err
	}
	code, err := generateVerificationCode()
	if err != nil {
		return domain.User{}, err
	}
	expiry := time.Now().Add(domain.VerificationCodeTTL)

	user, err := s.users.CreateUser(ctx, domain.User{
		ID:                    uuid.NewString(),
		Name:                  name,
		Email:                 email,
		PasswordHash:          hash,
		VerificationOTP:       &code,
		VerificationOTPExpiry: &expiry,
		CreatedAt:             timestamp(),
	})
	if err != nil {
		return domain.User{}, err
	}

	s.sendVerificationCode(ctx, email, code)
	return user, nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) (domain.Session, error) {
	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return domain.Session{}, err
	}
	if user.IsVerified {
		return domain.Session{}, domain.ErrAlreadyVerified
	}
	if user.VerificationOTP == nil || subtle.ConstantTimeCompare([]byte(*user.VerificationOTP), []byte(code)) != 1 {
		return domain.Session{}, domain.ErrInvalidCode
	}
	if user.VerificationOTPExpiry == nil || user.VerificationOTPExpiry.Before(time.Now()) {
		return domain.Session{}, domain.ErrExpiredCode
	}

	user.IsVerified = true
	user.VerificationOTP = nil
	user.VerificationOTPExpiry = nil
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return domain.Session{}, err
	}

	if _, err := s.seeder.CreateDemoWorkspace(ctx, user.ID); err != nil {
		zap.L().Error("failed to seed demo workspace", zap.String("user_id", user.ID), zap.Error(err))
	}

	token, err := s.sessions.Issue(user.ID)
	if err != nil {
		return domain.Session{}, err
	}
	return domain.Session{Token: token, User: user}, nil
}

// ResendVerificationCode answers the same way whether or not the account
// exists, so callers cannot discover registered emails.
func (s *AuthService) ResendVerificationCode(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if user.IsVerified {
		return nil
	}

	code, err := generateVerificationCode()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(domain.VerificationCodeTTL)
	user.VerificationOTP = &code
	user.VerificationOTPExpiry = &expiry
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return err
	}

	s.sendVerificationCode(ctx, email, code)
	return nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.Session{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.Session{}, err
	}
	if !s.hasher.Compare(user.PasswordHash, password) {
		return domain.Session{}, domain.ErrInvalidCredentials
	}
	if !user.IsVerified {
		return domain.Session{}, domain.ErrUnverified
	}

	token, err := s.sessions.Issue(user.ID)
	if err != nil {
		return domain.Session{}, err
	}
	return domain.Session{Token: token, User: user}, nil
}

func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	token, hash, err := generateResetToken()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(domain.ResetTokenTTL)
	user.ResetTokenHash = &hash
	user.ResetTokenExpiry = &expiry
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(ctx, email, token); err != nil {
		zap.L().Error("failed to send password reset email", zap.String("email", email), zap.Error(err))
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	if violations := domain.CheckPassword(password); len(violations) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrValidation, errors.Join(violations...))
	}

	user, err := s.users.GetUserByResetToken(ctx, hashResetToken(token), time.Now())
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.ErrInvalidResetToken
	}
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.ResetTokenHash = nil
	user.ResetTokenExpiry = nil
	return s.users.UpdateUser(ctx, user)
}

func (s *AuthService) sendVerificationCode(ctx context.Context, email, code string) {
	if err := s.mailer.SendVerificationCode(ctx, email, code); err != nil {
		zap.L().Error("failed to send verification email", zap.String("email", email), zap.Error(err))
	}
}

var _ ports.AuthService = (*AuthService)(nil)
