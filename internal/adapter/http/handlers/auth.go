package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/adapter/http/mapper"
	"tasktracker/internal/adapter/http/middleware"
	"tasktracker/internal/adapter/http/validation"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
	"tasktracker/pkg/apierrors"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup creates an unverified account. No token is issued until the email
// is verified.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if _, ok := bindJSON(c, &req, apierrors.MsgValidationError); !ok {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), domain.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err, "failed to register user")
		return
	}

	c.JSON(http.StatusCreated, dto.SignupResponse{
		Message: apierrors.GetTransErrorMsg(apierrors.MsgAccountCreated, middleware.GetLang(c)),
		Email:   user.Email,
	})
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if _, ok := bindJSON(c, &req, apierrors.MsgValidationError); !ok {
		return
	}

	session, err := h.authService.VerifyEmail(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		respondError(c, err, "failed to verify email")
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{
		Message: apierrors.GetTransErrorMsg(apierrors.MsgEmailVerified, middleware.GetLang(c)),
		Token:   session.Token,
		User:    mapper.ToUserItem(session.User),
	})
}

func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req dto.EmailRequest
	if _, ok := bindJSON(c, &req, apierrors.MsgValidationError); !ok {
		return
	}

	if err := h.authService.ResendVerificationCode(c.Request.Context(), req.Email); err != nil {
		respondError(c, err, "failed to resend verification code")
		return
	}

	respondMessage(c, http.StatusOK, apierrors.MsgOTPResent)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if _, ok := bindJSON(c, &req, apierrors.MsgValidationError); !ok {
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, domain.ErrUnverified) {
		// The email lets the client jump straight to the verification screen.
		c.JSON(
			http.StatusForbidden,
			apierrors.CreateError(http.StatusForbidden, apierrors.MsgEmailNotVerified, middleware.GetLang(c)).
				WithEmail(req.Email),
		)
		return
	}
	if err != nil {
		respondError(c, err, "failed to log in")
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{
		Token: session.Token,
		User:  mapper.ToUserItem(session.User),
	})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.EmailRequest
	if _, ok := bindJSON(c, &req, apierrors.MsgValidationError); !ok {
		return
	}

	if err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		respondError(c, err, "failed to request password reset")
		return
	}

	respondMessage(c, http.StatusOK, apierrors.MsgResetLinkSent)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if _, ok := bindJSON(c, &req, apierrors.MsgValidationError); !ok {
		return
	}

	err := h.authService.ResetPassword(c.Request.Context(), req.Token, req.Password)
	if errors.Is(err, domain.ErrValidation) {
		respondError(c, validation.PasswordErrors("password", req.Password), "")
		return
	}
	if err != nil {
		respondError(c, err, "failed to reset password")
		return
	}

	respondMessage(c, http.StatusOK, apierrors.MsgPasswordReset)
}
