package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"tasktracker/internal/adapter/http/middleware"
	"tasktracker/internal/adapter/http/validation"
	"tasktracker/internal/core/domain"
	"tasktracker/pkg/apierrors"
)

type errorMapping struct {
	target error
	status int
	msgKey string
}

// domainErrors maps service errors to responses. Resources the caller may not
// see answer 404, the same as missing ones.
var domainErrors = []errorMapping{
	{domain.ErrValidation, http.StatusBadRequest, apierrors.MsgValidationError},
	{domain.ErrTaskNotFound, http.StatusNotFound, apierrors.MsgTaskNotFound},
	{domain.ErrWorkspaceNotFound, http.StatusNotFound, apierrors.MsgWorkspaceNotFound},
	{domain.ErrUserNotFound, http.StatusNotFound, apierrors.MsgUserNotFound},
	{domain.ErrEmailTaken, http.StatusConflict, apierrors.MsgEmailInUse},
	{domain.ErrAlreadyVerified, http.StatusBadRequest, apierrors.MsgEmailAlreadyVerified},
	{domain.ErrInvalidCode, http.StatusBadRequest, apierrors.MsgInvalidVerificationCode},
	{domain.ErrExpiredCode, http.StatusBadRequest, apierrors.MsgVerificationCodeExpired},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, apierrors.MsgInvalidCredentials},
	{domain.ErrUnverified, http.StatusForbidden, apierrors.MsgEmailNotVerified},
	{domain.ErrInvalidResetToken, http.StatusBadRequest, apierrors.MsgInvalidResetLink},
	{domain.ErrInvalidToken, http.StatusUnauthorized, apierrors.MsgInvalidToken},
}

// respondError writes the JSON error for err. Unknown errors are logged with
// logMsg and answered with a generic 500.
func respondError(c *gin.Context, err error, logMsg string, fields ...zap.Field) {
	lang := middleware.GetLang(c)

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgValidationError, lang).
				WithFieldErrors(fieldErrs.Localize(lang)),
		)
		return
	}

	for _, m := range domainErrors {
		if errors.Is(err, m.target) {
			c.JSON(m.status, apierrors.CreateError(m.status, m.msgKey, lang))
			return
		}
	}

	zap.L().Error(logMsg, append(fields, zap.Error(err))...)
	_ = c.Error(err)
	c.JSON(
		http.StatusInternalServerError,
		apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgServerError, lang),
	)
}

func respondBadRequest(c *gin.Context, msgKey string) {
	c.JSON(
		http.StatusBadRequest,
		apierrors.CreateError(http.StatusBadRequest, msgKey, middleware.GetLang(c)),
	)
}

func respondMessage(c *gin.Context, status int, msgKey string) {
	c.JSON(status, gin.H{"message": apierrors.GetTransErrorMsg(msgKey, middleware.GetLang(c))})
}

// bindJSON decodes the body twice: into raw to learn which keys were sent,
// and into req to validate it. It writes the 400 itself and returns false on
// failure.
func bindJSON(c *gin.Context, req any, invalidMsgKey string) (map[string]json.RawMessage, bool) {
	var raw map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil || raw == nil {
		respondBadRequest(c, invalidMsgKey)
		return nil, false
	}

	if err := c.ShouldBindBodyWith(req, binding.JSON); err != nil {
		fieldErrs, ok := validation.FromBindError(err)
		if !ok {
			respondBadRequest(c, invalidMsgKey)
			return nil, false
		}
		respondError(c, fieldErrs, "")
		return nil, false
	}
	return raw, true
}
