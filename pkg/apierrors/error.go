package apierrors

import (
	"fmt"

	"tasktracker/pkg/translator"
)

// JsonErr is the body of every error response.
type JsonErr struct {
	Code    int                 `json:"code"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Email   string              `json:"email,omitempty"`
}

// Error implements the error interface for JsonErr.
func (e JsonErr) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.Code, e.Message)
}

// CreateError generates a JsonErr with a translated message.
func CreateError(code int, msgKey string, lang string) JsonErr {
	return JsonErr{Code: code, Message: GetTransErrorMsg(msgKey, lang)}
}

// WithFieldErrors attaches per-field validation messages.
func (e JsonErr) WithFieldErrors(fields map[string][]string) JsonErr {
	if len(fields) > 0 {
		e.Errors = fields
	}
	return e
}

func (e JsonErr) WithEmail(email string) JsonErr {
	e.Email = email
	return e
}

// GetTransErrorMsg retrieves the translated error message, falling back to
// the key itself.
func GetTransErrorMsg(msgKey string, lang string) string {
	return translator.Localize(msgKey, lang, nil)
}
