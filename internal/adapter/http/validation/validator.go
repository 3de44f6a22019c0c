package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"tasktracker/internal/core/domain"
	"tasktracker/pkg/translator"
)

// Translation keys for field-level messages.
const (
	KeyRequired = "fieldRequired"
	KeyInvalid  = "fieldInvalid"
	KeyOneOf    = "fieldOneOf"
	KeyMin      = "fieldMin"
	KeyMax      = "fieldMax"
	KeyMaxBytes = "fieldMaxBytes"
	KeyEmail    = "fieldEmail"
	KeyDate     = "fieldDate"
	KeyString   = "fieldString"
	KeyNumber   = "fieldNumber"
	KeyOTP      = "fieldOTP"

	KeyPasswordTooShort    = "passwordTooShort"
	KeyPasswordNoUppercase = "passwordNoUppercase"
	KeyPasswordNoSpecial   = "passwordNoSpecial"
)

var registerOnce sync.Once

// Register installs the json field names and the custom rules (password,
// otp, taskdate, maxbytes) on gin's validator engine. Safe to call more
// than once.
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
			return len(domain.CheckPassword(fl.Field().String())) == 0
		})
		_ = v.RegisterValidation("otp", func(fl validator.FieldLevel) bool {
			return isOTP(fl.Field().String())
		})
		_ = v.RegisterValidation("taskdate", func(fl validator.FieldLevel) bool {
			_, err := ParseDueDate(fl.Field().String())
			return err == nil
		})
		// TEXT columns are capped in bytes, not characters.
		_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
			limit, err := strconv.Atoi(fl.Param())
			if err != nil {
				return false
			}
			return len(fl.Field().String()) <= limit
		})
	})
}

// FieldError is one problem with one input field. Key is a translation key;
// Param feeds the message template.
type FieldError struct {
	Field string
	Key   string
	Param string
}

// Errors is returned by the payload builders and by FromBindError.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Key)
	}
	return "invalid payload: " + strings.Join(parts, ", ")
}

// Localize groups the messages by field, translated into lang.
func (e Errors) Localize(lang string) map[string][]string {
	if len(e) == 0 {
		return nil
	}
	out := make(map[string][]string, len(e))
	for _, fe := range e {
		msg := translator.Localize(fe.Key, lang, map[string]any{
			"Field": displayName(fe.Field),
			"Param": fe.Param,
		})
		out[fe.Field] = append(out[fe.Field], msg)
	}
	return out
}

func fieldError(field, key string) Errors {
	return Errors{{Field: field, Key: key}}
}

// FromBindError turns a gin binding failure into field errors. The second
// return is false when the body is not even a JSON object of the right shape.
func FromBindError(err error) (Errors, bool) {
	var fieldErrs Errors
	if errors.As(err, &fieldErrs) {
		return fieldErrs, true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		key := KeyInvalid
		switch typeErr.Type.Kind() {
		case reflect.String:
			key = KeyString
		case reflect.Int, reflect.Int64, reflect.Float64:
			key = KeyNumber
		}
		return fieldError(typeErr.Field, key), true
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil, false
	}

	out := make(Errors, 0, len(validationErrs))
	for _, fe := range validationErrs {
		field := fieldPath(fe)
		switch fe.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Key: KeyRequired})
		case "oneof":
			out = append(out, FieldError{Field: field, Key: KeyOneOf, Param: strings.ReplaceAll(fe.Param(), " ", ", ")})
		case "min", "gte":
			out = append(out, FieldError{Field: field, Key: KeyMin, Param: fe.Param()})
		case "max", "lte":
			out = append(out, FieldError{Field: field, Key: KeyMax, Param: fe.Param()})
		case "email":
			out = append(out, FieldError{Field: field, Key: KeyEmail})
		case "otp":
			out = append(out, FieldError{Field: field, Key: KeyOTP})
		case "taskdate":
			out = append(out, FieldError{Field: field, Key: KeyDate})
		case "maxbytes":
			out = append(out, FieldError{Field: field, Key: KeyMaxBytes, Param: fe.Param()})
		case "password":
			for _, violation := range domain.CheckPassword(fe.Value().(string)) {
				out = append(out, FieldError{Field: field, Key: passwordKey(violation)})
			}
		default:
			out = append(out, FieldError{Field: field, Key: KeyInvalid})
		}
	}
	return out, true
}

// PasswordErrors reports the policy violations of password under field.
func PasswordErrors(field, password string) Errors {
	var out Errors
	for _, violation := range domain.CheckPassword(password) {
		out = append(out, FieldError{Field: field, Key: passwordKey(violation)})
	}
	return out
}

func passwordKey(violation error) string {
	switch {
	case errors.Is(violation, domain.ErrPasswordTooShort):
		return KeyPasswordTooShort
	case errors.Is(violation, domain.ErrPasswordNoUppercase):
		return KeyPasswordNoUppercase
	default:
		return KeyPasswordNoSpecial
	}
}

// fieldPath drops the struct name from the namespace, keeping list indexes:
// BatchUpdateTasksRequest.tasks[0].status becomes tasks[0].status.
func fieldPath(fe validator.FieldError) string {
	parts := strings.SplitN(fe.Namespace(), ".", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return fe.Field()
}

func displayName(field string) string {
	if i := strings.LastIndex(field, "."); i >= 0 {
		field = field[i+1:]
	}
	runes := []rune(field)
	if len(runes) == 0 {
		return field
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func isOTP(value string) bool {
	if len(value) != 6 {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
