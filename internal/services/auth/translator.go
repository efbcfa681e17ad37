package auth

import (
	"strconv"
	"strings"

	"github.com/res5515/jcommune/internal/i18n"
	"github.com/res5515/jcommune/internal/model"
	"github.com/res5515/jcommune/internal/validation"
)

// ErrorCodeTranslator maps provider validation error codes to localized
// field errors using the message catalog.
type ErrorCodeTranslator struct {
	catalog *i18n.Catalog
}

// NewErrorCodeTranslator creates a translator over the given catalog
func NewErrorCodeTranslator(catalog *i18n.Catalog) *ErrorCodeTranslator {
	return &ErrorCodeTranslator{catalog: catalog}
}

// Translate resolves an error code to a (field, message) pair. Codes with
// no catalog entry, and codes naming none of the known fields, yield
// ok=false and are dropped by the caller.
//
// The target field is found by substring containment. The precedence is
// email, then username, then password: a code containing several keywords
// always resolves to the first match.
func (t *ErrorCodeTranslator) Translate(code, locale string) (validation.FieldError, bool) {
	message, ok := t.catalog.Lookup(code, locale)
	if !ok {
		return validation.FieldError{}, false
	}

	switch {
	case strings.Contains(code, "email"):
		message = strings.ReplaceAll(message, "{max}", strconv.Itoa(model.EmailMaxLength))
		return validation.FieldError{Field: "email", Message: message}, true
	case strings.Contains(code, "username"):
		message = strings.ReplaceAll(message, "{min}", strconv.Itoa(model.UsernameMinLength))
		message = strings.ReplaceAll(message, "{max}", strconv.Itoa(model.UsernameMaxLength))
		return validation.FieldError{Field: "username", Message: message}, true
	case strings.Contains(code, "password"):
		message = strings.ReplaceAll(message, "{min}", strconv.Itoa(model.PasswordMinLength))
		message = strings.ReplaceAll(message, "{max}", strconv.Itoa(model.PasswordMaxLength))
		return validation.FieldError{Field: "password", Message: message}, true
	}

	// Translatable but names no field; there is nothing to attach it to
	return validation.FieldError{}, false
}
