package usecase

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPageClosed is returned when a fetch resolves after its page was torn down.
var ErrPageClosed = errors.New("page closed")

// ValidationError is a client-side rejection detected before any request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

// Field returns the message for field, or "" when it passed validation.
func (errs ValidationErrors) Field(field string) string {
	for _, e := range errs {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

func IsValidationError(err error) bool {
	var single ValidationError
	var many ValidationErrors
	return errors.As(err, &many) || errors.As(err, &single)
}
