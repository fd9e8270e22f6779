package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("you do not have permission to perform this action")
	ErrNotAuthenticated   = errors.New("authentication credentials were not provided")
	ErrInvalidCredentials = errors.New("no active account found with the given credentials")
	ErrInvalidToken       = errors.New("token is invalid or expired")
)

// NonFieldErrors is the key for errors that are not tied to one input field.
const NonFieldErrors = "non_field_errors"

// Field error messages shared by the resources.
const (
	MsgRequired        = "This field is required."
	MsgBlank           = "This field may not be blank."
	MsgAlreadyFollows  = "Вы уже подписаны на этого автора"
	MsgCannotSelf      = "Нельзя подписаться на самого себя"
	MsgInvalidImage    = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
	MsgUsernameTaken   = "A user with that username already exists."
	MsgInvalidUsername = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	MsgSlugTaken       = "group with this slug already exists."
)

// ValidationError collects messages per input field.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// FieldError is a shortcut for a ValidationError with a single message.
func FieldError(field, message string) *ValidationError {
	v := NewValidationError()
	v.Add(field, message)
	return v
}

func (v *ValidationError) Add(field, message string) {
	v.Fields[field] = append(v.Fields[field], message)
}

func (v *ValidationError) HasErrors() bool {
	return len(v.Fields) > 0
}

// OrNil returns v as an error only when it holds messages.
func (v *ValidationError) OrNil() error {
	if v.HasErrors() {
		return v
	}
	return nil
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(v.Fields[k], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
