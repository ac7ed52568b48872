package domain

import (
	"errors"
	"strings"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrEmailTaken      = errors.New("email address already in use")
)

// ValidationErrors collects every problem with a form submission so the
// user sees all of them in one round trip instead of one at a time.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return strings.Join(v, "; ")
}

func (v *ValidationErrors) Add(msg string) {
	*v = append(*v, msg)
}

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}
