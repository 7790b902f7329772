// Package provider defines the uniform failure type returned by every external gateway.
package provider

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Provider names used in Error.Provider.
const (
	OpenAI  = "openai"
	Ollama  = "ollama"
	Spotify = "spotify"
	LastFM  = "lastfm"
	Store   = "store"
)

// Error is returned by gateways on any transport, authentication or provider-side failure.
type Error struct {
	Provider string
	Message  string
	cause    error
}

// Wrap converts err into an *Error for the named provider.
// It returns nil if err is nil and leaves an existing *Error untouched.
func Wrap(name string, err error, msg string) error {
	if err == nil {
		return nil
	}
	var pe *Error
	if errors.As(err, &pe) {
		return err
	}
	return &Error{Provider: name, Message: msg, cause: err}
}

// Newf creates an *Error without an underlying cause.
func Newf(name string, format string, args ...any) error {
	return &Error{Provider: name, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("%s: %s", e.Provider, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether err is a provider error, optionally for a given provider.
func Is(err error, name string) bool {
	var pe *Error
	if !errors.As(err, &pe) {
		return false
	}
	return name == "" || pe.Provider == name
}
