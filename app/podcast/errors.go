package podcast

import (
	"errors"
	"fmt"
)

// Sentinels for the four error kinds. Every error returned by this package or
// by the entry points in app/feed matches exactly one of them via errors.Is.
var (
	ErrParsing       = errors.New("parsing error")
	ErrFetching      = errors.New("fetching error")
	ErrRequiredField = errors.New("one or more required values are missing from feed")
	ErrOptions       = errors.New("invalid options")
)

// ParsingError reports a document that could not be turned into a feed tree.
type ParsingError struct {
	Reason string
	Err    error
}

func (e *ParsingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrParsing, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrParsing, e.Reason)
}

func (e *ParsingError) Is(target error) bool { return target == ErrParsing }

func (e *ParsingError) Unwrap() error { return e.Err }

// FetchingError reports a failure to retrieve feed content.
type FetchingError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchingError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s: HTTP %d", ErrFetching, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s: %v", ErrFetching, e.URL, e.Err)
}

func (e *FetchingError) Is(target error) bool { return target == ErrFetching }

func (e *FetchingError) Unwrap() error { return e.Err }

// RequiredFieldError names the first required field missing from an assembled record.
type RequiredFieldError struct {
	Kind  Kind
	Field string
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("%s: %s field %q", ErrRequiredField, e.Kind, e.Field)
}

func (e *RequiredFieldError) Is(target error) bool { return target == ErrRequiredField }

// OptionsError reports caller options that could not be resolved into a Config.
type OptionsError struct {
	Reason string
	Err    error
}

func (e *OptionsError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrOptions, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrOptions, e.Reason)
}

func (e *OptionsError) Is(target error) bool { return target == ErrOptions }

func (e *OptionsError) Unwrap() error { return e.Err }

// KindOf returns a short label for the error kind of err, or "internal" when
// err is not one of the four.
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrOptions):
		return "options"
	case errors.Is(err, ErrRequiredField):
		return "required"
	case errors.Is(err, ErrParsing):
		return "parsing"
	case errors.Is(err, ErrFetching):
		return "fetching"
	default:
		return "internal"
	}
}
