package podcast

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		err      error
		sentinel error
		kind     string
	}{
		{&ParsingError{Reason: "bad xml", Err: cause}, ErrParsing, "parsing"},
		{&FetchingError{URL: "https://e.com/feed", Err: cause}, ErrFetching, "fetching"},
		{&FetchingError{URL: "https://e.com/feed", StatusCode: 404}, ErrFetching, "fetching"},
		{&RequiredFieldError{Kind: Episodes, Field: "title"}, ErrRequiredField, "required"},
		{&OptionsError{Reason: "bad"}, ErrOptions, "options"},
		{cause, nil, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			if tt.sentinel != nil {
				assert.ErrorIs(t, tt.err, tt.sentinel)
			}
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrorKindsSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("failed to refresh podcast: %w", &RequiredFieldError{Kind: Meta, Field: "title"})
	assert.ErrorIs(t, err, ErrRequiredField)
	assert.Equal(t, "required", KindOf(err))
	assert.Contains(t, err.Error(), `meta field "title"`)
}
