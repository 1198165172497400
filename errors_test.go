package bytepress

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "buffer too small",
			err:      ErrBufferTooSmall,
			expected: "buffer too small for output",
		},
		{
			name:     "invalid header",
			err:      ErrInvalidHeader,
			expected: "invalid compression header",
		},
		{
			name:     "corrupted data",
			err:      ErrCorruptedData,
			expected: "corrupted compressed data",
		},
		{
			name:     "invalid input",
			err:      &InvalidInputError{Reason: "test message"},
			expected: "invalid input: test message",
		},
		{
			name:     "decompression error",
			err:      &DecompressionError{Reason: "failed"},
			expected: "decompression error: failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.expected)
		})
	}
}

func TestErrorWrapping(t *testing.T) {
	// Failure sites wrap the sentinels with context; classification with
	// errors.Is must survive the wrapping.
	wrapped := fmt.Errorf("%w: odd-length rle stream", ErrCorruptedData)
	assert.ErrorIs(t, wrapped, ErrCorruptedData)
	assert.NotErrorIs(t, wrapped, ErrInvalidHeader)

	var invalidInput *InvalidInputError
	err := fmt.Errorf("configure codec: %w", &InvalidInputError{Reason: "window size must be positive"})
	assert.True(t, errors.As(err, &invalidInput))
	assert.Equal(t, "window size must be positive", invalidInput.Reason)
}
