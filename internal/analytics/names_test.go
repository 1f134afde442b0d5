package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Smith, John", "Smith"},
		{"John Smith", "Smith"},
		{"  Mary   Ann  O'Neil ", "O'Neil"},
		{"Madonna", "Madonna"},
		{"Nur, Omar, PhD", "Nur"},
		{"", "Unknown"},
		{"   ", "Unknown"},
		{", John", "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShortName(tt.input))
		})
	}
}
