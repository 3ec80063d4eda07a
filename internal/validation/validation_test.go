package validation_test

import (
	"testing"

	"feedback-service/internal/validation"

	"github.com/stretchr/testify/assert"
)

type comment struct {
	Text string `validate:"storedtext,max=10"`
}

func TestStoredText(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name  string
		text  string
		valid bool
	}{
		{"plain", "great", true},
		{"empty", "", true},
		{"multibyte", "très bien", true},
		{"nul byte", "bad\x00text", false},
		{"invalid utf8", "bad\xff", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, validation.IsStoredText(tt.text))
			err := v.Struct(comment{Text: tt.text})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
