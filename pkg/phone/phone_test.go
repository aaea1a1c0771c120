package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Run("Success - US number to E.164", func(t *testing.T) {
		assert.Equal(t, "+13055551234", Normalize("(305) 555-1234", "US"))
		assert.Equal(t, "+13055551234", Normalize("305-555-1234", "US"))
		assert.Equal(t, "+13055551234", Normalize("+1 305 555 1234", "US"))
	})

	t.Run("Unparseable input is returned trimmed", func(t *testing.T) {
		assert.Equal(t, "not a number", Normalize("  not a number  ", "US"))
	})

	t.Run("Invalid number is returned trimmed", func(t *testing.T) {
		assert.Equal(t, "12345", Normalize(" 12345 ", "US"))
	})

	t.Run("Empty input stays empty", func(t *testing.T) {
		assert.Equal(t, "", Normalize("", "US"))
		assert.Equal(t, "", Normalize("   ", "US"))
	})
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("(305) 555-1234", "US"))
	assert.False(t, IsValid("12345", "US"))
	assert.False(t, IsValid("", "US"))
}
