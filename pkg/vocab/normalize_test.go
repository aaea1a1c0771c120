package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceToBackend(t *testing.T) {
	cases := map[string]string{
		"Comprehensive Exam":   ServiceExam,
		"Contact Lens Fitting": ServiceContactLens,
		"Dry Eye Treatment":    ServiceDryEye,
		"LASIK Consult":        ServiceLasik,
	}
	for display, want := range cases {
		got, ok := ServiceToBackend(display)
		require.True(t, ok, "service %q", display)
		assert.Equal(t, want, got)
	}

	_, ok := ServiceToBackend("Cataract Surgery")
	assert.False(t, ok)
	_, ok = ServiceToBackend("")
	assert.False(t, ok)
}

func TestNormalizeLocation(t *testing.T) {
	for _, loc := range Locations {
		got, ok := NormalizeLocation(loc)
		require.True(t, ok)
		assert.Equal(t, loc, got)
	}

	_, ok := NormalizeLocation("Miami")
	assert.False(t, ok)
}

func TestNormalizeInsurance(t *testing.T) {
	t.Run("Known provider matches case-insensitively", func(t *testing.T) {
		got, ok := NormalizeInsurance("vsp")
		require.True(t, ok)
		assert.Equal(t, "VSP", got)

		got, ok = NormalizeInsurance("EYEMED")
		require.True(t, ok)
		assert.Equal(t, "EyeMed", got)
	})

	t.Run("Custom input collapses to Other", func(t *testing.T) {
		got, ok := NormalizeInsurance("Blue Cross Blue Shield")
		require.True(t, ok)
		assert.Equal(t, "Other", got)
	})

	t.Run("Empty is dropped", func(t *testing.T) {
		_, ok := NormalizeInsurance("")
		assert.False(t, ok)
	})
}
