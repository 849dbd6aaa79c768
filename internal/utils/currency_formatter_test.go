package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "₦45,750", FormatAmount(45750, "₦"))
	assert.Equal(t, "₦0", FormatAmount(0, "₦"))
	assert.Equal(t, "₦1,000,000", FormatAmount(1000000, "₦"))
	assert.Equal(t, "-₦2,050", FormatAmount(-2050, "₦"))
	assert.Equal(t, "999", FormatAmount(999, ""))
}

func TestParseAmount(t *testing.T) {
	tests := map[string]int64{
		"5000":     5000,
		"5,000":    5000,
		"₦25,000":  25000,
		" $1 000 ": 1000,
		"-300":     -300,
		"0":        0,
	}
	for in, want := range tests {
		got, err := ParseAmount(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseAmountRejects(t *testing.T) {
	_, err := ParseAmount("   ")
	assert.ErrorIs(t, err, ErrEmptyAmount)

	for _, in := range []string{"12.50", "abc", "12a", "-", "1234567890123456"} {
		_, err := ParseAmount(in)
		assert.Error(t, err, in)
	}
}
