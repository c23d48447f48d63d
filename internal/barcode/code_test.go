package barcode

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValid(t *testing.T) {
	cases := map[string]bool{
		"7501234567890":  true,
		"0000000000000":  true,
		"12345":          false,
		"":               false,
		"75012345678901": false,
		"750123456789a":  false,
		"750123456789 ":  false,
		" 750123456789":  false,
		"７501234567890":  false, // full-width seven
		"-501234567890":  false,
	}
	for in, want := range cases {
		assert.Equal(t, want, Valid(in), "Valid(%q)", in)
	}
}

func TestValid_MatchesDefinition(t *testing.T) {
	// Every 13-char string built from one repeated byte is valid iff the byte is a digit.
	for b := 0; b < 128; b++ {
		s := strings.Repeat(string(rune(b)), Length)
		want := b >= '0' && b <= '9'
		assert.Equal(t, want, Valid(s), "byte %d", b)
	}
}

func TestParse(t *testing.T) {
	code, err := Parse("7501234567890")
	require.NoError(t, err)
	assert.Equal(t, Code("7501234567890"), code)

	_, err = Parse("12345")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCode))
}

func TestSanitizeManual(t *testing.T) {
	assert.Equal(t, "750123", SanitizeManual("75-01 23"))
	assert.Equal(t, "7501234567890", SanitizeManual("7501234567890999"))
	assert.Equal(t, "", SanitizeManual("abc"))
	assert.Equal(t, "23", SanitizeManual("١2x3"), "non-ASCII digits are dropped")
}

func TestParseManual(t *testing.T) {
	code, err := ParseManual("  7501234567890\n")
	require.NoError(t, err)
	assert.Equal(t, "7501234567890", code.String())

	_, err = ParseManual("12345")
	assert.ErrorIs(t, err, ErrInvalidCode)
}
