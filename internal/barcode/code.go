// Package barcode validates the 13-digit product codes the rest of the
// application works with.
package barcode

import (
	"errors"
	"fmt"
	"strings"
)

// Length is the number of digits in an EAN-13 code.
const Length = 13

// ErrInvalidCode is returned for anything that is not exactly 13 ASCII digits.
var ErrInvalidCode = errors.New("barcode: code must be exactly 13 digits")

// Code is a validated EAN-13 product code. The zero value is not valid;
// obtain one through Parse or ParseManual.
type Code string

func (c Code) String() string {
	return string(c)
}

// Valid reports whether s has exactly 13 characters, all ASCII digits.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Parse validates a decoded string as is. No trimming is done, a decoder
// that returns padding has misread.
func Parse(s string) (Code, error) {
	if !Valid(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCode, s)
	}
	return Code(s), nil
}

// SanitizeManual applies the manual entry filter: non-digits are dropped and
// the result is capped at 13 characters.
func SanitizeManual(s string) string {
	var b strings.Builder
	for _, r := range s {
		if b.Len() == Length {
			break
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseManual validates a manually typed code after trimming surrounding space.
func ParseManual(s string) (Code, error) {
	return Parse(strings.TrimSpace(s))
}
