package phone

import (
	"strings"
	"unicode"
)

// Normalize prepends "+" to input made only of decimal digits. Any Unicode
// decimal digit counts, so numbers typed on Arabic-Indic or other native
// keyboards are treated like ASCII ones.
// Anything else, including the empty string, is returned unchanged.
// Callers are expected to trim whitespace beforehand.
func Normalize(input string) string {
	if input == "" || strings.IndexFunc(input, isNotDigit) != -1 {
		return input
	}
	return "+" + input
}

func isNotDigit(r rune) bool { return !unicode.IsDigit(r) }
