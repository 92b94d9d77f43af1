// Helpers for normalizing localized numeric input. The POS screens are
// used with Arabic keyboard layouts and barcode scanners, so search text
// and amount fields can arrive with Arabic-Indic digits.

package util

import "strings"

// NormalizeDigits converts Arabic-Indic digits (U+0660..U+0669) in the
// input to their ASCII equivalents. All other runes pass through.
func NormalizeDigits(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if r >= '٠' && r <= '٩' {
			r = '0' + (r - '٠')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FilterNumeric removes every rune that is not an ASCII or Arabic-Indic
// digit. Used for phone number and amount fields before normalization.
func FilterNumeric(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if (r >= '0' && r <= '9') || (r >= '٠' && r <= '٩') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
