// Package textnorm normalizes free-text labels so account matching is
// case- and diacritic-insensitive. Transaction labels are Vietnamese free
// text ("Tiền mặt", "tien mat", "TIEN MAT" must all compare equal).
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// đ/Đ are standalone letters, not combining marks, so NFD does not touch them.
var dReplacer = strings.NewReplacer("đ", "d", "Đ", "d")

// Fold returns s trimmed, lowercased and with diacritics removed.
func Fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = dReplacer.Replace(s)
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return folded
}

// Contains reports whether the folded form of s contains the folded form
// of substr. An empty substr never matches.
func Contains(s, substr string) bool {
	sub := Fold(substr)
	if sub == "" {
		return false
	}
	return strings.Contains(Fold(s), sub)
}
