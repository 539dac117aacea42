// Package textnorm folds free-form names into a comparable form.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// letterFolds covers lowercase letters that have no canonical decomposition,
// so stripping marks leaves them intact. The targets follow the unaccent
// dictionary used by the Postgres store.
var letterFolds = strings.NewReplacer(
	"ø", "o",
	"đ", "d",
	"ð", "d",
	"ł", "l",
	"ŀ", "l",
	"ħ", "h",
	"ı", "i",
	"ŧ", "t",
	"æ", "ae",
	"œ", "oe",
	"ß", "ss",
	"þ", "th",
)

// Fold lowercases the input, strips diacritics and collapses whitespace,
// so "  Xhérdan  SHAQIRI" and "xherdan shaqiri" compare equal. Letters such
// as ø, đ and ł fold to their base letter the way unaccent does.
func Fold(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	lowered := strings.ToLower(raw)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, lowered)
	if err != nil {
		stripped = lowered
	}

	return strings.Join(strings.Fields(letterFolds.Replace(stripped)), " ")
}

// Contains reports whether the folded haystack contains the folded needle.
func Contains(haystack, needle string) bool {
	n := Fold(needle)
	if n == "" {
		return false
	}
	return strings.Contains(Fold(haystack), n)
}
