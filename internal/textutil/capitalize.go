// Package textutil holds the small casing helpers shared by the corpus
// loader and the quote cleaner.
package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Capitalize upper-cases the first rune and leaves the rest untouched.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Title title-cases every word and lower-cases the remaining letters.
func Title(s string) string {
	return titleCaser.String(s)
}

// HasLetter reports whether s contains at least one alphabetic rune.
func HasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}
