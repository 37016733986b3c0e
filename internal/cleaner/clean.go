// Package cleaner repairs the punctuation, casing and encoding artifacts a
// Markov chain leaves in generated sentences.
package cleaner

import (
	"strings"

	"github.com/spacesedan/positivipy/internal/textutil"
)

var sentenceDelimiters = []string{"!", "?", "."}

// literal substitutions, applied one after another in this order
var substitutions = [][2]string{
	{" i ", " I "},
	{"..", "."},
	{"i'", "I'"},
	{". .", "."},
	{"!.", "!"},
	{",.", "."},
	{"?.", "?"},
	{". .", "."},
	{"Lifehack", " "},
	{"Art to self", " "},
}

// Clean applies the fixed sequence of textual repairs to a generated quote.
// Order matters: each delimiter pass sees the capitalization of the previous one.
func Clean(quote string) string {
	quote = strings.TrimPrefix(quote, ".")

	for _, delim := range sentenceDelimiters {
		if strings.Contains(quote, delim) {
			quote = recapitalize(quote, delim)
		}
	}

	for _, sub := range substitutions {
		quote = strings.ReplaceAll(quote, sub[0], sub[1])
	}

	quote = strings.TrimSpace(quote)
	if strings.HasPrefix(quote, ".") {
		quote = strings.TrimSpace(quote[1:])
	}

	return FixText(quote)
}

func recapitalize(quote, delim string) string {
	parts := strings.Split(quote, delim)
	for i, p := range parts {
		parts[i] = textutil.Capitalize(strings.TrimSpace(p))
	}
	return strings.Join(parts, delim+" ")
}

// IsEmpty reports whether a generated quote should be treated as "no sentence".
func IsEmpty(quote string) bool {
	q := strings.TrimSpace(quote)
	return q == "" || strings.EqualFold(q, "none")
}
