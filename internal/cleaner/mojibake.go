package cleaner

import (
	"html"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// text that was UTF-8, decoded as a single-byte codepage and re-encoded
// leaves these lead characters behind
const mojibakeMarkers = "ÃÂâÅÐÑ"

var legacyCodepages = []encoding.Encoding{
	charmap.Windows1252,
	charmap.ISO8859_1,
}

var quoteUncurler = strings.NewReplacer(
	"‘", "'", "’", "'", "‚", "'", "‛", "'",
	"“", `"`, "”", `"`, "„", `"`, "‟", `"`,
)

var ligatures = strings.NewReplacer(
	"ﬀ", "ff", "ﬁ", "fi", "ﬂ", "fl", "ﬃ", "ffi", "ﬄ", "ffl",
	"ﬅ", "st", "ﬆ", "st",
)

// FixText repairs common encoding damage: mojibake, HTML entities, curly
// quotes, ligatures, full-width forms and stray control characters.
// The result is NFC-normalized.
func FixText(s string) string {
	if s == "" {
		return s
	}
	if !strings.Contains(s, "<") {
		s = html.UnescapeString(s)
	}
	s = fixEncoding(s)
	s = quoteUncurler.Replace(s)
	s = ligatures.Replace(s)
	s = width.Fold.String(s)
	s = removeControlChars(s)
	return norm.NFC.String(s)
}

// fixEncoding undoes up to three rounds of UTF-8 read as a legacy codepage.
func fixEncoding(s string) string {
	for round := 0; round < 3; round++ {
		if !strings.ContainsAny(s, mojibakeMarkers) {
			return s
		}
		fixed, ok := reencode(s)
		if !ok {
			return s
		}
		s = fixed
	}
	return s
}

func reencode(s string) (string, bool) {
	for _, enc := range legacyCodepages {
		raw, err := enc.NewEncoder().String(s)
		if err != nil {
			continue
		}
		if !utf8.ValidString(raw) || raw == s {
			continue
		}
		// a genuine repair always shrinks the text
		if utf8.RuneCountInString(raw) >= utf8.RuneCountInString(s) {
			continue
		}
		return raw, true
	}
	return s, false
}

func removeControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) || r == '\ufeff' {
			return -1
		}
		return r
	}, s)
}
