// Package corpus loads and normalizes the quote/author dataset the
// generator trains on and the attributor scores against.
package corpus

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spacesedan/positivipy/internal/models"
	"github.com/spacesedan/positivipy/internal/textutil"
)

const (
	quotesColumn  = "Quotes"
	authorsColumn = "Authors"
)

// substrings left over from OCR'd image credits
var authorNoise = []string{" Az", " Picture", " Forbes", "~"}

var ErrMissingColumn = errors.New("corpus is missing a required column")

// Parse reads a CSV with Quotes and Authors columns into a normalized Corpus.
func Parse(r io.Reader) (models.Corpus, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return models.Corpus{}, fmt.Errorf("failed to read corpus header: %w", err)
	}
	quoteIdx, authorIdx := columnIndex(header, quotesColumn), columnIndex(header, authorsColumn)
	if quoteIdx < 0 {
		return models.Corpus{}, fmt.Errorf("%w: %s", ErrMissingColumn, quotesColumn)
	}
	if authorIdx < 0 {
		return models.Corpus{}, fmt.Errorf("%w: %s", ErrMissingColumn, authorsColumn)
	}

	seen := make(map[string]struct{})
	var posts []models.Post
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return models.Corpus{}, fmt.Errorf("failed to read corpus row: %w", err)
		}

		// full-row duplicates are dropped before any normalization
		key := strings.Join(record, "\x1f")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		author := NormalizeAuthor(field(record, authorIdx))
		if !validAuthor(author) {
			continue
		}

		posts = append(posts, models.Post{
			Index:  len(posts),
			Quote:  textutil.Capitalize(field(record, quoteIdx)),
			Author: author,
		})
	}

	return models.Corpus{Posts: posts}, nil
}

func ParseBytes(b []byte) (models.Corpus, error) {
	return Parse(bytes.NewReader(b))
}

// NormalizeAuthor trims, title-cases and strips credit noise from an author.
// Missing authors become "Unknown".
func NormalizeAuthor(raw string) string {
	if raw == "" {
		raw = models.UnknownAuthor
	}
	author := textutil.Title(strings.TrimSpace(raw))
	for _, noise := range authorNoise {
		author = strings.ReplaceAll(author, noise, "")
	}
	return strings.TrimSpace(author)
}

func validAuthor(author string) bool {
	return strings.TrimSpace(author) != "" && textutil.HasLetter(author)
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) == name {
			return i
		}
	}
	return -1
}

func field(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return record[idx]
}
