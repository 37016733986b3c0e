// Package attribution guesses which corpus posts a generated quote most
// resembles.
package attribution

import (
	"math"
	"sort"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/spacesedan/positivipy/internal/models"
)

const (
	Candidates = 3
	Surfaced   = 2
)

// Similarity scores two strings from 0 (nothing shared) to 100 (identical)
// using edit distance normalized by the longer string.
func Similarity(a, b string) int {
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return int(math.Round(100 * (1 - float64(dist)/float64(longest))))
}

// Rank scores every post and returns the best k, highest first. Ties keep
// corpus order.
func Rank(quote string, corpus models.Corpus, k int) []models.Match {
	matches := make([]models.Match, 0, len(corpus.Posts))
	for _, p := range corpus.Posts {
		matches = append(matches, models.Match{
			Author: p.Author,
			Quote:  p.Quote,
			Ratio:  Similarity(quote, p.Quote),
			Scored: true,
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Ratio > matches[j].Ratio
	})
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches
}

// Attribute returns exactly two matches, padding with placeholders when the
// corpus is smaller than that.
func Attribute(quote string, corpus models.Corpus) []models.Match {
	ranked := Rank(quote, corpus, Candidates)
	if len(ranked) > Surfaced {
		ranked = ranked[:Surfaced]
	}
	for len(ranked) < Surfaced {
		ranked = append(ranked, models.PlaceholderMatch())
	}
	return ranked
}
