package quotes

import (
	"strconv"
	"strings"

	"github.com/spacesedan/positivipy/internal/models"
)

// MatchesFromQuery rebuilds the surfaced attributions from the comma
// separated author pair and the two scores a translate link carries.
func MatchesFromQuery(authors, one, two string) []models.Match {
	names := strings.Split(authors, ",")
	scores := []string{one, two}

	matches := make([]models.Match, 0, len(scores))
	for i, raw := range scores {
		m := models.PlaceholderMatch()
		if i < len(names) {
			if name := strings.TrimSpace(names[i]); name != "" {
				m.Author = name
			}
		}
		if ratio, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && ratio >= 0 && ratio <= 100 {
			m.Ratio = ratio
			m.Scored = true
		}
		matches = append(matches, m)
	}
	return matches
}

// AuthorsParam is the inverse of MatchesFromQuery for the author pair.
func AuthorsParam(matches []models.Match) string {
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.Author)
	}
	return strings.Join(names, ",")
}
