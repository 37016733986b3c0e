package attribution

import (
	"testing"

	"github.com/spacesedan/positivipy/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corpusOf(pairs ...[2]string) models.Corpus {
	var c models.Corpus
	for i, p := range pairs {
		c.Posts = append(c.Posts, models.Post{Index: i, Quote: p[0], Author: p[1]})
	}
	return c
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 100, Similarity("Be kind.", "Be kind."))
	assert.Equal(t, 100, Similarity("", ""))
	assert.Equal(t, 0, Similarity("abc", ""))
	assert.Equal(t, 75, Similarity("abcd", "abcx"))
	assert.Equal(t, 80, Similarity("héllo", "hallo"))
}

func TestAttribute_ExactMatchRanksFirst(t *testing.T) {
	c := corpusOf([2]string{"Be kind.", "Alice"}, [2]string{"Stay strong.", "Bob"})

	got := Attribute("Be kind.", c)

	require.Len(t, got, 2)
	assert.Equal(t, models.Match{Author: "Alice", Quote: "Be kind.", Ratio: 100, Scored: true}, got[0])
	assert.Equal(t, "Bob", got[1].Author)
	assert.Less(t, got[1].Ratio, 100)
}

func TestRank_SortedAndStable(t *testing.T) {
	c := corpusOf(
		[2]string{"zzzz", "First"},
		[2]string{"Smile more.", "Second"},
		[2]string{"zzzz", "Third"},
		[2]string{"Smile more!", "Fourth"},
	)

	got := Rank("Smile more.", c, Candidates)

	require.Len(t, got, 3)
	assert.Equal(t, "Second", got[0].Author)
	assert.Equal(t, "Fourth", got[1].Author)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Ratio, got[i].Ratio)
	}

	tied := Rank("qqqq", corpusOf([2]string{"aaaa", "A"}, [2]string{"bbbb", "B"}, [2]string{"cccc", "C"}), 2)
	assert.Equal(t, "A", tied[0].Author)
	assert.Equal(t, "B", tied[1].Author)
}

func TestAttribute_Padding(t *testing.T) {
	got := Attribute("anything", models.Corpus{})
	require.Len(t, got, 2)
	for _, m := range got {
		assert.Equal(t, models.UnknownAuthor, m.Author)
		assert.Empty(t, m.RatioLabel())
	}

	one := Attribute("Be kind.", corpusOf([2]string{"Be kind.", "Alice"}))
	require.Len(t, one, 2)
	assert.Equal(t, "100", one[0].RatioLabel())
	assert.Equal(t, models.UnknownAuthor, one[1].Author)
	assert.False(t, one[1].Scored)
}
