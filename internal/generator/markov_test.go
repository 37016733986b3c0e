package generator

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSentences(t *testing.T) {
	text := "Be kind.. Stay strong. Why not now? You can! 3 things matter. e.g. lowercase stays"
	got := SplitSentences(text)
	assert.Equal(t, []string{
		"Be kind..",
		"Stay strong.",
		"Why not now?",
		"You can!",
		"3 things matter. e.g. lowercase stays",
	}, got)
	assert.Empty(t, SplitSentences("   "))
}

func TestBuild_EmptyCorpus(t *testing.T) {
	_, err := Build("", DefaultOptions())
	assert.ErrorIs(t, err, ErrEmptyCorpus)

	_, err = Build(`"Quoted" only.`, DefaultOptions())
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestModel_RejectsVerbatimCopies(t *testing.T) {
	m, err := Build("You are stronger than you think.", DefaultOptions())
	require.NoError(t, err)

	_, err = m.Sample()
	assert.ErrorIs(t, err, ErrNoSentence)
}

func TestModel_SampleWithoutOverlapTest(t *testing.T) {
	opts := DefaultOptions()
	opts.DisableOverlapTest = true
	m, err := Build("You are stronger than you think.", opts)
	require.NoError(t, err)

	got, err := m.Sample()
	require.NoError(t, err)
	assert.Equal(t, "You are stronger than you think.", got)
}

func TestModel_SampleUsesCorpusVocabulary(t *testing.T) {
	opts := DefaultOptions()
	opts.DisableOverlapTest = true
	text := "I love the sun and the sea. You love the sun and the moon. We love the rain and the sea."
	m, err := Build(text, opts)
	require.NoError(t, err)

	vocab := map[string]bool{}
	for _, w := range strings.Fields(text) {
		vocab[w] = true
	}
	for i := 0; i < 25; i++ {
		got, err := m.Sample()
		require.NoError(t, err)
		for _, w := range strings.Fields(got) {
			assert.True(t, vocab[w], "word %q not in corpus", w)
		}
	}
}

func TestModel_Novel(t *testing.T) {
	m := &Model{rejoined: "a b c d e f g h i j", opts: DefaultOptions()}

	assert.False(t, m.novel(strings.Fields("a b c d e f g h i j")))
	assert.True(t, m.novel(strings.Fields("a b c x e f g y i j")))
	assert.False(t, m.novel([]string{"c"}))
}

func TestCache(t *testing.T) {
	opts := DefaultOptions()

	disabled := NewCache(4, 0, opts)
	m1, err := disabled.Model("Shine bright today.")
	require.NoError(t, err)
	m2, err := disabled.Model("Shine bright today.")
	require.NoError(t, err)
	assert.NotSame(t, m1, m2)
	assert.Equal(t, 0, disabled.Len())

	enabled := NewCache(4, time.Minute, opts)
	m1, err = enabled.Model("Shine bright today.")
	require.NoError(t, err)
	m2, err = enabled.Model("Shine bright today.")
	require.NoError(t, err)
	assert.Same(t, m1, m2)
	assert.Equal(t, 1, enabled.Len())

	_, err = enabled.Model("")
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestCache_Generate(t *testing.T) {
	c := NewCache(1, time.Minute, Options{DisableOverlapTest: true})

	got, err := c.Generate("Dream big.")
	require.NoError(t, err)
	assert.Equal(t, "Dream big.", got)

	_, err = NewCache(1, time.Minute, DefaultOptions()).Generate("Dream big.")
	assert.ErrorIs(t, err, ErrNoSentence)
}
