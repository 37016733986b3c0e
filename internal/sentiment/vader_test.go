package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertMarkdownToText(t *testing.T) {
	assert.Equal(t, "Be kind today", ConvertMarkdownToText("**Be** _kind_ [today](https://example.com)"))
	assert.Equal(t, "Rock & roll", ConvertMarkdownToText("Rock & roll"))
	assert.Equal(t, "see", ConvertMarkdownToText("see https://example.com/x"))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, LabelPositive, Label(0.2))
	assert.Equal(t, LabelNeutral, Label(0.19))
	assert.Equal(t, LabelNeutral, Label(-0.19))
	assert.Equal(t, LabelNegative, Label(-0.2))
}

func TestAnalyze(t *testing.T) {
	good := Analyze("You are wonderful and I love your happy smile.")
	assert.Equal(t, LabelPositive, good.Label)
	assert.Greater(t, good.Score, 0.0)

	bad := Analyze("This is a terrible, horrible, awful day.")
	assert.Equal(t, LabelNegative, bad.Label)
	assert.Less(t, bad.Score, 0.0)
}
