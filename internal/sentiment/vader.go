// Package sentiment scores quotes with the VADER lexicon.
package sentiment

import (
	"html"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
	"github.com/spacesedan/positivipy/internal/models"
)

const (
	LabelPositive = "positive"
	LabelNeutral  = "neutral"
	LabelNegative = "negative"

	threshold = 0.20
)

var (
	analyzer = govader.NewSentimentIntensityAnalyzer()
	stripper = bluemonday.StrictPolicy()

	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1")
	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText renders markdown and drops the resulting markup so
// emphasis markers don't skew the lexicon lookup.
func ConvertMarkdownToText(input string) string {
	input = RemoveLinks(input)
	rendered := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plain := html.UnescapeString(stripper.Sanitize(string(rendered)))
	return strings.Join(strings.Fields(plain), " ")
}

func Analyze(text string) models.Sentiment {
	score := analyzer.PolarityScores(ConvertMarkdownToText(text)).Compound
	return models.Sentiment{Score: score, Label: Label(score)}
}

func Label(score float64) string {
	switch {
	case score >= threshold:
		return LabelPositive
	case score <= -threshold:
		return LabelNegative
	default:
		return LabelNeutral
	}
}
