package models

import (
	"strconv"
	"time"
)

const UnknownAuthor = "Unknown"

// Match is one attribution candidate. Placeholder matches carry no score.
type Match struct {
	Author string `json:"author"`
	Quote  string `json:"quote"`
	Ratio  int    `json:"ratio"`
	Scored bool   `json:"scored"`
}

func PlaceholderMatch() Match {
	return Match{Author: UnknownAuthor}
}

// RatioLabel renders the score as shown on the page; placeholders render empty.
func (m Match) RatioLabel() string {
	if !m.Scored {
		return ""
	}
	return strconv.Itoa(m.Ratio)
}

type QuoteResult struct {
	Text       string    `json:"text"`
	Language   string    `json:"language"`
	Translated bool      `json:"translated"`
	Fallback   bool      `json:"fallback"`
	Matches    []Match   `json:"matches"`
	Sentiment  Sentiment `json:"sentiment"`
	CreatedAt  time.Time `json:"created_at"`
}

type Sentiment struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

type QuoteRecord struct {
	Quote string    `json:"quote" dynamodbav:"quote"`
	Date  time.Time `json:"date" dynamodbav:"date"`
}
