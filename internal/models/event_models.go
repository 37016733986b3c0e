package models

import "time"

const (
	EventQuoteGenerated = "quote_generated"
	EventVoteCast       = "vote_cast"
)

// Event is the envelope published to the event stream sink.
type Event struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"`
	Quote     string        `json:"quote"`
	Direction VoteDirection `json:"up_or_down,omitempty"`
	Date      time.Time     `json:"date"`
}
