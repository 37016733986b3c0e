package models

import (
	"fmt"
	"time"
)

type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

func ParseVoteDirection(raw string) (VoteDirection, error) {
	switch VoteDirection(raw) {
	case VoteUp, VoteDown:
		return VoteDirection(raw), nil
	default:
		return "", fmt.Errorf("invalid vote direction %q", raw)
	}
}

type Vote struct {
	Quote     string        `json:"quote" dynamodbav:"quote"`
	Direction VoteDirection `json:"up_or_down" dynamodbav:"up_or_down"`
	Date      time.Time     `json:"date" dynamodbav:"date"`
}
