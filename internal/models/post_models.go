package models

import "strings"

type Post struct {
	Index  int    `json:"index"`
	Quote  string `json:"quote"`
	Author string `json:"author"`
}

type Corpus struct {
	Posts []Post
}

// JoinedText is the training input for the text generator.
func (c Corpus) JoinedText() string {
	quotes := make([]string, 0, len(c.Posts))
	for _, p := range c.Posts {
		quotes = append(quotes, p.Quote)
	}
	return strings.Join(quotes, ". ")
}

func (c Corpus) Len() int {
	return len(c.Posts)
}
