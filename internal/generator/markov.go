// Package generator trains a word-level Markov chain on the corpus text and
// samples new sentences from it.
package generator

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/mb-14/gomarkov"
)

const (
	DefaultStateSize       = 2
	DefaultTries           = 10
	DefaultMaxOverlapRatio = 0.7
	DefaultMaxOverlapTotal = 15

	maxSentenceWords = 200
)

var (
	ErrNoSentence  = errors.New("model produced no sentence")
	ErrEmptyCorpus = errors.New("no usable sentences to train on")
)

// training input with unbalanced quoting or brackets produces broken output
var rejectInput = regexp.MustCompile(`(^')|('$)|\s'|'\s|["(\(\)\[\])]`)

type Options struct {
	StateSize       int
	Tries           int
	MaxOverlapRatio float64
	MaxOverlapTotal int
	// DisableOverlapTest allows verbatim reproductions of corpus sentences.
	DisableOverlapTest bool
}

func DefaultOptions() Options {
	return Options{
		StateSize:       DefaultStateSize,
		Tries:           DefaultTries,
		MaxOverlapRatio: DefaultMaxOverlapRatio,
		MaxOverlapTotal: DefaultMaxOverlapTotal,
	}
}

type Model struct {
	chain    *gomarkov.Chain
	rejoined string
	opts     Options
}

// Build trains a chain on every acceptable sentence of text.
func Build(text string, opts Options) (*Model, error) {
	if opts.StateSize <= 0 {
		opts.StateSize = DefaultStateSize
	}
	if opts.Tries <= 0 {
		opts.Tries = DefaultTries
	}
	if opts.MaxOverlapRatio <= 0 {
		opts.MaxOverlapRatio = DefaultMaxOverlapRatio
	}
	if opts.MaxOverlapTotal <= 0 {
		opts.MaxOverlapTotal = DefaultMaxOverlapTotal
	}

	chain := gomarkov.NewChain(opts.StateSize)
	var accepted []string
	for _, sentence := range SplitSentences(text) {
		if rejectInput.MatchString(sentence) {
			continue
		}
		words := splitWords(sentence)
		if len(words) == 0 {
			continue
		}
		chain.Add(words)
		accepted = append(accepted, strings.Join(words, " "))
	}
	if len(accepted) == 0 {
		return nil, ErrEmptyCorpus
	}

	return &Model{
		chain:    chain,
		rejoined: strings.Join(accepted, " "),
		opts:     opts,
	}, nil
}

// Sample walks the chain up to Tries times and returns the first sentence
// that is not a near copy of the corpus.
func (m *Model) Sample() (string, error) {
	for i := 0; i < m.opts.Tries; i++ {
		words, err := m.walk()
		if err != nil {
			return "", fmt.Errorf("walking chain: %w", err)
		}
		if len(words) == 0 {
			continue
		}
		if m.opts.DisableOverlapTest || m.novel(words) {
			return strings.Join(words, " "), nil
		}
	}
	return "", ErrNoSentence
}

func (m *Model) walk() ([]string, error) {
	order := m.chain.Order
	tokens := make([]string, 0, order+16)
	for i := 0; i < order; i++ {
		tokens = append(tokens, gomarkov.StartToken)
	}

	for tokens[len(tokens)-1] != gomarkov.EndToken {
		next, err := m.chain.Generate(tokens[len(tokens)-order:])
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, next)
		if len(tokens) > maxSentenceWords+order {
			return nil, nil
		}
	}
	return tokens[order : len(tokens)-1], nil
}

// novel rejects sentences sharing a long run of words with the corpus.
func (m *Model) novel(words []string) bool {
	overlapRatio := int(math.Round(m.opts.MaxOverlapRatio * float64(len(words))))
	overlapMax := overlapRatio
	if m.opts.MaxOverlapTotal < overlapMax {
		overlapMax = m.opts.MaxOverlapTotal
	}
	overlapOver := overlapMax + 1
	gramCount := len(words) - overlapMax
	if gramCount < 1 {
		gramCount = 1
	}

	for i := 0; i < gramCount; i++ {
		end := i + overlapOver
		if end > len(words) {
			end = len(words)
		}
		if strings.Contains(m.rejoined, strings.Join(words[i:end], " ")) {
			return false
		}
	}
	return true
}

// SplitSentences breaks text after terminal punctuation followed by
// whitespace and an upper-case letter or digit.
func SplitSentences(text string) []string {
	runes := []rune(text)
	var sentences []string
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}
		j := i + 1
		for j < len(runes) && isTerminal(runes[j]) {
			j++
		}
		k := j
		for k < len(runes) && unicode.IsSpace(runes[k]) {
			k++
		}
		if k == j || k >= len(runes) {
			continue
		}
		if unicode.IsUpper(runes[k]) || unicode.IsDigit(runes[k]) {
			if s := strings.TrimSpace(string(runes[start:j])); s != "" {
				sentences = append(sentences, s)
			}
			start = k
			i = k - 1
		}
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func splitWords(sentence string) []string {
	fields := strings.Fields(sentence)
	words := fields[:0]
	for _, w := range fields {
		if w == gomarkov.StartToken || w == gomarkov.EndToken {
			continue
		}
		words = append(words, w)
	}
	return words
}
