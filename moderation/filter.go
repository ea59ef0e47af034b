package moderation

import (
	"strings"

	goaway "github.com/TwiN/go-away"
)

// WordListFilter flags text using go-away's default English dictionary.
type WordListFilter struct {
	detector *goaway.ProfanityDetector
}

func NewWordListFilter() *WordListFilter {
	return &WordListFilter{detector: goaway.NewProfanityDetector()}
}

func (f *WordListFilter) IsProfane(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	return f.detector.IsProfane(text)
}
