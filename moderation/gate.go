package moderation

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrProfanity         = errors.New("profanity detected")
	ErrNegativeSentiment = errors.New("negative sentiment")
)

// ProfanityFilter flags text that matches a profanity word list.
type ProfanityFilter interface {
	IsProfane(text string) bool
}

// Sentiment is the polarity the scoring model assigned to a text.
// Negative scores are unfavourable.
type Sentiment struct {
	Score float64
}

// SentimentScorer analyses text. A nil Sentiment with a nil error means the
// model produced no sentiment for the text.
type SentimentScorer interface {
	Score(ctx context.Context, text string) (*Sentiment, error)
}

// Policy decides how flagged fields combine into a profanity rejection.
type Policy int

const (
	// RequireAll rejects only when every field is flagged.
	RequireAll Policy = iota
	// RequireAny rejects when at least one field is flagged.
	RequireAny
)

// Gate is safe for concurrent use as long as its filter and scorer are.
type Gate struct {
	filter ProfanityFilter
	scorer SentimentScorer
}

func NewGate(filter ProfanityFilter, scorer SentimentScorer) *Gate {
	return &Gate{filter: filter, scorer: scorer}
}

// CheckProfanity returns ErrProfanity when the fields are flagged under policy.
func (g *Gate) CheckProfanity(policy Policy, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}

	flagged := 0
	for _, f := range fields {
		if g.filter.IsProfane(f) {
			flagged++
		}
	}

	switch policy {
	case RequireAll:
		if flagged == len(fields) {
			return ErrProfanity
		}
	case RequireAny:
		if flagged > 0 {
			return ErrProfanity
		}
	}
	return nil
}

// CheckSentiment scores every field and returns ErrNegativeSentiment when the
// summed score is below zero. The check is skipped if any field yields no
// sentiment. Scorer failures are returned wrapped and are not rejections.
func (g *Gate) CheckSentiment(ctx context.Context, fields ...string) error {
	var total float64
	for _, f := range fields {
		s, err := g.scorer.Score(ctx, f)
		if err != nil {
			return fmt.Errorf("sentiment scoring: %w", err)
		}
		if s == nil {
			return nil
		}
		total += s.Score
	}

	if total < 0 {
		return ErrNegativeSentiment
	}
	return nil
}

// ScreenPost applies the post policy to subject and body: conjunctive
// profanity, then summed sentiment.
func (g *Gate) ScreenPost(ctx context.Context, subject, body string) error {
	if err := g.CheckProfanity(RequireAll, subject, body); err != nil {
		return err
	}
	return g.CheckSentiment(ctx, subject, body)
}

// IsRejection reports whether err is a moderation rejection rather than a
// scoring failure.
func IsRejection(err error) bool {
	return errors.Is(err, ErrProfanity) || errors.Is(err, ErrNegativeSentiment)
}

// Reason returns a short label for a rejection, for metrics.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrProfanity):
		return "profanity"
	case errors.Is(err, ErrNegativeSentiment):
		return "negative_sentiment"
	default:
		return "unknown"
	}
}
