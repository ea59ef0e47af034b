package moderation

import (
	"context"
	"strings"

	"github.com/jonreiter/govader"
)

// VaderScorer scores text with the VADER lexicon. The compound score is in
// [-1, 1].
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns a neutral score for blank text.
func (s *VaderScorer) Score(ctx context.Context, text string) (*Sentiment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return &Sentiment{Score: 0}, nil
	}
	polarity := s.analyzer.PolarityScores(text)
	return &Sentiment{Score: polarity.Compound}, nil
}
