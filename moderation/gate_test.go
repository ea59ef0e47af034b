package moderation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wordFilter map[string]bool

func (f wordFilter) IsProfane(text string) bool { return f[text] }

type fixedScorer struct {
	scores map[string]float64
	err    error
	calls  []string
}

func (s *fixedScorer) Score(_ context.Context, text string) (*Sentiment, error) {
	s.calls = append(s.calls, text)
	if s.err != nil {
		return nil, s.err
	}
	score, ok := s.scores[text]
	if !ok {
		return nil, nil
	}
	return &Sentiment{Score: score}, nil
}

func neutral(texts ...string) *fixedScorer {
	scores := make(map[string]float64, len(texts))
	for _, t := range texts {
		scores[t] = 0
	}
	return &fixedScorer{scores: scores}
}

// Posts use a conjunctive profanity policy: only subject AND body flagged rejects.
func TestScreenPost_ProfanityRequiresBothFields(t *testing.T) {
	filter := wordFilter{"darn subject": true, "darn body": true}

	cases := []struct {
		name    string
		subject string
		body    string
		wantErr error
	}{
		{"both profane", "darn subject", "darn body", ErrProfanity},
		{"only subject profane", "darn subject", "clean body", nil},
		{"only body profane", "clean subject", "darn body", nil},
		{"neither profane", "clean subject", "clean body", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gate := NewGate(filter, neutral(tc.subject, tc.body))
			err := gate.ScreenPost(context.Background(), tc.subject, tc.body)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

// Comments are rejected by a single flagged field, unlike posts.
func TestCheckProfanity_CommentPolicyIsNotConjunctive(t *testing.T) {
	gate := NewGate(wordFilter{"darn": true}, neutral())

	assert.ErrorIs(t, gate.CheckProfanity(RequireAny, "darn"), ErrProfanity)
	assert.NoError(t, gate.CheckProfanity(RequireAny, "fine"))
	assert.NoError(t, gate.CheckProfanity(RequireAll, "darn", "fine"))
	assert.NoError(t, gate.CheckProfanity(RequireAll))
}

func TestScreenPost_SumsSentiment(t *testing.T) {
	scorer := &fixedScorer{scores: map[string]float64{
		"great news": 0.6,
		"bad day":    -0.4,
		"awful":      -0.9,
	}}
	gate := NewGate(wordFilter{}, scorer)
	ctx := context.Background()

	assert.NoError(t, gate.ScreenPost(ctx, "great news", "bad day"))
	assert.ErrorIs(t, gate.ScreenPost(ctx, "bad day", "awful"), ErrNegativeSentiment)
	assert.ErrorIs(t, gate.ScreenPost(ctx, "great news", "awful"), ErrNegativeSentiment)
}

func TestScreenPost_ProfanityShortCircuitsScoring(t *testing.T) {
	scorer := neutral("x", "y")
	gate := NewGate(wordFilter{"x": true, "y": true}, scorer)

	err := gate.ScreenPost(context.Background(), "x", "y")
	assert.ErrorIs(t, err, ErrProfanity)
	assert.Empty(t, scorer.calls)
}

func TestCheckSentiment_SkippedWhenModelYieldsNothing(t *testing.T) {
	// "untranslatable" is unknown to the scorer, which returns no sentiment.
	scorer := &fixedScorer{scores: map[string]float64{"awful": -0.9}}
	gate := NewGate(wordFilter{}, scorer)

	assert.NoError(t, gate.CheckSentiment(context.Background(), "untranslatable", "awful"))
	assert.ErrorIs(t, gate.CheckSentiment(context.Background(), "awful"), ErrNegativeSentiment)
}

func TestCheckSentiment_ScorerFailureIsNotRejection(t *testing.T) {
	boom := errors.New("model unavailable")
	gate := NewGate(wordFilter{}, &fixedScorer{err: boom})

	err := gate.CheckSentiment(context.Background(), "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.False(t, IsRejection(err))
}

func TestReason(t *testing.T) {
	assert.Equal(t, "profanity", Reason(ErrProfanity))
	assert.Equal(t, "negative_sentiment", Reason(ErrNegativeSentiment))
	assert.Equal(t, "unknown", Reason(errors.New("other")))
	assert.True(t, IsRejection(ErrNegativeSentiment))
}
