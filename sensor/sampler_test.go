package sensor

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestSampler_Ranges(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.UnixMilli(1_700_000_000_000))
	s := NewSampler(rand.New(rand.NewPCG(1, 2)), clock)

	for i := 0; i < 1000; i++ {
		dp := s.Sample()
		assert.Equal(t, int64(1_700_000_000_000), dp.Timestamp)
		assert.GreaterOrEqual(t, dp.Value, 50)
		assert.LessOrEqual(t, dp.Value, 149)
		assert.GreaterOrEqual(t, dp.Metric2, 20)
		assert.LessOrEqual(t, dp.Metric2, 99)
		assert.GreaterOrEqual(t, dp.Metric3, 40)
		assert.LessOrEqual(t, dp.Metric3, 99)
	}
}

func TestSampler_SeededIsDeterministic(t *testing.T) {
	clock := clockwork.NewFakeClock()
	a := NewSampler(rand.New(rand.NewPCG(7, 7)), clock)
	b := NewSampler(rand.New(rand.NewPCG(7, 7)), clock)

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Sample(), b.Sample())
	}
}
