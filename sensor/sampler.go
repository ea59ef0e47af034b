package sensor

import (
	"math/rand/v2"
	"sync"

	"forum_backend/models"

	"github.com/jonboulle/clockwork"
)

// Reading ranges, inclusive.
const (
	valueMin, valueMax     = 50, 149
	metric2Min, metric2Max = 20, 99
	metric3Min, metric3Max = 40, 99
)

// Sampler draws random readings stamped with the clock's time.
type Sampler struct {
	mu    sync.Mutex
	rng   *rand.Rand
	clock clockwork.Clock
}

// NewSampler returns a sampler. A nil rng is seeded randomly; a nil clock
// uses wall time.
func NewSampler(rng *rand.Rand, clock clockwork.Clock) *Sampler {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Sampler{rng: rng, clock: clock}
}

func (s *Sampler) Sample() models.DataPoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.DataPoint{
		Timestamp: s.clock.Now().UnixMilli(),
		Value:     s.between(valueMin, valueMax),
		Metric2:   s.between(metric2Min, metric2Max),
		Metric3:   s.between(metric3Min, metric3Max),
	}
}

func (s *Sampler) between(lo, hi int) int {
	return lo + s.rng.IntN(hi-lo+1)
}
