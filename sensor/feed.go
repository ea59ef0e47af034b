package sensor

import (
	"context"
	"sync"
	"time"

	"forum_backend/logging"
	"forum_backend/models"

	"github.com/jonboulle/clockwork"
)

const (
	// DefaultWindow is used when a history request names no window.
	DefaultWindow = 10 * time.Second

	subscriberBuffer = 16
)

// Feed samples readings on an interval, records them in a History and
// publishes them to subscribers.
type Feed struct {
	sampler   *Sampler
	history   History
	clock     clockwork.Clock
	interval  time.Duration
	retention time.Duration

	mu          sync.Mutex
	subscribers map[chan models.DataPoint]struct{}
	stopped     bool
}

func NewFeed(sampler *Sampler, history History, clock clockwork.Clock, interval, retention time.Duration) *Feed {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Feed{
		sampler:     sampler,
		history:     history,
		clock:       clock,
		interval:    interval,
		retention:   retention,
		subscribers: make(map[chan models.DataPoint]struct{}),
	}
}

// Run samples until ctx is cancelled.
func (f *Feed) Run(ctx context.Context) {
	ticker := f.clock.NewTicker(f.interval)
	defer ticker.Stop()

	logging.Logger.Info("Sensor feed started", "interval", f.interval)
	for {
		select {
		case <-ticker.Chan():
			if _, err := f.Read(ctx); err != nil {
				logging.Logger.Warn("Failed to record sensor reading", "error", err)
			}
		case <-ctx.Done():
			f.closeSubscribers()
			logging.Logger.Info("Sensor feed stopped")
			return
		}
	}
}

// Read takes one reading, records it and publishes it. The reading is
// returned even when recording fails.
func (f *Feed) Read(ctx context.Context) (models.DataPoint, error) {
	dp := f.sampler.Sample()
	f.publish(dp)
	return dp, f.history.Append(ctx, dp)
}

// History returns the readings inside window. A non-positive window means
// DefaultWindow; windows longer than retention are clamped.
func (f *Feed) History(ctx context.Context, window time.Duration) ([]models.DataPoint, error) {
	if window <= 0 {
		window = DefaultWindow
	}
	if window > f.retention {
		window = f.retention
	}
	return f.history.Window(ctx, window)
}

// Subscribe registers a subscriber. The returned cancel func must be called
// once the subscriber is done; the channel is closed when the feed stops.
// Subscribing to a stopped feed yields an already closed channel.
func (f *Feed) Subscribe() (<-chan models.DataPoint, func()) {
	ch := make(chan models.DataPoint, subscriberBuffer)

	f.mu.Lock()
	if f.stopped {
		f.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	f.subscribers[ch] = struct{}{}
	f.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			if _, ok := f.subscribers[ch]; ok {
				delete(f.subscribers, ch)
				close(ch)
			}
		})
	}
}

func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subscribers)
}

// publish never blocks: a subscriber with a full buffer misses the reading.
func (f *Feed) publish(dp models.DataPoint) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for ch := range f.subscribers {
		select {
		case ch <- dp:
		default:
		}
	}
}

func (f *Feed) closeSubscribers() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.stopped = true
	for ch := range f.subscribers {
		delete(f.subscribers, ch)
		close(ch)
	}
}
