package sensor

import (
	"context"
	"sort"
	"sync"
	"time"

	"forum_backend/models"
)

// History keeps readings for a retention period measured back from the newest
// reading it holds.
type History interface {
	Append(ctx context.Context, dp models.DataPoint) error
	// Window returns the readings no older than window before the newest
	// reading, oldest first.
	Window(ctx context.Context, window time.Duration) ([]models.DataPoint, error)
}

// MemoryHistory is an in-process History.
type MemoryHistory struct {
	mu        sync.RWMutex
	retention time.Duration
	points    []models.DataPoint // sorted by Timestamp
}

func NewMemoryHistory(retention time.Duration) *MemoryHistory {
	return &MemoryHistory{retention: retention}
}

func (h *MemoryHistory) Append(_ context.Context, dp models.DataPoint) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	i := sort.Search(len(h.points), func(i int) bool {
		return h.points[i].Timestamp > dp.Timestamp
	})
	h.points = append(h.points, models.DataPoint{})
	copy(h.points[i+1:], h.points[i:])
	h.points[i] = dp

	h.prune()
	return nil
}

// prune drops readings past retention. Must be called with mu held.
func (h *MemoryHistory) prune() {
	if len(h.points) == 0 {
		return
	}
	cutoff := h.points[len(h.points)-1].Timestamp - h.retention.Milliseconds()
	i := sort.Search(len(h.points), func(i int) bool {
		return h.points[i].Timestamp >= cutoff
	})
	if i > 0 {
		h.points = append(h.points[:0], h.points[i:]...)
	}
}

func (h *MemoryHistory) Window(_ context.Context, window time.Duration) ([]models.DataPoint, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.points) == 0 {
		return []models.DataPoint{}, nil
	}
	cutoff := h.points[len(h.points)-1].Timestamp - window.Milliseconds()
	i := sort.Search(len(h.points), func(i int) bool {
		return h.points[i].Timestamp >= cutoff
	})

	out := make([]models.DataPoint, len(h.points)-i)
	copy(out, h.points[i:])
	return out, nil
}

func (h *MemoryHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.points)
}
