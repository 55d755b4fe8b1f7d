package ratelimiter

import (
	"context"
	"sync"
	"time"
)

type window struct {
	start time.Time
	count int
}

// FixedWindow counts requests per key in windows that open on the key's
// first request.
type FixedWindow struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	frame   time.Duration
	now     func() time.Time
}

func NewFixedWindow(limit int, frame time.Duration) *FixedWindow {
	return &FixedWindow{
		windows: make(map[string]*window),
		limit:   limit,
		frame:   frame,
		now:     time.Now,
	}
}

func (rl *FixedWindow) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || now.Sub(w.start) >= rl.frame {
		rl.windows[key] = &window{start: now, count: 1}
		return true, 0
	}
	if w.count < rl.limit {
		w.count++
		return true, 0
	}
	return false, w.start.Add(rl.frame).Sub(now)
}

// Run drops expired windows every frame until ctx is done.
func (rl *FixedWindow) Run(ctx context.Context) {
	ticker := time.NewTicker(rl.frame)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

func (rl *FixedWindow) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	for k, w := range rl.windows {
		if now.Sub(w.start) >= rl.frame {
			delete(rl.windows, k)
		}
	}
}

func (rl *FixedWindow) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.windows)
}
