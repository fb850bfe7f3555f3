package utils

import (
	"sync"
	"time"
)

const (
	DebounceWindow = 5 * time.Second

	debounceSweepThreshold = 1000
)

// Debouncer гасит повторные инкременты кликов по одному slug
// (двойной сабмит, быстрый ре-рендер) внутри короткого окна.
type Debouncer struct {
	mu     sync.Mutex
	last   map[string]time.Time
	window time.Duration
}

func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{
		last:   make(map[string]time.Time),
		window: window,
	}
}

// ShouldDebounce возвращает true, если клик по slug нужно подавить.
// При подавлении отметка времени не обновляется.
func (d *Debouncer) ShouldDebounce(slug string) bool {
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.last) > debounceSweepThreshold {
		for key, ts := range d.last {
			if now.Sub(ts) >= d.window {
				delete(d.last, key)
			}
		}
	}

	if ts, ok := d.last[slug]; ok && now.Sub(ts) < d.window {
		return true
	}

	d.last[slug] = now
	return false
}

func (d *Debouncer) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.last)
}
