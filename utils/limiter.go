package utils

import (
	"sync"
	"time"
)

const (
	RateLimitWindow      = 10 * time.Minute
	RateLimitMaxRequests = 5

	// Сверх этого размера карта чистится от истёкших окон
	rateLimitSweepThreshold = 10000
)

type rateLimitEntry struct {
	count     int
	resetTime time.Time
}

// RateLimiter - лимит запросов на IP в фиксированном окне.
// Состояние только в памяти процесса: при нескольких инстансах лимит
// действует на каждый инстанс отдельно.
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string]*rateLimitEntry
	window  time.Duration
	max     int
}

type RateLimitResult struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
}

func NewRateLimiter(window time.Duration, max int) *RateLimiter {
	return &RateLimiter{
		entries: make(map[string]*rateLimitEntry),
		window:  window,
		max:     max,
	}
}

// Check регистрирует запрос от identity и решает, пропускать ли его
func (rl *RateLimiter) Check(identity string) RateLimitResult {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if len(rl.entries) > rateLimitSweepThreshold {
		for key, entry := range rl.entries {
			if now.After(entry.resetTime) {
				delete(rl.entries, key)
			}
		}
	}

	entry, ok := rl.entries[identity]
	if !ok || now.After(entry.resetTime) {
		rl.entries[identity] = &rateLimitEntry{count: 1, resetTime: now.Add(rl.window)}
		return RateLimitResult{Allowed: true, Remaining: rl.max - 1, ResetIn: rl.window}
	}

	if entry.count >= rl.max {
		return RateLimitResult{Allowed: false, Remaining: 0, ResetIn: entry.resetTime.Sub(now)}
	}

	entry.count++
	return RateLimitResult{Allowed: true, Remaining: rl.max - entry.count, ResetIn: entry.resetTime.Sub(now)}
}

func (rl *RateLimiter) Size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.entries)
}
