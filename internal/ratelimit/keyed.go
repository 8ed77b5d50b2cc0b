// Package ratelimit provides per-key token bucket rate limiting.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/vasptech/vaspx-actions/internal/metrics"
)

// KeyedConfig configures a KeyedLimiter instance.
type KeyedConfig struct {
	// Name identifies this limiter for metrics (e.g., "sender")
	Name string

	// Token bucket settings
	Burst      float64 // Maximum tokens (burst capacity)
	RefillRate float64 // Tokens refilled per second

	// CleanupPeriod is how often inactive keys are dropped.
	CleanupPeriod time.Duration

	// Optional metrics reporter
	Metrics *metrics.Metrics
}

// KeyedLimiter tracks a token bucket per key (e.g., sender ID) and
// periodically forgets keys whose bucket has refilled.
type KeyedLimiter struct {
	mu      sync.Mutex
	entries map[string]*rate.Limiter
	config  KeyedConfig
	now     func() time.Time
	stopCh  chan struct{}
	once    sync.Once
}

// NewKeyedLimiter creates a per-key limiter and starts its cleanup loop.
// Call Stop when done.
//
//	limiter := NewKeyedLimiter(KeyedConfig{
//	    Name:          "sender",
//	    Burst:         20,
//	    RefillRate:    1,
//	    CleanupPeriod: 5 * time.Minute,
//	})
//	defer limiter.Stop()
func NewKeyedLimiter(cfg KeyedConfig) *KeyedLimiter {
	if cfg.CleanupPeriod <= 0 {
		cfg.CleanupPeriod = 5 * time.Minute
	}
	kl := &KeyedLimiter{
		entries: make(map[string]*rate.Limiter),
		config:  cfg,
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}
	go kl.cleanupLoop()
	return kl
}

func (kl *KeyedLimiter) burst() int {
	b := int(kl.config.Burst)
	if b < 1 {
		b = 1
	}
	return b
}

// Allow reports whether a request for key may proceed, consuming a token if so.
// The empty key is never limited.
func (kl *KeyedLimiter) Allow(key string) bool {
	if key == "" {
		return true
	}

	kl.mu.Lock()
	lim, ok := kl.entries[key]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(kl.config.RefillRate), kl.burst())
		kl.entries[key] = lim
	}
	kl.mu.Unlock()

	if lim.AllowN(kl.now(), 1) {
		return true
	}
	if kl.config.Metrics != nil {
		kl.config.Metrics.RecordRateLimiterDrop(kl.config.Name)
	}
	return false
}

// GetActiveCount returns the number of tracked keys.
func (kl *KeyedLimiter) GetActiveCount() int {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	return len(kl.entries)
}

// Sweep drops every key whose bucket is full again.
func (kl *KeyedLimiter) Sweep() {
	now := kl.now()
	full := float64(kl.burst())

	kl.mu.Lock()
	defer kl.mu.Unlock()
	for key, lim := range kl.entries {
		if lim.TokensAt(now) >= full {
			delete(kl.entries, key)
		}
	}
}

func (kl *KeyedLimiter) cleanupLoop() {
	ticker := time.NewTicker(kl.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-kl.stopCh:
			return
		case <-ticker.C:
			kl.Sweep()
		}
	}
}

// Stop ends the cleanup goroutine. Safe to call multiple times.
func (kl *KeyedLimiter) Stop() {
	kl.once.Do(func() { close(kl.stopCh) })
}
