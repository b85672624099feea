// ABOUTME: Retry utilities for embedding provider calls
// ABOUTME: Exponential backoff with jitter, capped to keep ingestion moving
package util

import (
	"math/rand/v2"
	"time"
)

// maxBackoff bounds a single retry wait regardless of attempt count.
const maxBackoff = 30 * time.Second

// CalculateBackoff returns the wait before retry number attempt: the base
// delay doubled per attempt, capped at maxBackoff, with ±25% random jitter
// so concurrent ingestion runs don't retry in lockstep.
func CalculateBackoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	// Bound the shift so large attempt counts cannot overflow.
	if attempt > 30 {
		attempt = 30
	}
	backoff := baseDelay * time.Duration(1<<uint(attempt))
	if backoff > maxBackoff || backoff <= 0 {
		backoff = maxBackoff
	}
	jitter := time.Duration(rand.Int64N(int64(backoff)/2)) - backoff/4
	return backoff + jitter
}
