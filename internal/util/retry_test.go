// ABOUTME: Tests for retry backoff calculation
// ABOUTME: Verifies exponential growth, jitter bounds and the backoff cap
package util

import (
	"testing"
	"time"
)

func TestCalculateBackoff(t *testing.T) {
	base := 2 * time.Second

	tests := []struct {
		name    string
		attempt int
		min     time.Duration
		max     time.Duration
	}{
		{
			name:    "zero attempt waits nothing",
			attempt: 0,
			min:     0,
			max:     0,
		},
		{
			name:    "negative attempt waits nothing",
			attempt: -3,
			min:     0,
			max:     0,
		},
		{
			name:    "first retry doubles base with jitter",
			attempt: 1,
			min:     3 * time.Second, // 4s - 25%
			max:     5 * time.Second, // 4s + 25%
		},
		{
			name:    "second retry quadruples base with jitter",
			attempt: 2,
			min:     6 * time.Second, // 8s - 25%
			max:     10 * time.Second, // 8s + 25%
		},
		{
			name:    "large attempt stays at cap",
			attempt: 20,
			min:     22500 * time.Millisecond, // 30s - 25%
			max:     37500 * time.Millisecond, // 30s + 25%
		},
		{
			name:    "huge attempt does not overflow",
			attempt: 1 << 20,
			min:     22500 * time.Millisecond,
			max:     37500 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Jitter is random, so sample repeatedly.
			for i := 0; i < 50; i++ {
				got := CalculateBackoff(base, tt.attempt)
				if got < tt.min || got > tt.max {
					t.Fatalf("CalculateBackoff(%v, %d) = %v, want in [%v, %v]",
						base, tt.attempt, got, tt.min, tt.max)
				}
			}
		})
	}
}

func TestCalculateBackoffGrows(t *testing.T) {
	base := 100 * time.Millisecond

	// Even with jitter, attempt 4 (1.6s ±25%) always exceeds attempt 1
	// (200ms ±25%).
	for i := 0; i < 50; i++ {
		early := CalculateBackoff(base, 1)
		late := CalculateBackoff(base, 4)
		if late <= early {
			t.Fatalf("backoff did not grow: attempt 1 = %v, attempt 4 = %v", early, late)
		}
	}
}
