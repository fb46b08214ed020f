package fetcher

import (
	"math"
	"time"

	"github.com/tint-us/lm-api/internal/constants"
)

// RetryPolicy controls how many times a fetch is attempted and how long to
// wait between attempts. The wait after failed attempt i (0-indexed) is
// Unit * Base^i; nothing is slept after the final attempt.
type RetryPolicy struct {
	MaxAttempts int
	Base        float64
	Unit        time.Duration

	// Sleep is called with each backoff delay. Defaults to time.Sleep.
	Sleep func(time.Duration)
}

// DefaultRetryPolicy returns the policy used for the upstream source.
func DefaultRetryPolicy(maxAttempts int) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: maxAttempts,
		Base:        constants.BackoffBase,
		Unit:        constants.BackoffUnit,
	}
}

// Delay returns the wait after failed attempt i.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	base := p.Base
	if base <= 0 {
		base = constants.BackoffBase
	}
	return time.Duration(float64(p.Unit) * math.Pow(base, float64(attempt)))
}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

func (p RetryPolicy) sleep(d time.Duration) {
	if p.Sleep != nil {
		p.Sleep(d)
		return
	}
	time.Sleep(d)
}
