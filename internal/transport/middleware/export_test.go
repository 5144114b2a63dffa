package middleware

import "time"

// SetNow replaces the limiter clock.
func (rl *RateLimiter) SetNow(now func() time.Time) {
	rl.now = now
}

var FilterSensitiveBody = filterSensitiveBody
