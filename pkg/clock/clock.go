package clock

import "time"

// Clock provides monotonic time since store start.
// time.Since reads the monotonic clock under the hood, so elapsed time always
// moves forward even if the wall clock is stepped. Record expiries are stored
// as durations relative to this fixed start.
type Clock struct {
	startTime time.Time
}

func New() *Clock {
	return &Clock{
		startTime: time.Now(),
	}
}

// duration since store start, monotonic
func (c *Clock) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

// expiration instant for a TTL, as monotonic time since store start
func (c *Clock) ExpiresAt(ttl time.Duration) time.Duration {
	return c.Elapsed() + ttl
}
