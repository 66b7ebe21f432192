package types

import "time"

// a record represents time-bound ownership of a named resource
// nobody holds a resource indefinitely
// once the record expires, the resource can be claimed by others
//
// the fencing token is critical and prevents split-brain scenarios:
// it is strictly monotonic, incremented on each successful acquisition,
// and never reused, so downstream storage can reject writes carrying a
// stale (lower) token
type Record struct {
	Resource     string        `json:"resource"`
	Owner        string        `json:"owner"`
	FencingToken uint64        `json:"fencing_token"`
	Renewals     uint64        `json:"renewals,omitempty"` //count of successful renewals of this grant
	ExpiresAt    time.Duration `json:"expires_at"`         //monotonic time from store start
	TTL          time.Duration `json:"ttl"`
}

// checks if the record has expired given the elapsed time since store start
// elapsed is monotonic time from store start
func (r *Record) IsExpired(elapsed time.Duration) bool {
	return elapsed >= r.ExpiresAt
}
