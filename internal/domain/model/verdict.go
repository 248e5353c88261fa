package model

import "time"

// Verdict is the outcome of the backend's network-origin check. Allowed is
// subject to revalidation once the observation exceeds the gate's TTL; DevMode
// is a permanent bypass that is never revalidated.
type Verdict struct {
	Allowed    bool
	DevMode    bool
	ObservedAt time.Time
}

// Age returns how long ago the verdict was observed relative to now.
func (v Verdict) Age(now time.Time) time.Duration {
	return now.Sub(v.ObservedAt)
}
