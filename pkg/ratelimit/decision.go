package ratelimit

import (
	"fmt"
	"math"
	"time"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Key        string
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

func (d Decision) String() string {
	if d.Allowed {
		return fmt.Sprintf("Decision{Allowed: true, Key: %s, Remaining: %d/%d}", d.Key, d.Remaining, d.Limit)
	}
	return fmt.Sprintf("Decision{Allowed: false, Key: %s, Limit: %d, RetryAfter: %s}", d.Key, d.Limit, d.RetryAfter)
}

// RetryAfterSeconds rounds RetryAfter up to whole seconds, as the Retry-After
// header requires. Denied decisions report at least 1.
func (d Decision) RetryAfterSeconds() int64 {
	if d.Allowed {
		return 0
	}
	secs := int64(math.Ceil(d.RetryAfter.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}
