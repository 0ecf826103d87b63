package powerbay

import "time"

// Clock reports time elapsed since process start. Readings never decrease.
//
// time.Duration is a signed 64-bit nanosecond count, so readings wrap after
// roughly 292 years of uptime; nothing here handles the wrap.
type Clock interface {
	Now() time.Duration
}

type MonotonicClock struct {
	start time.Time
}

func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

// Now has millisecond resolution. time.Since uses the monotonic reading of
// time.Now, so wall clock adjustments do not move it.
func (mc *MonotonicClock) Now() time.Duration {
	return time.Since(mc.start).Truncate(time.Millisecond)
}
