package domain

import "time"

// Clock supplies the current time. Scheduling and aggregation never read the
// system clock directly so they can be exercised with fixed times.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real time. Only main should construct one.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
