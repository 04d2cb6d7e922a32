package utils

import (
	"context"
	"log"
	"runtime/debug"
	"time"
)

// GoSafe runs fn in a goroutine and recovers from panics so a single
// misbehaving handler cannot take the process down.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("recovered from panic: %v\n%s", r, debug.Stack())
			}
		}()
		fn()
	}()
}

// ShouldContinue reports whether the context is still live.
func ShouldContinue(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	default:
		return true
	}
}

// DateRange returns the [start, end] pair covering the given number of
// days back from now, truncated to whole days.
func DateRange(daysBack int) (time.Time, time.Time) {
	end := time.Now().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -daysBack)
	return start, end
}
