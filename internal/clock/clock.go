// Package clock provides the logical timestamps used for dirty tracking.
package clock

import "sync/atomic"

var ticks atomic.Uint64

// Tick returns a value strictly greater than every value returned before it.
// Zero is never returned, so it can stand for "never".
func Tick() uint64 {
	return ticks.Add(1)
}
