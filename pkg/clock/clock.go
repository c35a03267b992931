// Package clock provides the monotonic timebase used for frame
// timestamps and throughput accounting.
package clock

import "time"

var start = time.Now()

// Now returns monotonic fractional seconds since process start.
func Now() float64 {
	return time.Since(start).Seconds()
}

// WholeSecond floors a fractional-second timestamp to its whole-second
// bucket, going through milliseconds to match the capture side.
func WholeSecond(ts float64) int64 {
	return int64(ts*1000) / 1000
}
