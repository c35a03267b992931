package ports

import (
	"errors"
	"time"

	"github.com/user/sinkdump/pkg/frame"
)

// ErrSourceTimeout is returned by FrameSource.Get when no frame arrived
// within the bounded wait. It is transient; the caller should poll again.
var ErrSourceTimeout = errors.New("frame source: timed out waiting for frame")

// ErrSourceClosed is returned by FrameSource.Get once the source has been
// closed and drained. It ends the consumer loop.
var ErrSourceClosed = errors.New("frame source: closed")

// FrameSource abstracts a bounded-wait channel of frames, such as a
// shared-memory sink exported by a capture process.
type FrameSource interface {
	// Get waits up to timeout for the next frame and copies it into dst,
	// reusing dst's payload capacity. It returns nil on success,
	// ErrSourceTimeout when the wait expired, and any other error on a
	// fatal condition. Get never blocks longer than timeout.
	Get(dst *frame.Frame, timeout time.Duration) error

	// Close releases the source. Safe to call after a fatal Get error.
	Close() error
}
