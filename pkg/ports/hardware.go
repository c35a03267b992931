package ports

import "github.com/user/sinkdump/pkg/frame"

// Geometry describes the negotiated capture mode a session must be
// prepared for before it can compress live frames.
type Geometry struct {
	Width  int
	Height int
	Format frame.FourCC
	Stride int
}

// HardwareBackend abstracts a vendor-specific accelerated compression
// path. Backends expose a limited number of concurrently usable
// sessions; the dispatcher allocates one session per compression worker.
type HardwareBackend interface {
	// Name returns the backend name used for encoder type selection.
	Name() string

	// MaxSessions returns the maximum number of concurrently usable
	// sessions. The dispatcher clamps its worker count to this limit.
	MaxSessions() int

	// NewSession allocates a hardware encoder session.
	NewSession() (HardwareSession, error)
}

// HardwareSession is a single hardware encoder instance. A session is
// owned by exactly one worker for its lifetime; distinct sessions may be
// used concurrently.
type HardwareSession interface {
	// PrepareLive configures the session for the final capture geometry
	// and quality. Called once live parameters are known.
	PrepareLive(geo Geometry, quality int) error

	// Compress encodes the frame payload in place.
	Compress(f *frame.Frame) error

	// Close releases the session.
	Close() error
}
