// Package encoder dispatches compression work between the
// always-available software JPEG path and zero or more hardware encoder
// sessions, demoting the whole dispatcher to software on any hardware
// failure.
package encoder

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/user/sinkdump/pkg/clock"
	"github.com/user/sinkdump/pkg/frame"
	"github.com/user/sinkdump/pkg/ports"
)

// DefaultQuality is the JPEG quality used when none is configured.
const DefaultQuality = 80

// SoftwareName is the selection name of the software backend.
const SoftwareName = "software"

// Type identifies a compression backend.
type Type int32

const (
	// TypeUnknown is the zero value; a dispatcher never reports it after
	// successful preparation.
	TypeUnknown Type = iota
	// TypeSoftware is the software JPEG path.
	TypeSoftware
	// TypeHardware is the vendor-accelerated path.
	TypeHardware
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case TypeSoftware:
		return SoftwareName
	case TypeHardware:
		return "hardware"
	default:
		return "unknown"
	}
}

// ParseType resolves a backend name case-insensitively. The software
// backend is always registered; a hardware name matches only when a
// backend is wired in. Unrecognized names yield TypeUnknown, which the
// caller must reject before use.
func ParseType(name string, hw ports.HardwareBackend) Type {
	if strings.EqualFold(name, SoftwareName) {
		return TypeSoftware
	}
	if hw != nil && strings.EqualFold(name, hw.Name()) {
		return TypeHardware
	}
	return TypeUnknown
}

// Device carries the capture-side parameters and the buffer ring the
// dispatcher compresses in place. Workers may be reduced during Prepare
// when it exceeds the hardware backend's session limit.
type Device struct {
	Workers  int
	Geometry ports.Geometry
	Buffers  []*frame.Frame
}

// Dispatcher selects and runs a compression backend per buffer. The
// current backend type is shared between workers; the fallback path
// mutates it with a compare-and-swap so near-simultaneous failures from
// several workers demote exactly once.
type Dispatcher struct {
	quality  int
	selected Type
	hw       ports.HardwareBackend
	log      ports.Logger

	current  atomic.Int32
	sessions []ports.HardwareSession
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithQuality sets the JPEG quality in [1,100].
func WithQuality(quality int) Option {
	return func(d *Dispatcher) { d.quality = quality }
}

// WithType selects the backend to prepare.
func WithType(t Type) Option {
	return func(d *Dispatcher) { d.selected = t }
}

// WithHardware registers a hardware backend.
func WithHardware(hw ports.HardwareBackend) Option {
	return func(d *Dispatcher) { d.hw = hw }
}

// New creates a dispatcher with the software backend selected and
// quality 80. It never fails.
func New(log ports.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		quality:  DefaultQuality,
		selected: TypeSoftware,
		log:      log.WithComponent("encoder"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Quality returns the configured JPEG quality.
func (d *Dispatcher) Quality() int {
	return d.quality
}

// Current returns the backend type currently in effect. TypeUnknown
// means the dispatcher has not been prepared.
func (d *Dispatcher) Current() Type {
	return Type(d.current.Load())
}

// Prepare runs the first setup phase, before live capture parameters are
// known. For the hardware backend it clamps dev.Workers to the backend's
// session limit and allocates one session per worker; if any allocation
// fails, every allocated session is discarded and the whole dispatcher
// falls back to software.
func (d *Dispatcher) Prepare(dev *Device) {
	d.current.Store(int32(d.selected))
	d.log.Info("Using JPEG quality: %d%%", d.quality)

	if d.Current() != TypeHardware {
		return
	}
	if d.hw == nil {
		d.log.Error("Can't initialize selected encoder, using software instead: no hardware backend")
		d.current.Store(int32(TypeSoftware))
		return
	}

	if limit := d.hw.MaxSessions(); dev.Workers > limit {
		d.log.Info("%s encoder can only work with %d worker threads; forced workers=%d",
			d.hw.Name(), limit, limit)
		dev.Workers = limit
	}

	d.sessions = make([]ports.HardwareSession, 0, dev.Workers)
	for index := 0; index < dev.Workers; index++ {
		session, err := d.hw.NewSession()
		if err != nil {
			d.releaseSessions()
			d.log.Error("Can't initialize selected encoder, using software instead: %v", err)
			d.current.Store(int32(TypeSoftware))
			return
		}
		d.sessions = append(d.sessions, session)
	}
}

// PrepareLive runs the second setup phase once capture resolution and
// format are finalized. Any single session failure demotes the whole
// dispatcher to software.
func (d *Dispatcher) PrepareLive(dev *Device) {
	if d.Current() != TypeHardware {
		return
	}
	for index, session := range d.sessions {
		if err := session.PrepareLive(dev.Geometry, d.quality); err != nil {
			d.log.Error("Can't prepare selected encoder (session %d), falling back to software: %v",
				index, err)
			d.current.Store(int32(TypeSoftware))
			return
		}
	}
}

// CompressBuffer compresses the addressed device buffer in place with
// the current backend. Calls on distinct workers are safe to run
// concurrently. A hardware failure demotes the whole dispatcher to
// software and fails this call only; the caller may push the next buffer
// through the software path.
func (d *Dispatcher) CompressBuffer(dev *Device, worker, bufIndex int) error {
	f := dev.Buffers[bufIndex]
	f.EncodeBeginTS = clock.Now()

	switch d.Current() {
	case TypeSoftware:
		if err := compressSoftware(f, d.quality); err != nil {
			return fmt.Errorf("software compress: %w", err)
		}
	case TypeHardware:
		if err := d.sessions[worker].Compress(f); err != nil {
			d.demote()
			return fmt.Errorf("hardware compress (worker %d): %w", worker, err)
		}
	default:
		return fmt.Errorf("encoder is not prepared")
	}

	f.EncodeEndTS = clock.Now()
	return nil
}

// demote flips the dispatcher to the software path. The compare-and-swap
// keeps the transition single-writer under concurrent worker failures;
// sessions stay allocated until Close so a racing worker never touches a
// released handle.
func (d *Dispatcher) demote() {
	if d.current.CompareAndSwap(int32(TypeHardware), int32(TypeSoftware)) {
		d.log.Info("Hardware compression error, falling back to software")
	}
}

// Close releases every hardware session and resets the dispatcher.
// Idempotent, and safe on a dispatcher that was never prepared.
func (d *Dispatcher) Close() {
	d.releaseSessions()
	d.current.Store(int32(TypeUnknown))
}

func (d *Dispatcher) releaseSessions() {
	for index, session := range d.sessions {
		if err := session.Close(); err != nil {
			d.log.Error("Can't close hardware session %d: %v", index, err)
		}
	}
	d.sessions = nil
}
