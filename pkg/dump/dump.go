// Package dump implements the sink consumer loop: it drains frames from
// a bounded-wait source, tracks throughput, and serializes each frame to
// an output stream as raw bytes or one JSON Lines record.
package dump

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/user/sinkdump/pkg/clock"
	"github.com/user/sinkdump/pkg/frame"
	"github.com/user/sinkdump/pkg/ports"
)

// DefaultTimeout bounds a single wait on the source.
const DefaultTimeout = time.Second

// Options configures a Dumper.
type Options struct {
	// Source supplies frames. Required.
	Source ports.FrameSource

	// Output receives serialized frames. nil means frames are consumed
	// and measured but not persisted.
	Output io.Writer

	// JSON selects JSON Lines framing instead of raw payload bytes.
	JSON bool

	// Timeout bounds each wait on the source. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// flusher is implemented by buffered outputs that must be drained after
// each frame to support real-time piping.
type flusher interface{ Flush() error }

// Dumper drives the consumer loop. It owns the output destination for
// the duration of Run but never closes it; closing is the caller's
// responsibility because the destination may be stdout.
type Dumper struct {
	source  ports.FrameSource
	out     io.Writer
	json    bool
	timeout time.Duration
	log     ports.Logger
	fps     fpsMeter
}

// New creates a Dumper.
func New(log ports.Logger, opts Options) *Dumper {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dumper{
		source:  opts.Source,
		out:     opts.Output,
		json:    opts.JSON,
		timeout: timeout,
		log:     log,
	}
}

// Run drains the source until ctx is canceled or a fatal source or
// output error occurs. Source timeouts are transient and absorbed.
// Cancellation is observed between iterations only, never mid-poll, so
// shutdown latency is bounded by one source timeout.
func (d *Dumper) Run(ctx context.Context) error {
	f := frame.New()

	for {
		select {
		case <-ctx.Done():
			d.log.Info("Stopped by request")
			return nil
		default:
		}

		err := d.source.Get(f, d.timeout)
		if errors.Is(err, ports.ErrSourceTimeout) {
			continue
		}
		if err != nil {
			return fmt.Errorf("get frame: %w", err)
		}

		now := clock.Now()
		d.log.Verbose("Frame: size=%d, resolution=%dx%d, fourcc=%s, stride=%d, online=%v",
			len(f.Data), f.Width, f.Height, f.Format, f.Stride, f.Online)
		d.log.Debug("grab_ts=%.3f, encode_begin_ts=%.3f, encode_end_ts=%.3f, latency=%.3f",
			f.GrabTS, f.EncodeBeginTS, f.EncodeEndTS, now-f.GrabTS)

		if fps, turned := d.fps.Tick(clock.WholeSecond(now)); turned {
			d.log.Perf("A new second has come; captured_fps=%d", fps)
		}

		if d.out == nil {
			continue
		}
		if d.json {
			err = writeJSON(d.out, f)
		} else {
			err = writeRaw(d.out, f)
		}
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		if fl, ok := d.out.(flusher); ok {
			if err := fl.Flush(); err != nil {
				return fmt.Errorf("flush output: %w", err)
			}
		}
	}
}
