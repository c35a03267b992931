// Package memsource provides an in-process bounded-wait FrameSource
// backed by a channel, plus a registry of named sources so a producer
// and the consumer loop can meet by sink name within one process.
//
// The cross-process shared-memory transport lives outside this module;
// this adapter implements the same Get contract for in-process use.
package memsource

import (
	"fmt"
	"sync"
	"time"

	"github.com/user/sinkdump/pkg/frame"
	"github.com/user/sinkdump/pkg/ports"
)

// DefaultDepth is the buffered frame count used when none is given.
const DefaultDepth = 4

// Source is a bounded in-process frame channel.
type Source struct {
	frames chan *frame.Frame

	mu     sync.Mutex
	closed bool
	err    error
}

// New creates a source buffering up to depth frames.
func New(depth int) *Source {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Source{
		frames: make(chan *frame.Frame, depth),
	}
}

// Put offers a deep copy of f to the consumer without blocking. It
// returns false when the source is closed or the buffer is full; a full
// buffer drops the frame, keeping the producer real-time.
func (s *Source) Put(f *frame.Frame) bool {
	cp := frame.New()
	cp.CopyFrom(f)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.frames <- cp:
		return true
	default:
		return false
	}
}

// Get implements ports.FrameSource. Buffered frames are still delivered
// after the source is closed; once drained, Get reports the close error.
func (s *Source) Get(dst *frame.Frame, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case f, ok := <-s.frames:
		if !ok {
			return s.failure()
		}
		dst.CopyFrom(f)
		return nil
	case <-timer.C:
		return ports.ErrSourceTimeout
	}
}

func (s *Source) failure() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	return ports.ErrSourceClosed
}

// CloseWith closes the producer side. A non-nil err is reported by Get
// once the buffer is drained; nil yields ports.ErrSourceClosed.
func (s *Source) CloseWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.err = err
	close(s.frames)
}

// Close implements ports.FrameSource.
func (s *Source) Close() error {
	s.CloseWith(nil)
	return nil
}

var _ ports.FrameSource = (*Source)(nil)

var (
	registryMu sync.Mutex
	registry   = map[string]*Source{}
)

// Register makes a source reachable by sink name.
func Register(name string, s *Source) error {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[name]; ok {
		return fmt.Errorf("sink %q is already registered", name)
	}
	registry[name] = s
	return nil
}

// Unregister removes a named source.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, name)
}

// Attach looks up a registered source by sink name.
func Attach(name string) (*Source, error) {
	registryMu.Lock()
	defer registryMu.Unlock()
	s, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("sink %q is not registered in this process", name)
	}
	return s, nil
}
