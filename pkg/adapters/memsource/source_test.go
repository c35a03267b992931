package memsource

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/user/sinkdump/pkg/frame"
	"github.com/user/sinkdump/pkg/ports"
)

func sampleFrame(payload string) *frame.Frame {
	f := frame.New()
	f.SetPayload([]byte(payload))
	f.Width = 8
	f.Height = 8
	f.Format = frame.FormatJPEG
	f.Online = true
	return f
}

func TestPutGetRoundTrip(t *testing.T) {
	s := New(2)
	defer s.Close()

	src := sampleFrame("hello")
	if !s.Put(src) {
		t.Fatal("expected put to succeed")
	}
	// The source must hold its own copy.
	src.Data[0] = 'X'

	got := frame.New()
	if err := s.Get(got, time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got.Data, []byte("hello")) {
		t.Errorf("expected deep-copied payload, got %q", got.Data)
	}
	if got.Width != 8 || !got.Online {
		t.Error("metadata not delivered")
	}
}

func TestGetTimesOut(t *testing.T) {
	s := New(1)
	defer s.Close()

	err := s.Get(frame.New(), 10*time.Millisecond)
	if !errors.Is(err, ports.ErrSourceTimeout) {
		t.Errorf("expected timeout, got: %v", err)
	}
}

func TestPutDropsWhenFull(t *testing.T) {
	s := New(1)
	defer s.Close()

	if !s.Put(sampleFrame("a")) {
		t.Fatal("first put must succeed")
	}
	if s.Put(sampleFrame("b")) {
		t.Error("expected drop when the buffer is full")
	}
}

func TestDrainAfterClose(t *testing.T) {
	s := New(4)
	s.Put(sampleFrame("a"))
	s.Put(sampleFrame("b"))
	s.CloseWith(nil)

	got := frame.New()
	for i := 0; i < 2; i++ {
		if err := s.Get(got, time.Second); err != nil {
			t.Fatalf("buffered frame %d must still deliver, got: %v", i, err)
		}
	}
	if err := s.Get(got, time.Second); !errors.Is(err, ports.ErrSourceClosed) {
		t.Errorf("expected ErrSourceClosed after drain, got: %v", err)
	}
}

func TestCloseWithError(t *testing.T) {
	boom := errors.New("capture process died")
	s := New(1)
	s.CloseWith(boom)

	if err := s.Get(frame.New(), time.Second); !errors.Is(err, boom) {
		t.Errorf("expected close error, got: %v", err)
	}
	if s.Put(sampleFrame("late")) {
		t.Error("expected put to fail after close")
	}
}

func TestCloseIdempotent(t *testing.T) {
	s := New(1)
	s.CloseWith(nil)
	s.CloseWith(errors.New("later"))
	if err := s.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := s.Get(frame.New(), time.Millisecond); !errors.Is(err, ports.ErrSourceClosed) {
		t.Errorf("expected ErrSourceClosed, got: %v", err)
	}
}

func TestRegistry(t *testing.T) {
	s := New(1)
	defer s.Close()

	if err := Register("cam0", s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer Unregister("cam0")

	if err := Register("cam0", New(1)); err == nil {
		t.Error("expected duplicate registration to fail")
	}

	got, err := Attach("cam0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != s {
		t.Error("expected the registered source")
	}

	if _, err := Attach("missing"); err == nil {
		t.Error("expected error for unknown sink name")
	}
}
