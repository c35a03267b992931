// Package frame defines the reusable video frame buffer exchanged
// between sinks, encoders and consumers.
package frame

// Frame is a reusable frame buffer. The payload slice is grown on demand
// and its backing array is reused across polls, so a long-running consumer
// settles on a stable allocation after the first few frames.
//
// Width and Height are only meaningful while Online is true; a sink may
// resend the last frame with Online=false to keep slow clients fed.
type Frame struct {
	// Data holds the payload. len(Data) is the used byte count; the
	// capacity is retained between polls.
	Data []byte

	Width  int
	Height int
	Format FourCC
	Stride int

	// Online reports whether this is a freshly captured frame rather
	// than a stale or resent one.
	Online bool

	// Monotonic timestamps in fractional seconds. Non-decreasing within
	// one capture session.
	GrabTS        float64
	EncodeBeginTS float64
	EncodeEndTS   float64
}

// New returns an empty frame with no payload allocated yet.
func New() *Frame {
	return &Frame{}
}

// SetPayload replaces the payload with a copy of data, reusing the
// existing backing array when it is large enough.
func (f *Frame) SetPayload(data []byte) {
	if cap(f.Data) < len(data) {
		f.Data = make([]byte, len(data))
	} else {
		f.Data = f.Data[:len(data)]
	}
	copy(f.Data, data)
}

// CopyFrom overwrites f with a deep copy of src.
func (f *Frame) CopyFrom(src *Frame) {
	f.SetPayload(src.Data)
	f.Width = src.Width
	f.Height = src.Height
	f.Format = src.Format
	f.Stride = src.Stride
	f.Online = src.Online
	f.GrabTS = src.GrabTS
	f.EncodeBeginTS = src.EncodeBeginTS
	f.EncodeEndTS = src.EncodeEndTS
}
