package dump

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/user/sinkdump/pkg/frame"
)

// Seconds is a fractional-second timestamp rendered with fixed
// three-decimal precision, matching the capture side's formatting.
type Seconds float64

// MarshalJSON renders the timestamp with exactly three decimals.
func (s Seconds) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, float64(s), 'f', 3, 64), nil
}

// UnmarshalJSON parses a fractional-second timestamp.
func (s *Seconds) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*s = Seconds(v)
	return nil
}

// Record is one JSON Lines record describing a dumped frame. Data holds
// the base64 payload; the base64 alphabet contains no characters that
// need JSON escaping.
type Record struct {
	Size          int     `json:"size"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	Format        uint32  `json:"format"`
	Stride        int     `json:"stride"`
	Online        int     `json:"online"`
	GrabTS        Seconds `json:"grab_ts"`
	EncodeBeginTS Seconds `json:"encode_begin_ts"`
	EncodeEndTS   Seconds `json:"encode_end_ts"`
	Data          string  `json:"data"`
}

// NewRecord builds a Record from a frame.
func NewRecord(f *frame.Frame) Record {
	online := 0
	if f.Online {
		online = 1
	}
	return Record{
		Size:          len(f.Data),
		Width:         f.Width,
		Height:        f.Height,
		Format:        uint32(f.Format),
		Stride:        f.Stride,
		Online:        online,
		GrabTS:        Seconds(f.GrabTS),
		EncodeBeginTS: Seconds(f.EncodeBeginTS),
		EncodeEndTS:   Seconds(f.EncodeEndTS),
		Data:          base64.StdEncoding.EncodeToString(f.Data),
	}
}

// Apply decodes the record into dst, reusing dst's payload capacity.
// It fails when the payload length does not match the size field.
func (r *Record) Apply(dst *frame.Frame) error {
	payload, err := base64.StdEncoding.DecodeString(r.Data)
	if err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	if len(payload) != r.Size {
		return fmt.Errorf("payload length %d does not match size %d", len(payload), r.Size)
	}
	dst.SetPayload(payload)
	dst.Width = r.Width
	dst.Height = r.Height
	dst.Format = frame.FourCC(r.Format)
	dst.Stride = r.Stride
	dst.Online = r.Online != 0
	dst.GrabTS = float64(r.GrabTS)
	dst.EncodeBeginTS = float64(r.EncodeBeginTS)
	dst.EncodeEndTS = float64(r.EncodeEndTS)
	return nil
}

// writeRaw writes exactly the frame's used bytes, with no framing and no
// separators between frames.
func writeRaw(w io.Writer, f *frame.Frame) error {
	_, err := w.Write(f.Data)
	return err
}

// writeJSON writes one compact, newline-terminated JSON record.
func writeJSON(w io.Writer, f *frame.Frame) error {
	rec := NewRecord(f)
	line, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	line = append(line, '\n')
	_, err = w.Write(line)
	return err
}
