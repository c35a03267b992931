// Package replaysource replays a JSON Lines dump file as a FrameSource,
// turning a previously recorded sink back into frames.
package replaysource

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/user/sinkdump/pkg/dump"
	"github.com/user/sinkdump/pkg/frame"
	"github.com/user/sinkdump/pkg/ports"
)

// maxRecordSize bounds a single dump record. Base64 of a raw 4K RGB
// frame fits well within this.
const maxRecordSize = 64 * 1024 * 1024

// Source reads frames back from a JSON Lines dump.
type Source struct {
	file    *os.File
	scanner *bufio.Scanner
	line    int
}

// Open opens a dump file for replay.
func Open(path string) (*Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dump: %w", err)
	}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordSize)
	return &Source{file: file, scanner: scanner}, nil
}

// Get implements ports.FrameSource. The end of the file surfaces as
// io.EOF, which ends the consumer loop; the caller decides whether that
// is a clean stop.
func (s *Source) Get(dst *frame.Frame, timeout time.Duration) error {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return fmt.Errorf("read dump: %w", err)
		}
		return io.EOF
	}
	s.line++

	var rec dump.Record
	if err := json.Unmarshal(s.scanner.Bytes(), &rec); err != nil {
		return fmt.Errorf("parse record at line %d: %w", s.line, err)
	}
	if err := rec.Apply(dst); err != nil {
		return fmt.Errorf("record at line %d: %w", s.line, err)
	}
	return nil
}

// Close implements ports.FrameSource.
func (s *Source) Close() error {
	return s.file.Close()
}

var _ ports.FrameSource = (*Source)(nil)
