// Package mocks provides mock implementations for testing.
package mocks

import (
	"time"

	"github.com/user/sinkdump/pkg/frame"
	"github.com/user/sinkdump/pkg/ports"
)

// FrameSource is a mock implementation of ports.FrameSource.
type FrameSource struct {
	GetFunc   func(dst *frame.Frame, timeout time.Duration) error
	CloseFunc func() error

	// Recorded calls for verification
	GetCalls    int
	CloseCalled bool
}

func (m *FrameSource) Get(dst *frame.Frame, timeout time.Duration) error {
	m.GetCalls++
	if m.GetFunc != nil {
		return m.GetFunc(dst, timeout)
	}
	return ports.ErrSourceTimeout
}

func (m *FrameSource) Close() error {
	m.CloseCalled = true
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Ensure FrameSource implements ports.FrameSource
var _ ports.FrameSource = (*FrameSource)(nil)
