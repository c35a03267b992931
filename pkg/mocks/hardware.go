package mocks

import (
	"sync/atomic"

	"github.com/user/sinkdump/pkg/frame"
	"github.com/user/sinkdump/pkg/ports"
)

// HardwareBackend is a mock implementation of ports.HardwareBackend.
type HardwareBackend struct {
	NameFunc        func() string
	MaxSessionsFunc func() int
	NewSessionFunc  func() (ports.HardwareSession, error)

	// Recorded calls for verification
	NewSessionCalls int

	// Sessions holds every session handed out by the default
	// NewSession implementation.
	Sessions []*HardwareSession
}

func (m *HardwareBackend) Name() string {
	if m.NameFunc != nil {
		return m.NameFunc()
	}
	return "mockhw"
}

func (m *HardwareBackend) MaxSessions() int {
	if m.MaxSessionsFunc != nil {
		return m.MaxSessionsFunc()
	}
	return 4
}

func (m *HardwareBackend) NewSession() (ports.HardwareSession, error) {
	m.NewSessionCalls++
	if m.NewSessionFunc != nil {
		return m.NewSessionFunc()
	}
	session := &HardwareSession{}
	m.Sessions = append(m.Sessions, session)
	return session, nil
}

// Ensure HardwareBackend implements ports.HardwareBackend
var _ ports.HardwareBackend = (*HardwareBackend)(nil)

// HardwareSession is a mock implementation of ports.HardwareSession.
// The call counters are atomic so concurrent compression tests can
// verify them without extra locking.
type HardwareSession struct {
	PrepareLiveFunc func(geo ports.Geometry, quality int) error
	CompressFunc    func(f *frame.Frame) error
	CloseFunc       func() error

	// Recorded calls for verification
	PrepareLiveCalls atomic.Int32
	CompressCalls    atomic.Int32
	CloseCalls       atomic.Int32

	// LastGeometry and LastQuality record the most recent PrepareLive
	// arguments.
	LastGeometry ports.Geometry
	LastQuality  int
}

func (m *HardwareSession) PrepareLive(geo ports.Geometry, quality int) error {
	m.PrepareLiveCalls.Add(1)
	m.LastGeometry = geo
	m.LastQuality = quality
	if m.PrepareLiveFunc != nil {
		return m.PrepareLiveFunc(geo, quality)
	}
	return nil
}

func (m *HardwareSession) Compress(f *frame.Frame) error {
	m.CompressCalls.Add(1)
	if m.CompressFunc != nil {
		return m.CompressFunc(f)
	}
	return nil
}

func (m *HardwareSession) Close() error {
	m.CloseCalls.Add(1)
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Ensure HardwareSession implements ports.HardwareSession
var _ ports.HardwareSession = (*HardwareSession)(nil)
