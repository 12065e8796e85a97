package telemetry

import (
	"context"
	"sync"
)

// Static is an in-memory Source. The terminal preview runs on it, and tests
// use it as a scriptable simulator.
type Static struct {
	mu     sync.Mutex
	values map[string]float64
	writes []Written

	// WriteErr, when set, is returned by every Write.
	WriteErr error
}

// Written records one Write call.
type Written struct {
	Name  string
	Value float64
}

// NewStatic creates a source holding values.
func NewStatic(values map[string]float64) *Static {
	s := &Static{values: make(map[string]float64, len(values))}
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

// DemoValues is a plausible cockpit state for the preview.
func DemoValues() map[string]float64 {
	return map[string]float64{
		ComActive:   118.700,
		ComStandby:  121.500,
		NavActive:   110.300,
		NavStandby:  113.900,
		Transponder: 0x7000,
		GroundSpeed: 61.7,   // m/s, ~120 kt
		GroundTrack: 1.5708, // rad, 90 deg
	}
}

// ReadAll implements Source.
func (s *Static) ReadAll(ctx context.Context) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := make(Snapshot, len(s.values))
	for k, v := range s.values {
		snap[k] = v
	}
	return snap
}

// Write implements Source.
func (s *Static) Write(ctx context.Context, name string, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.WriteErr != nil {
		return &Error{Op: "write", Field: name, Err: s.WriteErr}
	}
	s.values[name] = value
	s.writes = append(s.writes, Written{Name: name, Value: value})
	return nil
}

// Set changes a value.
func (s *Static) Set(name string, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
}

// Unset makes a value unavailable.
func (s *Static) Unset(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, name)
}

// Writes returns every successful Write so far.
func (s *Static) Writes() []Written {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Written(nil), s.writes...)
}
