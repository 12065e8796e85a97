// Package telemetry reads and writes simulator variables.
//
// A Source hands out Snapshots: maps from variable name to numeric value.
// Variables that could not be read are simply absent, so renderers fall back
// to placeholders instead of failing. Writes report errors so callers can
// surface them.
package telemetry

import (
	"context"
	"errors"
	"fmt"
)

// Simulator variables shown on the CDU.
const (
	ComActive   = "COM_ACTIVE_FREQUENCY:1"
	ComStandby  = "COM_STANDBY_FREQUENCY:1"
	NavActive   = "NAV_ACTIVE_FREQUENCY:1"
	NavStandby  = "NAV_STANDBY_FREQUENCY:1"
	Transponder = "TRANSPONDER CODE:1"
	GroundSpeed = "GPS_GROUND_SPEED"
	GroundTrack = "GPS_GROUND_MAGNETIC_TRACK"
)

// Fields lists every variable the bridge reads.
var Fields = []string{
	ComActive, ComStandby,
	NavActive, NavStandby,
	Transponder,
	GroundSpeed, GroundTrack,
}

// ErrUnavailable reports that a variable has no current value.
var ErrUnavailable = errors.New("telemetry: value unavailable")

// Snapshot is one read of all variables. Missing keys mean unavailable.
type Snapshot map[string]float64

// Get returns the value of name and whether it was available.
func (s Snapshot) Get(name string) (float64, bool) {
	v, ok := s[name]
	return v, ok
}

// Source is the simulator side of the bridge.
type Source interface {
	// ReadAll reads every known variable. It does not fail; unreadable
	// variables are left out of the snapshot.
	ReadAll(ctx context.Context) Snapshot
	// Write sets a variable in the simulator.
	Write(ctx context.Context, name string, value float64) error
}

// Error describes a failed gateway operation.
type Error struct {
	Op         string // "read" or "write"
	Field      string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("telemetry %s", e.Op)
	if e.Field != "" {
		msg += fmt.Sprintf(" %q", e.Field)
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}
