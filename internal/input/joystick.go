// Package input turns hardware button presses into raw button ids.
package input

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/muurk/cdubridge/internal/logging"
)

// DefaultDevice is the first Linux joystick device.
const DefaultDevice = "/dev/input/js0"

// Linux joystick event layout (struct js_event).
const (
	eventSize = 8

	typeButton = 0x01
	typeAxis   = 0x02
	typeInit   = 0x80
)

// Event is one decoded joystick event.
type Event struct {
	Time   uint32 // ms
	Value  int16
	Type   uint8
	Number uint8
}

// Pressed reports whether the event is a real button-down, not the
// synthetic state burst the kernel sends on open.
func (e Event) Pressed() bool {
	return e.Type == typeButton && e.Value == 1
}

func decodeEvent(b []byte) Event {
	return Event{
		Time:   binary.LittleEndian.Uint32(b[0:4]),
		Value:  int16(binary.LittleEndian.Uint16(b[4:6])),
		Type:   b[6],
		Number: b[7],
	}
}

// Joystick reads button-down events from a joystick device.
type Joystick struct {
	r    io.ReadCloser
	name string
}

// OpenJoystick opens a joystick device such as /dev/input/js0.
func OpenJoystick(path string) (*Joystick, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open joystick: %w", err)
	}
	logging.Info("Joystick opened", zap.String("device", path))
	return &Joystick{r: f, name: path}, nil
}

// NewJoystick reads events from r.
func NewJoystick(r io.ReadCloser, name string) *Joystick {
	return &Joystick{r: r, name: name}
}

// Run sends the button number of every press on out until ctx is done or
// the device fails. The device is closed when Run returns.
func (j *Joystick) Run(ctx context.Context, out chan<- int) error {
	stop := context.AfterFunc(ctx, func() { _ = j.r.Close() })
	defer func() {
		if stop() {
			_ = j.r.Close()
		}
	}()

	buf := make([]byte, eventSize)
	for {
		if _, err := io.ReadFull(j.r, buf); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return fmt.Errorf("joystick %s disconnected: %w", j.name, err)
			}
			return fmt.Errorf("read joystick %s: %w", j.name, err)
		}

		ev := decodeEvent(buf)
		if ev.Type&typeInit != 0 || !ev.Pressed() {
			continue
		}

		select {
		case out <- int(ev.Number):
		case <-ctx.Done():
			return nil
		}
	}
}
