package pages

import (
	"context"

	"github.com/muurk/cdubridge/internal/buttons"
	"github.com/muurk/cdubridge/internal/display"
	"github.com/muurk/cdubridge/internal/state"
	"github.com/muurk/cdubridge/internal/telemetry"
)

// Error is the modal overlay shown while state.App.Error is active. CLR
// acknowledges it; every other button is ignored.
type Error struct {
	state *state.App
}

// NewError creates the error overlay page.
func NewError(s *state.App) *Error {
	return &Error{state: s}
}

func (p *Error) Name() string { return "error" }

func (p *Error) Render(_ telemetry.Snapshot) []string {
	msg := p.state.Error.Message
	if msg == "" {
		msg = "ERROR"
	}
	lines := blank()
	lines[0] = display.Center(display.Red.Mark(msg), display.Cols)
	lines[display.Rows-1] = display.Center("[PRESS CLR]", display.Cols)
	return lines
}

func (p *Error) HandleButton(_ context.Context, b buttons.Button) {
	if b.Kind == buttons.KindClear {
		p.state.ClearError()
	}
}

func (p *Error) HandleKey(ctx context.Context, b buttons.Button) {
	p.HandleButton(ctx, b)
}
