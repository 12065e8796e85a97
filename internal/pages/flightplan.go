package pages

import (
	"context"
	"fmt"

	"github.com/muurk/cdubridge/internal/buttons"
	"github.com/muurk/cdubridge/internal/display"
	"github.com/muurk/cdubridge/internal/state"
	"github.com/muurk/cdubridge/internal/telemetry"
)

// maxFileName is how much of a file name fits beside the cursor.
const maxFileName = 20

// Flightplan lists plan files until one is loaded, then shows its
// waypoints.
type Flightplan struct {
	state  *state.App
	loader Loader
}

// NewFlightplan creates the flight plan page loading documents through l.
func NewFlightplan(s *state.App, l Loader) *Flightplan {
	return &Flightplan{state: s, loader: l}
}

func (p *Flightplan) Name() string { return "flightplan" }

func (p *Flightplan) Render(_ telemetry.Snapshot) []string {
	if p.state.Loaded() {
		return p.renderPlan()
	}
	return p.renderFiles()
}

func (p *Flightplan) renderPlan() []string {
	lines := blank()
	fp := p.state.Flightplan
	lines[0] = display.Center(display.Cyan.Mark(fmt.Sprintf("FLIGHTPLAN %s → %s", orDash(fp.Dep), orDash(fp.Arr))), display.Cols)

	for i := 0; i < state.PageRows; i++ {
		idx := p.state.FlightplanScroll + i
		if idx >= len(fp.Points) {
			break
		}
		pt := fp.Points[idx]
		lines[listRow(i)] = fmt.Sprintf("w`%s g`%s w`%s w`%s",
			display.Left(pt.Ident, 8),
			display.Right(pt.Course, 3),
			display.Right(pt.LegTime, 5),
			display.Right(pt.Wind, 4),
		)
	}
	return lines
}

func orDash(s string) string {
	if s == "" {
		return "---"
	}
	return s
}

func (p *Flightplan) renderFiles() []string {
	lines := blank()
	lines[0] = display.Center(display.Cyan.Mark("FLIGHTPLANS"), display.Cols)

	files := p.state.Files
	if len(files) == 0 {
		lines[6] = display.Center(display.Red.Mark("NO FLIGHTPLANS FOUND"), display.Cols)
		return lines
	}

	for i := 0; i < state.PageRows; i++ {
		idx := p.state.FileScroll + i
		if idx >= len(files) {
			break
		}
		marker := " "
		if idx == p.state.FileSelected {
			marker = ">"
		}
		name := []rune(files[idx])
		if len(name) > maxFileName {
			name = name[:maxFileName]
		}
		lines[listRow(i)] = fmt.Sprintf("w`%s %s", marker, string(name))
	}
	return lines
}

func (p *Flightplan) HandleButton(_ context.Context, b buttons.Button) {
	if p.state.Loaded() {
		switch b.Kind {
		case buttons.KindUp:
			p.state.ScrollFlightplan(-1)
		case buttons.KindDown:
			p.state.ScrollFlightplan(1)
		}
		return
	}

	switch b.Kind {
	case buttons.KindLSK:
		idx := p.state.FileScroll + b.Line
		if idx < len(p.state.Files) {
			p.load(p.state.Files[idx])
		}
	case buttons.KindUp:
		p.state.MoveSelection(-1)
	case buttons.KindDown:
		p.state.MoveSelection(1)
	}
}

func (p *Flightplan) load(name string) {
	fp, err := p.loader.Load(name)
	if err != nil {
		p.state.SetError(MsgNotAllowed)
		p.state.Unload()
		return
	}
	p.state.Load(fp)
}

func (p *Flightplan) HandleKey(context.Context, buttons.Button) {}
