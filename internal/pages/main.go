package pages

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/muurk/cdubridge/internal/bcd"
	"github.com/muurk/cdubridge/internal/buttons"
	"github.com/muurk/cdubridge/internal/display"
	"github.com/muurk/cdubridge/internal/logging"
	"github.com/muurk/cdubridge/internal/state"
	"github.com/muurk/cdubridge/internal/telemetry"
)

// Line-select keys used by the main page.
const (
	xpdrWriteLine  = 1 // RSK2 commits the scratchpad as squawk code
	deleteFplnLine = 5 // RSK6 unloads the flight plan
)

// MaxSquawk is the highest transponder code accepted from the scratchpad.
const MaxSquawk = 7777

// Placeholders for unavailable readouts.
const (
	noFreq  = "---.---"
	noXPDR  = "0000"
	noSpeed = "---"
)

const msToKnots = 1.94384

// Main shows radio frequencies, transponder, ground speed and track, plus
// the scratchpad.
type Main struct {
	state  *state.App
	writer Writer
}

// NewMain creates the main page. Transponder writes go to w.
func NewMain(s *state.App, w Writer) *Main {
	return &Main{state: s, writer: w}
}

func (p *Main) Name() string { return "main" }

func (p *Main) Render(snap telemetry.Snapshot) []string {
	lines := blank()
	lines[0] = display.Center(display.Cyan.Mark("GNS530 CDU"), display.Cols)

	lines[2] = fmt.Sprintf("c`COM1 g`%s c`/ a`%s", freq(snap, telemetry.ComActive), freq(snap, telemetry.ComStandby))
	lines[4] = fmt.Sprintf("c`NAV1 g`%s c`/ a`%s", freq(snap, telemetry.NavActive), freq(snap, telemetry.NavStandby))
	lines[6] = fmt.Sprintf("c`XPDR g`%s", squawk(snap))
	lines[8] = fmt.Sprintf("c`GS g`%sKT c`TRK g`%s", speed(snap), track(snap))

	if p.state.Loaded() {
		lines[12] = strings.Repeat(" ", display.Cols-12) + display.Cyan.Mark("< DEL FPLN")
	}
	lines[display.Rows-1] = fmt.Sprintf("a`[ w`%s a`]", display.Left(p.state.Scratchpad, state.MaxScratchpad))
	return lines
}

func usable(snap telemetry.Snapshot, name string) (float64, bool) {
	v, ok := snap.Get(name)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func freq(snap telemetry.Snapshot, name string) string {
	v, ok := usable(snap, name)
	if !ok {
		return noFreq
	}
	return fmt.Sprintf("%06.3f", v)
}

func squawk(snap telemetry.Snapshot) string {
	v, ok := usable(snap, telemetry.Transponder)
	if !ok || v < 0 || v > math.MaxUint16 {
		return noXPDR
	}
	return fmt.Sprintf("%04d", bcd.Decode(uint16(v)))
}

func speed(snap telemetry.Snapshot) string {
	v, ok := usable(snap, telemetry.GroundSpeed)
	if !ok {
		return noSpeed
	}
	return display.Right(strconv.Itoa(int(v*msToKnots)), 3)
}

func track(snap telemetry.Snapshot) string {
	v, ok := usable(snap, telemetry.GroundTrack)
	if !ok {
		return noSpeed
	}
	return display.Right(strconv.Itoa(int(v*180/math.Pi)), 3)
}

func (p *Main) HandleButton(ctx context.Context, b buttons.Button) {
	switch b.Kind {
	case buttons.KindClear:
		p.state.ClearScratchpad()
		return
	case buttons.KindBackspace:
		p.state.Backspace()
		return
	case buttons.KindRSK:
		switch b.Line {
		case deleteFplnLine:
			if p.state.Loaded() {
				p.state.Unload()
			}
		case xpdrWriteLine:
			p.writeTransponder(ctx)
		}
	}
}

func (p *Main) writeTransponder(ctx context.Context) {
	code, ok := parseSquawk(p.state.Scratchpad)
	if !ok {
		p.state.SetError(MsgXPDRCode)
		return
	}

	if err := p.writer.Write(ctx, telemetry.Transponder, float64(bcd.Encode(code))); err != nil {
		logging.Warn("Transponder write failed", zap.Int("code", code), zap.Error(err))
		p.state.SetError(MsgXPDRWrite)
		return
	}
	p.state.ClearScratchpad()
}

// parseSquawk accepts a non-empty string of ASCII digits no greater than
// MaxSquawk.
func parseSquawk(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > MaxSquawk {
		return 0, false
	}
	return n, true
}

func (p *Main) HandleKey(ctx context.Context, b buttons.Button) {
	switch b.Kind {
	case buttons.KindDigit, buttons.KindLetter:
		p.state.Append(b.Char)
	case buttons.KindDot:
		p.state.AppendDot()
	case buttons.KindBackspace:
		p.state.Backspace()
	case buttons.KindClear:
		p.state.ClearScratchpad()
	}
}
