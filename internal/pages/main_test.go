package pages

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/muurk/cdubridge/internal/buttons"
	"github.com/muurk/cdubridge/internal/display"
	"github.com/muurk/cdubridge/internal/state"
	"github.com/muurk/cdubridge/internal/telemetry"
)

func rsk(line int) buttons.Button {
	return buttons.Button{ID: 6 + line, Kind: buttons.KindRSK, Line: line}
}

func lsk(line int) buttons.Button {
	return buttons.Button{ID: line, Kind: buttons.KindLSK, Line: line}
}

func key(ch rune) buttons.Button {
	switch {
	case ch == '.':
		return buttons.Button{Kind: buttons.KindDot, Char: ch}
	case ch >= '0' && ch <= '9':
		return buttons.Button{Kind: buttons.KindDigit, Char: ch}
	default:
		return buttons.Button{Kind: buttons.KindLetter, Char: ch}
	}
}

func kind(k buttons.Kind) buttons.Button {
	return buttons.Button{Kind: k}
}

func visible(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = display.Strip(l)
	}
	return out
}

func TestMainRender(t *testing.T) {
	s := state.New(2)
	s.Scratchpad = "1200"
	p := NewMain(s, telemetry.NewStatic(nil))

	snap := telemetry.Snapshot{
		telemetry.ComActive:   118.7,
		telemetry.ComStandby:  121.5,
		telemetry.NavActive:   110.3,
		telemetry.Transponder: 0x7000,
		telemetry.GroundSpeed: 61.7,
		telemetry.GroundTrack: 3.1416,
	}
	lines := p.Render(snap)
	if len(lines) != display.Rows {
		t.Fatalf("Render() returned %d lines, want %d", len(lines), display.Rows)
	}
	text := visible(lines)

	tests := []struct {
		row  int
		want string
	}{
		{0, "       GNS530 CDU       "},
		{2, "COM1 118.700 / 121.500"},
		{4, "NAV1 110.300 / ---.---"},
		{6, "XPDR 7000"},
		{8, "GS 119KT TRK 180"},
		{12, ""},
		{13, "[ 1200                 ]"},
	}
	for _, tt := range tests {
		if text[tt.row] != tt.want {
			t.Errorf("row %d = %q, want %q", tt.row, text[tt.row], tt.want)
		}
	}

	frame := display.EncodeFrame(lines, display.DefaultColor)
	if c := frame.Row(2)[5]; c.Char != '1' || c.Color != display.Green {
		t.Errorf("COM1 active frequency cell = %+v, want green 1", c)
	}
}

func TestMainRenderPlaceholders(t *testing.T) {
	s := state.New(2)
	s.Load(&state.Flightplan{Dep: "EDDF", Arr: "EDDM"})
	text := visible(NewMain(s, nil).Render(telemetry.Snapshot{}))

	want := map[int]string{
		2:  "COM1 ---.--- / ---.---",
		6:  "XPDR 0000",
		8:  "GS ---KT TRK ---",
		12: "            < DEL FPLN",
	}
	for row, w := range want {
		if text[row] != w {
			t.Errorf("row %d = %q, want %q", row, text[row], w)
		}
	}
}

func TestMainRenderNullTelemetry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"COM_ACTIVE_FREQUENCY:1": null, "COM_STANDBY_FREQUENCY:1": 121.5, "TRANSPONDER CODE:1": null, "GPS_GROUND_SPEED": null, "GPS_GROUND_MAGNETIC_TRACK": null}`))
	}))
	defer server.Close()

	snap := telemetry.NewGateway(server.URL, telemetry.Fields, time.Second).ReadAll(context.Background())
	text := visible(NewMain(state.New(2), telemetry.NewStatic(nil)).Render(snap))

	want := map[int]string{
		2: "COM1 ---.--- / 121.500",
		6: "XPDR 0000",
		8: "GS ---KT TRK ---",
	}
	for row, w := range want {
		if text[row] != w {
			t.Errorf("row %d = %q, want %q", row, text[row], w)
		}
	}
}

func TestMainScratchpadKeys(t *testing.T) {
	s := state.New(2)
	p := NewMain(s, nil)
	ctx := context.Background()

	for _, ch := range "118.5.5" {
		p.HandleKey(ctx, key(ch))
	}
	if s.Scratchpad != "118.55" {
		t.Errorf("scratchpad = %q, want 118.55 (second dot rejected)", s.Scratchpad)
	}

	p.HandleKey(ctx, kind(buttons.KindBackspace))
	if s.Scratchpad != "118.5" {
		t.Errorf("after backspace = %q", s.Scratchpad)
	}
	p.HandleKey(ctx, kind(buttons.KindClear))
	if s.Scratchpad != "" {
		t.Errorf("after clear = %q", s.Scratchpad)
	}

	for i := 0; i < 40; i++ {
		p.HandleKey(ctx, key('A'+rune(i%26)))
		if len(s.Scratchpad) > state.MaxScratchpad {
			t.Fatalf("scratchpad grew to %d", len(s.Scratchpad))
		}
	}

	p.HandleButton(ctx, kind(buttons.KindBackspace))
	if len(s.Scratchpad) != state.MaxScratchpad-1 {
		t.Errorf("HandleButton(backspace) left %d chars", len(s.Scratchpad))
	}
	p.HandleButton(ctx, kind(buttons.KindClear))
	if s.Scratchpad != "" {
		t.Errorf("HandleButton(clear) left %q", s.Scratchpad)
	}
}

func TestMainTransponderWrite(t *testing.T) {
	tests := []struct {
		name      string
		pad       string
		writeErr  error
		wantValue float64
		wantWrite bool
		wantError string
		wantPad   string
	}{
		{name: "vfr", pad: "1200", wantValue: 0x1200, wantWrite: true, wantPad: ""},
		{name: "max", pad: "7777", wantValue: 0x7777, wantWrite: true, wantPad: ""},
		{name: "leading zeros", pad: "0042", wantValue: 0x0042, wantWrite: true, wantPad: ""},
		{name: "out of range", pad: "9999", wantError: MsgXPDRCode, wantPad: "9999"},
		{name: "non numeric", pad: "12A4", wantError: MsgXPDRCode, wantPad: "12A4"},
		{name: "empty", pad: "", wantError: MsgXPDRCode, wantPad: ""},
		{name: "decimal", pad: "12.5", wantError: MsgXPDRCode, wantPad: "12.5"},
		{name: "write fails", pad: "7000", writeErr: errors.New("sim gone"), wantError: MsgXPDRWrite, wantPad: "7000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := state.New(2)
			s.Scratchpad = tt.pad
			sim := telemetry.NewStatic(nil)
			sim.WriteErr = tt.writeErr

			NewMain(s, sim).HandleButton(context.Background(), rsk(xpdrWriteLine))

			writes := sim.Writes()
			if tt.wantWrite {
				if len(writes) != 1 || writes[0].Name != telemetry.Transponder || writes[0].Value != tt.wantValue {
					t.Errorf("writes = %+v, want one transponder write of %v", writes, tt.wantValue)
				}
			} else if len(writes) != 0 {
				t.Errorf("unexpected writes %+v", writes)
			}

			if tt.wantError == "" && s.Error.Active {
				t.Errorf("unexpected error %q", s.Error.Message)
			}
			if tt.wantError != "" && (!s.Error.Active || s.Error.Message != tt.wantError) {
				t.Errorf("error = %+v, want %q", s.Error, tt.wantError)
			}
			if s.Scratchpad != tt.wantPad {
				t.Errorf("scratchpad = %q, want %q", s.Scratchpad, tt.wantPad)
			}
		})
	}
}

func TestMainDeleteFlightplan(t *testing.T) {
	s := state.New(2)
	p := NewMain(s, nil)

	p.HandleButton(context.Background(), rsk(deleteFplnLine))
	if s.Error.Active {
		t.Error("delete without a plan should be a no-op")
	}

	s.Load(&state.Flightplan{Dep: "EDDF", Arr: "EDDM"})
	p.HandleButton(context.Background(), rsk(deleteFplnLine))
	if s.Loaded() {
		t.Error("RSK6 should unload the flight plan")
	}

	// LSK keys do nothing on the main page
	s.Load(&state.Flightplan{})
	p.HandleButton(context.Background(), lsk(deleteFplnLine))
	if !s.Loaded() {
		t.Error("LSK6 should not unload the flight plan")
	}
}

func TestParseSquawk(t *testing.T) {
	for _, in := range []string{" 1200 ", "0", "7777"} {
		if _, ok := parseSquawk(in); !ok {
			t.Errorf("parseSquawk(%q) rejected", in)
		}
	}
	for _, in := range []string{"7778", "-1", "+12", "1 2", "٣"} {
		if _, ok := parseSquawk(in); ok {
			t.Errorf("parseSquawk(%q) accepted", in)
		}
	}
	if !strings.HasPrefix(MsgXPDRCode, "XPDR") {
		t.Error("transponder messages should name the field")
	}
}
