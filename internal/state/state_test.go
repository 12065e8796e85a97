package state

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
)

func files(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("plan%02d.html", i)
	}
	return out
}

func TestScratchpadLimit(t *testing.T) {
	a := New(2)
	for i := 0; i < 30; i++ {
		a.Append('9')
	}
	if len(a.Scratchpad) != MaxScratchpad {
		t.Errorf("scratchpad length = %d, want %d", len(a.Scratchpad), MaxScratchpad)
	}
	if a.Append('1') {
		t.Error("Append() on a full scratchpad should report false")
	}
}

func TestAppendDot(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		wantOK  bool
		wantPad string
	}{
		{name: "empty", start: "", wantOK: true, wantPad: "."},
		{name: "after digits", start: "118", wantOK: true, wantPad: "118."},
		{name: "second dot", start: "118.5", wantOK: false, wantPad: "118.5"},
		{name: "six chars", start: "123456", wantOK: true, wantPad: "123456."},
		{name: "seven chars", start: "1234567", wantOK: false, wantPad: "1234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(2)
			a.Scratchpad = tt.start
			if got := a.AppendDot(); got != tt.wantOK {
				t.Errorf("AppendDot() = %v, want %v", got, tt.wantOK)
			}
			if a.Scratchpad != tt.wantPad {
				t.Errorf("scratchpad = %q, want %q", a.Scratchpad, tt.wantPad)
			}
		})
	}
}

func TestBackspaceAndClear(t *testing.T) {
	a := New(2)
	a.Backspace()
	if a.Scratchpad != "" {
		t.Errorf("Backspace() on empty scratchpad = %q", a.Scratchpad)
	}
	a.Scratchpad = "ABC"
	a.Backspace()
	if a.Scratchpad != "AB" {
		t.Errorf("scratchpad = %q, want AB", a.Scratchpad)
	}
	a.ClearScratchpad()
	if a.Scratchpad != "" {
		t.Errorf("scratchpad = %q, want empty", a.Scratchpad)
	}
}

func TestPageNavigationClamps(t *testing.T) {
	a := New(2)
	a.PrevPage()
	if a.PageIndex != 0 {
		t.Errorf("PrevPage() at first page moved to %d", a.PageIndex)
	}
	a.NextPage()
	a.NextPage()
	if a.PageIndex != 1 {
		t.Errorf("PageIndex = %d, want 1 (no wraparound)", a.PageIndex)
	}
}

func TestFileSelectionScroll(t *testing.T) {
	a := New(2)
	a.SetFiles(files(8))
	a.FileSelected = 5

	a.MoveSelection(1)
	if a.FileSelected != 6 || a.FileScroll != 1 {
		t.Errorf("after first down: selected=%d scroll=%d, want 6/1", a.FileSelected, a.FileScroll)
	}
	a.MoveSelection(1)
	if a.FileSelected != 7 || a.FileScroll != 2 {
		t.Errorf("after second down: selected=%d scroll=%d, want 7/2", a.FileSelected, a.FileScroll)
	}
	a.MoveSelection(1)
	if a.FileSelected != 7 || a.FileScroll != 2 {
		t.Errorf("down at end: selected=%d scroll=%d, want 7/2", a.FileSelected, a.FileScroll)
	}

	for i := 0; i < 2; i++ {
		a.MoveSelection(-1)
	}
	if a.FileSelected != 5 || a.FileScroll != 2 {
		t.Errorf("after two ups: selected=%d scroll=%d, want 5/2", a.FileSelected, a.FileScroll)
	}
	for i := 0; i < 4; i++ {
		a.MoveSelection(-1)
	}
	if a.FileSelected != 1 || a.FileScroll != 1 {
		t.Errorf("after scrolling up: selected=%d scroll=%d, want 1/1", a.FileSelected, a.FileScroll)
	}
}

func TestScrollBoundsUnderRandomInput(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, n := range []int{0, 1, 5, 6, 7, 20} {
		a := New(2)
		a.SetFiles(files(n))
		a.Load(&Flightplan{Points: make([]Point, n)})

		for i := 0; i < 500; i++ {
			delta := 1
			if rng.Intn(2) == 0 {
				delta = -1
			}
			a.MoveSelection(delta)
			a.ScrollFlightplan(delta)

			if a.FlightplanScroll < 0 || a.FlightplanScroll > MaxScroll(n) {
				t.Fatalf("n=%d: flightplan scroll %d out of [0,%d]", n, a.FlightplanScroll, MaxScroll(n))
			}
			if a.FileScroll < 0 || a.FileScroll > MaxScroll(n) {
				t.Fatalf("n=%d: file scroll %d out of [0,%d]", n, a.FileScroll, MaxScroll(n))
			}
			if n > 0 && (a.FileSelected < a.FileScroll || a.FileSelected > a.FileScroll+PageRows-1) {
				t.Fatalf("n=%d: selection %d not visible at scroll %d", n, a.FileSelected, a.FileScroll)
			}
		}
	}
}

func TestSetFilesShrinks(t *testing.T) {
	a := New(2)
	a.SetFiles(files(20))
	a.MoveSelection(15)
	a.SetFiles(files(3))
	if a.FileSelected != 2 || a.FileScroll != 0 {
		t.Errorf("after shrink: selected=%d scroll=%d, want 2/0", a.FileSelected, a.FileScroll)
	}
	a.SetFiles(nil)
	if a.FileSelected != 0 || a.FileScroll != 0 {
		t.Errorf("after empty: selected=%d scroll=%d", a.FileSelected, a.FileScroll)
	}
}

func TestClearErrorUnloadsFlightplan(t *testing.T) {
	a := New(2)
	a.SetFiles(files(10))
	a.MoveSelection(8)
	a.Load(&Flightplan{Dep: "EDDF", Arr: "EDDM", Points: make([]Point, 10)})
	a.ScrollFlightplan(3)
	a.SetError("XPDR WRITE ERR")

	a.ClearError()
	if a.Error.Active || a.Error.Message != "" {
		t.Errorf("error still set: %+v", a.Error)
	}
	if a.Loaded() {
		t.Error("flight plan should be unloaded")
	}
	if a.FlightplanScroll != 0 || a.FileSelected != 0 || a.FileScroll != 0 {
		t.Errorf("cursor not reset: %d %d %d", a.FlightplanScroll, a.FileSelected, a.FileScroll)
	}
}

func TestClearErrorKeepsFlightplanWhenDisabled(t *testing.T) {
	a := New(2)
	a.ClearUnloadsFlightplan = false
	a.Load(&Flightplan{Dep: "EDDF", Arr: "EDDM"})
	a.SetError("XPDR CODE ERR")
	a.ClearError()
	if !a.Loaded() {
		t.Error("flight plan should survive error acknowledgement")
	}
	if strings.TrimSpace(a.Error.Message) != "" {
		t.Errorf("message = %q", a.Error.Message)
	}
}
