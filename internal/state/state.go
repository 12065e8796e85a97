// Package state holds the mutable session record of the CDU bridge.
//
// An App value is owned by a single goroutine (see package cdu). Pages read
// it to render and mutate it through the methods below, which keep every
// index and scroll offset inside its valid range.
package state

// Limits of the editable and scrollable regions.
const (
	// MaxScratchpad is the maximum scratchpad length.
	MaxScratchpad = 20
	// MaxDotPosition bounds where a decimal point may be typed: a dot is
	// only accepted while the scratchpad is shorter than this.
	MaxDotPosition = 7
	// PageRows is the number of list entries visible at once.
	PageRows = 6
)

// Point is one waypoint row of a flight plan.
type Point struct {
	Ident   string
	Course  string
	LegTime string
	Wind    string
}

// Flightplan is a parsed flight plan document.
type Flightplan struct {
	File   string
	Dep    string
	Arr    string
	Points []Point
}

// ErrorState is the modal error overlay.
type ErrorState struct {
	Active  bool
	Message string
}

// App is the session state shared by all pages.
type App struct {
	Scratchpad string
	PageIndex  int
	PageCount  int
	Error      ErrorState

	Flightplan       *Flightplan
	FlightplanScroll int

	Files        []string
	FileSelected int
	FileScroll   int

	// ClearUnloadsFlightplan makes acknowledging an error also discard the
	// loaded flight plan.
	ClearUnloadsFlightplan bool
}

// New returns the initial state for a session with pageCount pages.
func New(pageCount int) *App {
	if pageCount < 1 {
		pageCount = 1
	}
	return &App{
		PageCount:              pageCount,
		ClearUnloadsFlightplan: true,
	}
}

// Append adds ch to the scratchpad unless it is full.
func (a *App) Append(ch rune) bool {
	if len(a.Scratchpad) >= MaxScratchpad {
		return false
	}
	a.Scratchpad += string(ch)
	return true
}

// AppendDot adds a decimal point if none is present yet and the
// scratchpad is shorter than MaxDotPosition.
func (a *App) AppendDot() bool {
	for _, c := range a.Scratchpad {
		if c == '.' {
			return false
		}
	}
	if len(a.Scratchpad) >= MaxDotPosition {
		return false
	}
	return a.Append('.')
}

// Backspace drops the last scratchpad character.
func (a *App) Backspace() {
	if n := len(a.Scratchpad); n > 0 {
		a.Scratchpad = a.Scratchpad[:n-1]
	}
}

// ClearScratchpad empties the scratchpad.
func (a *App) ClearScratchpad() {
	a.Scratchpad = ""
}

// SetError activates the error overlay.
func (a *App) SetError(msg string) {
	a.Error = ErrorState{Active: true, Message: msg}
}

// ClearError deactivates the error overlay.
func (a *App) ClearError() {
	a.Error = ErrorState{}
	if a.ClearUnloadsFlightplan {
		a.Unload()
	}
}

// Load installs a parsed flight plan and scrolls to its first point.
func (a *App) Load(fp *Flightplan) {
	a.Flightplan = fp
	a.FlightplanScroll = 0
}

// Unload discards the flight plan and resets the file list cursor.
func (a *App) Unload() {
	a.Flightplan = nil
	a.FlightplanScroll = 0
	a.FileSelected = 0
	a.FileScroll = 0
}

// Loaded reports whether a flight plan is loaded.
func (a *App) Loaded() bool {
	return a.Flightplan != nil
}

// NextPage moves one page right, stopping at the last page.
func (a *App) NextPage() {
	if a.PageIndex < a.PageCount-1 {
		a.PageIndex++
	}
}

// PrevPage moves one page left, stopping at the first page.
func (a *App) PrevPage() {
	if a.PageIndex > 0 {
		a.PageIndex--
	}
}

// MaxScroll is the largest scroll offset that still fills a page of n
// entries.
func MaxScroll(n int) int {
	if n <= PageRows {
		return 0
	}
	return n - PageRows
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ScrollFlightplan moves the waypoint window by delta rows.
func (a *App) ScrollFlightplan(delta int) {
	if a.Flightplan == nil {
		return
	}
	a.FlightplanScroll = clamp(a.FlightplanScroll+delta, 0, MaxScroll(len(a.Flightplan.Points)))
}

// MoveSelection moves the file cursor by delta and scrolls the list so the
// cursor stays visible.
func (a *App) MoveSelection(delta int) {
	if len(a.Files) == 0 {
		return
	}
	a.FileSelected = clamp(a.FileSelected+delta, 0, len(a.Files)-1)
	a.keepSelectionVisible()
}

func (a *App) keepSelectionVisible() {
	if a.FileSelected < a.FileScroll {
		a.FileScroll = a.FileSelected
	}
	if a.FileSelected >= a.FileScroll+PageRows {
		a.FileScroll = a.FileSelected - (PageRows - 1)
	}
	a.FileScroll = clamp(a.FileScroll, 0, MaxScroll(len(a.Files)))
}

// SetFiles replaces the file list and pulls the cursor back into range.
func (a *App) SetFiles(files []string) {
	a.Files = files
	if len(files) == 0 {
		a.FileSelected = 0
		a.FileScroll = 0
		return
	}
	a.FileSelected = clamp(a.FileSelected, 0, len(files)-1)
	a.keepSelectionVisible()
}
