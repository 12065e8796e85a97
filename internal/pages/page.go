// Package pages renders the CDU screens and applies button presses to the
// session state.
//
// There are two ordinary pages, Main and Flightplan, selected by
// state.App.PageIndex, and the Error page, which replaces both while the
// error overlay is active. Render never mutates state; all mutation happens
// in HandleButton and HandleKey.
package pages

import (
	"context"

	"github.com/muurk/cdubridge/internal/buttons"
	"github.com/muurk/cdubridge/internal/display"
	"github.com/muurk/cdubridge/internal/state"
	"github.com/muurk/cdubridge/internal/telemetry"
)

// Error overlay messages.
const (
	MsgXPDRWrite  = "XPDR WRITE ERR"
	MsgXPDRCode   = "XPDR CODE ERR"
	MsgNotAllowed = "NOT ALLOWED"
)

// Page is one CDU screen.
type Page interface {
	// Name identifies the page in logs.
	Name() string
	// Render returns display.Rows markup lines for the current state.
	Render(snap telemetry.Snapshot) []string
	// HandleButton applies navigation and line-select actions.
	HandleButton(ctx context.Context, b buttons.Button)
	// HandleKey applies text entry keys.
	HandleKey(ctx context.Context, b buttons.Button)
}

// Writer sets simulator variables.
type Writer interface {
	Write(ctx context.Context, name string, value float64) error
}

// Loader parses a flight plan document by name.
type Loader interface {
	Load(name string) (*state.Flightplan, error)
}

func blank() []string {
	return make([]string, display.Rows)
}

// listRow is the display row of the i-th visible list entry.
func listRow(i int) int {
	return 2 + 2*i
}
