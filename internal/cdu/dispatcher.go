package cdu

import (
	"context"

	"go.uber.org/zap"

	"github.com/muurk/cdubridge/internal/buttons"
	"github.com/muurk/cdubridge/internal/logging"
	"github.com/muurk/cdubridge/internal/pages"
	"github.com/muurk/cdubridge/internal/state"
	"github.com/muurk/cdubridge/internal/telemetry"
)

// Dispatcher routes button ids to pages. While the error overlay is active
// the error page receives every button and the ordinary pages none.
type Dispatcher struct {
	state   *state.App
	buttons *buttons.Map
	pages   []pages.Page
	errPage pages.Page
	log     *zap.Logger
}

// NewDispatcher creates a dispatcher over the ordinary pages, in
// left-to-right order, and the error overlay page.
func NewDispatcher(s *state.App, m *buttons.Map, ordinary []pages.Page, errPage pages.Page) *Dispatcher {
	s.PageCount = len(ordinary)
	return &Dispatcher{
		state:   s,
		buttons: m,
		pages:   ordinary,
		errPage: errPage,
		log:     logging.GetLogger(),
	}
}

// Active returns the page currently shown.
func (d *Dispatcher) Active() pages.Page {
	if d.state.Error.Active {
		return d.errPage
	}
	return d.pages[d.state.PageIndex]
}

// Render renders the active page.
func (d *Dispatcher) Render(snap telemetry.Snapshot) []string {
	return d.Active().Render(snap)
}

// Dispatch applies one hardware button press.
func (d *Dispatcher) Dispatch(ctx context.Context, id int) {
	b := d.buttons.Lookup(id)
	before := d.state.Error
	page := d.Active()
	logging.LogButton(id, b.Kind.String(), page.Name())

	switch {
	case d.state.Error.Active:
		// the overlay owns all input; page navigation is suspended
	case b.Kind == buttons.KindLeft:
		d.state.PrevPage()
		return
	case b.Kind == buttons.KindRight:
		d.state.NextPage()
		return
	}

	if b.IsText() {
		page.HandleKey(ctx, b)
	} else {
		page.HandleButton(ctx, b)
	}

	d.logErrorChange(before)
}

func (d *Dispatcher) logErrorChange(before state.ErrorState) {
	after := d.state.Error
	switch {
	case !before.Active && after.Active:
		d.log.Info("Error overlay set", zap.String("message", after.Message))
	case before.Active && !after.Active:
		d.log.Info("Error overlay cleared",
			zap.String("message", before.Message),
			zap.Bool("flightplan_loaded", d.state.Loaded()),
		)
	}
}
