package cdu

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/muurk/cdubridge/internal/buttons"
	"github.com/muurk/cdubridge/internal/display"
	"github.com/muurk/cdubridge/internal/logging"
	"github.com/muurk/cdubridge/internal/pages"
	"github.com/muurk/cdubridge/internal/state"
	"github.com/muurk/cdubridge/internal/telemetry"
)

// DefaultRenderInterval is how often a frame is sent to the display.
const DefaultRenderInterval = 100 * time.Millisecond

// Transport delivers frames to the display surface.
type Transport interface {
	Send(ctx context.Context, frame display.Frame) error
}

// Options configures a Session.
type Options struct {
	Buttons   *buttons.Map
	Telemetry telemetry.Source
	Plans     pages.Loader
	Transport Transport

	// Events carries raw hardware button ids.
	Events <-chan int
	// Listings carries fresh flight plan file lists. Optional.
	Listings <-chan []string
	// Files is the file list at session start.
	Files []string

	RenderInterval time.Duration
	DefaultColor   display.Color

	// KeepFlightplanOnClear stops error acknowledgement from unloading the
	// flight plan.
	KeepFlightplanOnClear bool
}

// Session owns the state of one display session. Run is the only goroutine
// that touches that state: button presses, file list updates, telemetry
// snapshots and render ticks are all serialized through its select loop.
// Telemetry is read on a separate goroutine so a slow simulator never holds
// up button handling.
type Session struct {
	ID string

	state      *state.App
	dispatcher *Dispatcher
	telemetry  telemetry.Source
	transport  Transport
	events     <-chan int
	listings   <-chan []string
	interval   time.Duration
	color      display.Color
	log        *zap.Logger
	frames     int

	// latest snapshot delivered by the poller
	snap telemetry.Snapshot
}

// NewSession wires the pages of a session.
func NewSession(opts Options) *Session {
	s := state.New(2)
	s.ClearUnloadsFlightplan = !opts.KeepFlightplanOnClear
	s.SetFiles(opts.Files)

	ordinary := []pages.Page{
		pages.NewMain(s, opts.Telemetry),
		pages.NewFlightplan(s, opts.Plans),
	}

	interval := opts.RenderInterval
	if interval <= 0 {
		interval = DefaultRenderInterval
	}
	color := opts.DefaultColor
	if color == 0 {
		color = display.DefaultColor
	}

	id := uuid.NewString()
	log := logging.With(zap.String("session", id))
	dispatcher := NewDispatcher(s, opts.Buttons, ordinary, pages.NewError(s))
	dispatcher.log = log

	return &Session{
		ID:         id,
		state:      s,
		dispatcher: dispatcher,
		telemetry:  opts.Telemetry,
		transport:  opts.Transport,
		events:     opts.Events,
		listings:   opts.Listings,
		interval:   interval,
		color:      color,
		log:        log,
	}
}

// Run renders and sends a frame every render interval and applies button
// presses as they arrive, until ctx is done or a frame cannot be sent.
func (s *Session) Run(ctx context.Context) error {
	s.log.Info("Session started", zap.Duration("render_interval", s.interval))
	defer func() {
		s.log.Info("Session ended", zap.Int("frames_sent", s.frames))
	}()

	pollCtx, stopPoll := context.WithCancel(ctx)
	snapshots := make(chan telemetry.Snapshot, 1)
	polled := make(chan struct{})
	go func() {
		defer close(polled)
		s.poll(pollCtx, snapshots)
	}()
	defer func() {
		stopPoll()
		<-polled
	}()

	if err := s.tick(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	events, listings := s.events, s.listings
	for {
		select {
		case <-ctx.Done():
			return nil

		case id, ok := <-events:
			if !ok {
				s.log.Warn("Button source closed")
				events = nil
				continue
			}
			s.dispatcher.Dispatch(ctx, id)

		case names, ok := <-listings:
			if !ok {
				listings = nil
				continue
			}
			s.state.SetFiles(names)
			s.log.Debug("Flight plan list updated", zap.Int("files", len(names)))

		case snap := <-snapshots:
			s.snap = snap

		case <-ticker.C:
			if err := s.tick(ctx); err != nil {
				return err
			}
		}
	}
}

// poll reads telemetry once per render interval and hands each snapshot to
// Run. out holds at most one snapshot; one Run has not taken yet is replaced.
func (s *Session) poll(ctx context.Context, out chan telemetry.Snapshot) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		snap := s.telemetry.ReadAll(ctx)
		if ctx.Err() != nil {
			return
		}
		select {
		case <-out:
		default:
		}
		out <- snap

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Session) tick(ctx context.Context) error {
	frame := display.EncodeFrame(s.dispatcher.Render(s.snap), s.color)

	if err := s.transport.Send(ctx, frame); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		s.log.Error("Frame send failed", zap.Error(err))
		return fmt.Errorf("send frame: %w", err)
	}
	s.frames++
	return nil
}
