package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/cdubridge/internal/display"
	"github.com/muurk/cdubridge/internal/logging"
)

const (
	// DefaultURL is the display endpoint of the captain-side CDU.
	DefaultURL = "ws://localhost:8320/winwing/cdu-captain"

	// DefaultTarget is the destination identifier for the display surface.
	DefaultTarget = "Display"

	// Time allowed to write a frame to the peer
	writeWait = 2 * time.Second

	// Time allowed for a single dial attempt
	handshakeTimeout = 5 * time.Second

	// Maximum message size accepted from the peer
	maxMessageSize = 8192
)

// ErrClosed is returned by Send once the connection has gone away.
var ErrClosed = errors.New("display connection closed")

// Options configures Dial.
type Options struct {
	// Target tags every message. Defaults to DefaultTarget.
	Target string

	// DialTimeout bounds the total time spent retrying the connection.
	// Zero retries until ctx is done.
	DialTimeout time.Duration

	// CaptureDir enables frame capture when non-empty.
	CaptureDir string

	// Dialer overrides websocket.DefaultDialer.
	Dialer *websocket.Dialer
}

// Conn is a display connection. Send may be called from one goroutine at a
// time; Close may be called from any goroutine.
type Conn struct {
	url    string
	target string
	ws     *websocket.Conn

	mu      sync.Mutex
	sent    int
	capture *Capture

	closed    chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// Dial connects to the display at url.
func Dial(ctx context.Context, url string, opts Options) (*Conn, error) {
	dialer := opts.Dialer
	if dialer == nil {
		d := *websocket.DefaultDialer
		d.HandshakeTimeout = handshakeTimeout
		dialer = &d
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 250 * time.Millisecond
	policy.MaxInterval = 5 * time.Second
	policy.MaxElapsedTime = opts.DialTimeout

	var ws *websocket.Conn
	attempt := 0
	op := func() error {
		attempt++
		c, resp, err := dialer.DialContext(ctx, url, nil)
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		if err != nil {
			return err
		}
		ws = c
		return nil
	}
	notify := func(err error, wait time.Duration) {
		logging.Warn("Display dial failed, retrying",
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}

	if err := backoff.RetryNotify(op, backoff.WithContext(policy, ctx), notify); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// The retry also stops once the context deadline falls before the next attempt.
		if _, ok := ctx.Deadline(); ok && !budgetSpent(policy) {
			return nil, fmt.Errorf("dial %s: %w: %w", url, context.DeadlineExceeded, err)
		}
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	target := opts.Target
	if target == "" {
		target = DefaultTarget
	}

	c := &Conn{
		url:    url,
		target: target,
		ws:     ws,
		closed: make(chan struct{}),
	}

	if opts.CaptureDir != "" {
		capture, err := OpenCapture(opts.CaptureDir, url)
		if err != nil {
			_ = ws.Close()
			return nil, err
		}
		c.capture = capture
	}

	logging.LogConnection(url, "display_connected")
	go c.readLoop()
	return c, nil
}

func budgetSpent(policy *backoff.ExponentialBackOff) bool {
	return policy.MaxElapsedTime != 0 && policy.GetElapsedTime() >= policy.MaxElapsedTime
}

// readLoop drains the peer so control frames are processed, and marks the
// connection closed when reading fails.
func (c *Conn) readLoop() {
	c.ws.SetReadLimit(maxMessageSize)
	for {
		kind, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.LogConnection(c.url, "closed_by_display")
			} else {
				logging.Debug("Display read ended", zap.String("url", c.url), zap.Error(err))
			}
			c.markClosed(err)
			return
		}
		logging.Debug("Ignoring message from display",
			zap.String("url", c.url),
			zap.Int("type", kind),
			zap.Int("length", len(data)),
		)
	}
}

func (c *Conn) markClosed(err error) {
	c.closeOnce.Do(func() {
		c.closeErr = err
		close(c.closed)
	})
}

// Done is closed once the connection is no longer usable.
func (c *Conn) Done() <-chan struct{} {
	return c.closed
}

// Send writes one frame.
func (c *Conn) Send(ctx context.Context, frame display.Frame) error {
	select {
	case <-c.closed:
		return ErrClosed
	default:
	}

	payload, err := json.Marshal(display.Message{Target: c.target, Data: frame})
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}

	deadline := time.Now().Add(writeWait)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ws.SetWriteDeadline(deadline); err != nil {
		c.markClosed(err)
		return fmt.Errorf("%w: %v", ErrClosed, err)
	}
	if err := c.ws.WriteMessage(websocket.TextMessage, payload); err != nil {
		c.markClosed(err)
		return fmt.Errorf("%w: %v", ErrClosed, err)
	}

	c.sent++
	logging.LogFrameSent(c.target, len(frame), payload)
	if c.capture != nil {
		c.capture.Record(c.sent, payload)
	}
	return nil
}

// Close sends a close frame and releases the connection.
func (c *Conn) Close() error {
	c.mu.Lock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	c.mu.Unlock()

	c.markClosed(ErrClosed)
	err := c.ws.Close()
	if c.capture != nil {
		_ = c.capture.Close()
	}
	logging.LogConnection(c.url, "display_disconnected")
	return err
}
