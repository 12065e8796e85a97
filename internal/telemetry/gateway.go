package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/cdubridge/internal/logging"
)

// DefaultTimeout bounds a single gateway request. It is well below the
// render interval so a stalled gateway costs at most a frame or two.
const DefaultTimeout = 80 * time.Millisecond

// Gateway talks to a simulator variable gateway over HTTP.
//
// Read:  GET  {base}/simvars?name=A&name=B  ->  {"A": 118.0, "B": null}
// Write: PUT  {base}/simvars/{name}  body {"value": 4608}
//
// Non-numeric and null values are treated as unavailable.
type Gateway struct {
	BaseURL    string
	Fields     []string
	HTTPClient *http.Client
}

// NewGateway creates a gateway client reading the given fields.
func NewGateway(baseURL string, fields []string, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Gateway{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Fields:     fields,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// ReadAll implements Source.
func (g *Gateway) ReadAll(ctx context.Context) Snapshot {
	snap := make(Snapshot, len(g.Fields))

	values, err := g.fetch(ctx)
	if err != nil {
		logging.Debug("Telemetry read failed", zap.Error(err))
		return snap
	}

	for _, name := range g.Fields {
		raw, ok := values[name]
		if !ok {
			continue
		}
		// null decodes without error and leaves v nil
		var v *float64
		if err := json.Unmarshal(raw, &v); err != nil || v == nil {
			logging.Debug("Telemetry field unavailable",
				zap.String("field", name),
				zap.String("raw", string(raw)),
			)
			continue
		}
		snap[name] = *v
	}
	return snap
}

func (g *Gateway) fetch(ctx context.Context) (map[string]json.RawMessage, error) {
	q := url.Values{}
	for _, name := range g.Fields {
		q.Add("name", name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"/simvars?"+q.Encode(), nil)
	if err != nil {
		return nil, &Error{Op: "read", Err: err}
	}

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return nil, &Error{Op: "read", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Op: "read", StatusCode: resp.StatusCode, Err: statusErr(resp.StatusCode)}
	}

	var values map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&values); err != nil {
		return nil, &Error{Op: "read", Err: fmt.Errorf("decode response: %w", err)}
	}
	return values, nil
}

// Write implements Source.
func (g *Gateway) Write(ctx context.Context, name string, value float64) error {
	body, err := json.Marshal(map[string]float64{"value": value})
	if err != nil {
		return &Error{Op: "write", Field: name, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		g.BaseURL+"/simvars/"+url.PathEscape(name), bytes.NewReader(body))
	if err != nil {
		return &Error{Op: "write", Field: name, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return &Error{Op: "write", Field: name, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Op: "write", Field: name, StatusCode: resp.StatusCode, Err: statusErr(resp.StatusCode)}
	}

	logging.Info("Simulator variable written",
		zap.String("field", name),
		zap.Float64("value", value),
	)
	return nil
}

// statusErr maps "no such variable" and "simulator not running" responses
// to ErrUnavailable.
func statusErr(code int) error {
	switch code {
	case http.StatusNotFound, http.StatusServiceUnavailable:
		return ErrUnavailable
	}
	return nil
}
