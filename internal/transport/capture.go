package transport

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/cdubridge/internal/display"
	"github.com/muurk/cdubridge/internal/logging"
)

// CapturedFrame is one line of a capture file.
type CapturedFrame struct {
	Timestamp  time.Time       `json:"timestamp"`
	MessageNum int             `json:"message_num"`
	Remote     string          `json:"remote"`
	Direction  string          `json:"direction"`
	PayloadLen int             `json:"payload_length"`
	Payload    json.RawMessage `json:"payload"`
}

// Capture appends sent frames to a JSON Lines file.
type Capture struct {
	mu     sync.Mutex
	remote string
	path   string
	file   *os.File
	enc    *json.Encoder
}

// OpenCapture creates dir if needed and opens a new capture file in it.
func OpenCapture(dir, remote string) (*Capture, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create capture dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("capture-%s.jsonl", time.Now().Format("20060102-150405")))
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open capture file: %w", err)
	}

	logging.Info("Capturing display frames", zap.String("filename", path))
	return &Capture{remote: remote, path: path, file: f, enc: json.NewEncoder(f)}, nil
}

// Path returns the capture file name.
func (c *Capture) Path() string { return c.path }

// Record appends one frame. Failures are logged and otherwise ignored.
func (c *Capture) Record(messageNum int, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec := CapturedFrame{
		Timestamp:  time.Now(),
		MessageNum: messageNum,
		Remote:     c.remote,
		Direction:  "bridge->display",
		PayloadLen: len(payload),
		Payload:    json.RawMessage(payload),
	}
	if err := c.enc.Encode(rec); err != nil {
		logging.Error("Failed to write capture file",
			zap.String("filename", c.path),
			zap.Error(err),
		)
	}
}

// Close closes the capture file.
func (c *Capture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.file.Close()
}

// ReadCapture decodes a capture file. Malformed lines are reported with
// their line number.
func ReadCapture(r io.Reader) ([]CapturedFrame, error) {
	var frames []CapturedFrame
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	line := 0
	for scanner.Scan() {
		line++
		if len(bytes.TrimSpace(scanner.Bytes())) == 0 {
			continue
		}
		var rec CapturedFrame
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return frames, fmt.Errorf("capture line %d: %w", line, err)
		}
		frames = append(frames, rec)
	}
	if err := scanner.Err(); err != nil {
		return frames, fmt.Errorf("read capture: %w", err)
	}
	return frames, nil
}

// Message decodes the captured payload.
func (f CapturedFrame) Message() (display.Message, error) {
	var msg display.Message
	if err := json.Unmarshal(f.Payload, &msg); err != nil {
		return msg, fmt.Errorf("frame %d: %w", f.MessageNum, err)
	}
	return msg, nil
}
