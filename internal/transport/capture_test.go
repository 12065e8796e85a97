package transport

import (
	"strings"
	"testing"

	"github.com/muurk/cdubridge/internal/display"
)

func TestReadCapture(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantErr   bool
	}{
		{
			name: "two frames and a blank line",
			input: `{"message_num":1,"payload":{"Target":"Display","Data":[["A","g",0]]}}

{"message_num":2,"payload":{"Target":"Display","Data":[["B","r",0]]}}
`,
			wantCount: 2,
		},
		{
			name:      "empty file",
			input:     "",
			wantCount: 0,
		},
		{
			name:      "truncated line",
			input:     "{\"message_num\":1,\"payload\":{\"Target\":\"Display\",\"Data\":[]}}\n{\"message_num\":",
			wantCount: 1,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames, err := ReadCapture(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadCapture() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(frames) != tt.wantCount {
				t.Errorf("ReadCapture() returned %d frames, want %d", len(frames), tt.wantCount)
			}
		})
	}
}

func TestCapturedFrameMessage(t *testing.T) {
	frames, err := ReadCapture(strings.NewReader(`{"message_num":7,"payload":{"Target":"Display","Data":[["X","m",0]]}}`))
	if err != nil {
		t.Fatal(err)
	}
	msg, err := frames[0].Message()
	if err != nil {
		t.Fatalf("Message() error = %v", err)
	}
	if msg.Target != "Display" || len(msg.Data) != 1 {
		t.Fatalf("Message() = %+v", msg)
	}
	if msg.Data[0].Char != 'X' || msg.Data[0].Color != display.Magenta {
		t.Errorf("cell = %+v", msg.Data[0])
	}
}
