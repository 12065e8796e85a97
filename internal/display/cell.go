package display

import (
	"encoding/json"
	"fmt"
)

// Display geometry of the CDU screen.
const (
	Rows = 14
	Cols = 24
)

// Color is the single-letter color code understood by the display device.
type Color rune

// Known color codes. The device may accept others; they are passed through.
const (
	Amber   Color = 'a'
	Cyan    Color = 'c'
	Grey    Color = 'e'
	Green   Color = 'g'
	Khaki   Color = 'k'
	Magenta Color = 'm'
	Red     Color = 'r'
	White   Color = 'w'
	Yellow  Color = 'y'
)

// DefaultColor applies to characters before the first marker of a line.
const DefaultColor = White

// Known reports whether c is one of the named color codes.
func (c Color) Known() bool {
	switch c {
	case Amber, Cyan, Grey, Green, Khaki, Magenta, Red, White, Yellow:
		return true
	}
	return false
}

func (c Color) String() string {
	return string(c)
}

// Cell is one character position on the display.
type Cell struct {
	Char      rune
	Color     Color
	Attribute int
}

// MarshalJSON encodes the cell as the [character, color, attribute] triple
// the display expects.
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{string(c.Char), string(c.Color), c.Attribute})
}

// UnmarshalJSON decodes a [character, color, attribute] triple.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var triple []json.RawMessage
	if err := json.Unmarshal(data, &triple); err != nil {
		return err
	}
	if len(triple) != 3 {
		return fmt.Errorf("cell: expected 3 elements, got %d", len(triple))
	}

	var ch, color string
	if err := json.Unmarshal(triple[0], &ch); err != nil {
		return fmt.Errorf("cell character: %w", err)
	}
	if err := json.Unmarshal(triple[1], &color); err != nil {
		return fmt.Errorf("cell color: %w", err)
	}
	if err := json.Unmarshal(triple[2], &c.Attribute); err != nil {
		return fmt.Errorf("cell attribute: %w", err)
	}

	chars, colors := []rune(ch), []rune(color)
	if len(chars) != 1 || len(colors) != 1 {
		return fmt.Errorf("cell: character and color must be single glyphs, got %q %q", ch, color)
	}
	c.Char = chars[0]
	c.Color = Color(colors[0])
	return nil
}

// Frame is a full screen of Rows*Cols cells in row-major order.
type Frame []Cell

// Row returns the cells of row r.
func (f Frame) Row(r int) []Cell {
	return f[r*Cols : (r+1)*Cols]
}

// Text returns the characters of row r without color information.
func (f Frame) Text(r int) string {
	row := f.Row(r)
	out := make([]rune, len(row))
	for i, c := range row {
		out[i] = c.Char
	}
	return string(out)
}

// Message is the wire envelope sent to the display surface.
type Message struct {
	Target string `json:"Target"`
	Data   Frame  `json:"Data"`
}
