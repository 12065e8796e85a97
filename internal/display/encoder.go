package display

import (
	"strings"
	"unicode"
)

// Separator follows a color letter to form a color marker, e.g. "g`118.000".
const Separator = '`'

// isMarker reports whether runes[i] starts a color marker.
func isMarker(runes []rune, i int) bool {
	return i+1 < len(runes) && runes[i+1] == Separator
}

// visibleLen counts characters that are not part of a color marker.
func visibleLen(runes []rune) int {
	n := 0
	for i := 0; i < len(runes); {
		if isMarker(runes, i) {
			i += 2
			continue
		}
		n++
		i++
	}
	return n
}

// EncodeLine converts one markup line into exactly Cols cells.
//
// Short lines are padded with unmarked spaces before colors are applied, so
// the padding takes whichever color was active last. Long lines are cut at
// Cols. Color letters are lower-cased and otherwise passed through untouched.
func EncodeLine(line string, def Color) []Cell {
	runes := []rune(line)
	if n := visibleLen(runes); n < Cols {
		runes = append(runes, []rune(strings.Repeat(" ", Cols-n))...)
	}

	cells := make([]Cell, 0, Cols)
	current := def
	for i := 0; i < len(runes); {
		if isMarker(runes, i) {
			current = Color(unicode.ToLower(runes[i]))
			i += 2
			continue
		}
		cells = append(cells, Cell{Char: runes[i], Color: current})
		i++
	}

	if len(cells) > Cols {
		cells = cells[:Cols]
	}
	return cells
}

// EncodeFrame encodes up to Rows lines into a full frame. Missing lines are
// blank; extra lines are ignored.
func EncodeFrame(lines []string, def Color) Frame {
	frame := make(Frame, 0, Rows*Cols)
	for r := 0; r < Rows; r++ {
		line := ""
		if r < len(lines) {
			line = lines[r]
		}
		frame = append(frame, EncodeLine(line, def)...)
	}
	return frame
}
