// Package display models the CDU screen and turns page text into frames.
//
// The screen is a fixed grid of Rows by Cols cells. Pages produce one string
// per row, optionally carrying color markers: a color letter followed by a
// backtick switches the color of every following character on that line.
//
//	"COM1 g`118.700w` / 121.500"
//
// EncodeLine expands one such line into exactly Cols cells, padding with
// spaces and truncating anything past the edge. Markers take no screen
// space. EncodeFrame stacks Rows lines into a Frame, and Message wraps a
// frame in the JSON envelope the display surface expects.
//
// The markup helpers (Center, PadRight, Left, Right) measure only visible
// characters, so marked-up text lines up the same as plain text.
package display
