package display

import "strings"

// Mark prefixes s with a color marker.
func (c Color) Mark(s string) string {
	return string(c) + string(Separator) + s
}

// Visible returns the number of characters of line that reach the screen.
func Visible(line string) int {
	return visibleLen([]rune(line))
}

// Strip removes all color markers from line.
func Strip(line string) string {
	runes := []rune(line)
	var b strings.Builder
	for i := 0; i < len(runes); {
		if isMarker(runes, i) {
			i += 2
			continue
		}
		b.WriteRune(runes[i])
		i++
	}
	return b.String()
}

// Center pads line on both sides to width visible characters. Extra padding
// goes to the right. Lines already at or above width are returned unchanged.
func Center(line string, width int) string {
	pad := width - Visible(line)
	if pad <= 0 {
		return line
	}
	left := pad / 2
	return strings.Repeat(" ", left) + line + strings.Repeat(" ", pad-left)
}

// PadRight pads line with spaces up to width visible characters.
func PadRight(line string, width int) string {
	pad := width - Visible(line)
	if pad <= 0 {
		return line
	}
	return line + strings.Repeat(" ", pad)
}

// Left left-justifies plain text s in a field of width n, truncating.
func Left(s string, n int) string {
	r := []rune(s)
	if len(r) >= n {
		return string(r[:n])
	}
	return s + strings.Repeat(" ", n-len(r))
}

// Right right-justifies plain text s in a field of width n, truncating.
func Right(s string, n int) string {
	r := []rune(s)
	if len(r) >= n {
		return string(r[:n])
	}
	return strings.Repeat(" ", n-len(r)) + s
}
