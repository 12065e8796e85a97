package preview

import (
	"errors"
	"os"

	"golang.org/x/term"
)

// ErrNotTerminal is returned when stdout cannot host the emulator.
var ErrNotTerminal = errors.New("preview needs an interactive terminal")

// Minimum terminal size for the bezel, status line and help
const (
	MinWidth  = 30
	MinHeight = 20
)

// CheckTerminal verifies that stdout is a terminal large enough for the
// emulator.
func CheckTerminal() error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}
	w, h, err := term.GetSize(fd)
	if err != nil {
		return err
	}
	if w < MinWidth || h < MinHeight {
		return errors.New("terminal too small for preview")
	}
	return nil
}
