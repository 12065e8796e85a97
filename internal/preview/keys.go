package preview

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/cdubridge/internal/buttons"
)

// keyMap defines the keyboard layout of the emulator
type keyMap struct {
	LSK       key.Binding
	RSK       key.Binding
	Pages     key.Binding
	Scroll    key.Binding
	Clear     key.Binding
	Backspace key.Binding
	Quit      key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.LSK, k.RSK, k.Pages, k.Scroll, k.Clear, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.LSK, k.RSK, k.Pages, k.Scroll},
		{k.Clear, k.Backspace, k.Quit},
	}
}

func newKeyMap() keyMap {
	return keyMap{
		LSK: key.NewBinding(
			key.WithKeys("f1", "f2", "f3", "f4", "f5", "f6"),
			key.WithHelp("f1-f6", "left line keys"),
		),
		RSK: key.NewBinding(
			key.WithKeys("f7", "f8", "f9", "f10", "f11", "f12"),
			key.WithHelp("f7-f12", "right line keys"),
		),
		Pages: key.NewBinding(
			key.WithKeys("left", "right"),
			key.WithHelp("←/→", "page"),
		),
		Scroll: key.NewBinding(
			key.WithKeys("up", "down"),
			key.WithHelp("↑/↓", "scroll"),
		),
		Clear: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("del", "clr"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("bksp", "erase"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// buttonFor translates a key press into the hardware id the CDU would
// report for the corresponding button.
func buttonFor(m *buttons.Map, msg tea.KeyMsg) (int, bool) {
	s := msg.String()

	if n, ok := functionKey(s); ok {
		kind, line := buttons.KindLSK, n-1
		if n > buttons.LineKeys {
			kind, line = buttons.KindRSK, n-1-buttons.LineKeys
		}
		return found(m.Find(kind, line))
	}

	switch s {
	case "left":
		return found(m.Find(buttons.KindLeft, 0))
	case "right":
		return found(m.Find(buttons.KindRight, 0))
	case "up":
		return found(m.Find(buttons.KindUp, 0))
	case "down":
		return found(m.Find(buttons.KindDown, 0))
	case "backspace":
		return found(m.Find(buttons.KindBackspace, 0))
	case "delete":
		return found(m.Find(buttons.KindClear, 0))
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		return found(m.FindChar(unicode.ToUpper(msg.Runes[0])))
	}
	return 0, false
}

// functionKey parses "f1".."f12".
func functionKey(s string) (int, bool) {
	if !strings.HasPrefix(s, "f") {
		return 0, false
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 1 || n > 2*buttons.LineKeys {
		return 0, false
	}
	return n, true
}

func found(b buttons.Button, ok bool) (int, bool) {
	return b.ID, ok
}
