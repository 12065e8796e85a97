// Package buttons maps raw hardware button ids of the CDU to their meaning.
//
// The device reports every key as a small integer. A Map assigns those ids
// to line-select keys, digits, letters, editing keys and the four arrows,
// and Lookup classifies an incoming id into a Button.
package buttons

import (
	"fmt"
	"sort"
)

// Kind is the function of a hardware button.
type Kind int

const (
	KindUnknown Kind = iota
	KindDigit
	KindLetter
	KindDot
	KindBackspace
	KindClear
	KindLeft
	KindRight
	KindUp
	KindDown
	KindLSK
	KindRSK
)

func (k Kind) String() string {
	switch k {
	case KindDigit:
		return "digit"
	case KindLetter:
		return "letter"
	case KindDot:
		return "dot"
	case KindBackspace:
		return "backspace"
	case KindClear:
		return "clear"
	case KindLeft:
		return "left"
	case KindRight:
		return "right"
	case KindUp:
		return "up"
	case KindDown:
		return "down"
	case KindLSK:
		return "lsk"
	case KindRSK:
		return "rsk"
	default:
		return "unknown"
	}
}

// Button is a classified button press.
type Button struct {
	ID   int
	Kind Kind
	// Char is the character entered by digit, letter and dot keys.
	Char rune
	// Line is the 0-based row index of a line-select key.
	Line int
}

// IsText reports whether the button edits text (the scratchpad).
func (b Button) IsText() bool {
	switch b.Kind {
	case KindDigit, KindLetter, KindDot, KindBackspace, KindClear:
		return true
	}
	return false
}

// IsPageNav reports whether the button switches between pages.
func (b Button) IsPageNav() bool {
	return b.Kind == KindLeft || b.Kind == KindRight
}

func (b Button) String() string {
	switch b.Kind {
	case KindDigit, KindLetter, KindDot:
		return fmt.Sprintf("%s(%d %q)", b.Kind, b.ID, b.Char)
	case KindLSK, KindRSK:
		return fmt.Sprintf("%s%d(%d)", b.Kind, b.Line+1, b.ID)
	default:
		return fmt.Sprintf("%s(%d)", b.Kind, b.ID)
	}
}

// LineKeys is the number of line-select keys on each side of the screen.
const LineKeys = 6

// Map assigns hardware ids to button functions.
type Map struct {
	LSK       []int `yaml:"lsk"`
	RSK       []int `yaml:"rsk"`
	Digits    []int `yaml:"digits"` // ids for 0..9
	LetterA   int   `yaml:"letter_a"`
	Dot       int   `yaml:"dot"`
	Backspace int   `yaml:"backspace"`
	Clear     int   `yaml:"clear"`
	Left      int   `yaml:"left"`
	Right     int   `yaml:"right"`
	Up        int   `yaml:"up"`
	Down      int   `yaml:"down"`

	index map[int]Button
}

// DefaultMap returns the id layout of the WinWing CDU.
//
// The stock layout reports DOWN and digit 1 with the same id (32). Down is
// moved to 43, the unused id between digit 0 and letter A.
func DefaultMap() *Map {
	return &Map{
		LSK:       []int{0, 1, 2, 3, 4, 5},
		RSK:       []int{6, 7, 8, 9, 10, 11},
		Digits:    []int{42, 32, 33, 34, 35, 36, 37, 38, 39, 40},
		LetterA:   44,
		Dot:       41,
		Backspace: 73,
		Clear:     74,
		Left:      29,
		Up:        30,
		Right:     31,
		Down:      43,
	}
}

// Compile validates the map and builds its lookup index. It fails on
// duplicate ids and on wrongly sized key groups.
func (m *Map) Compile() error {
	if len(m.LSK) != LineKeys || len(m.RSK) != LineKeys {
		return fmt.Errorf("buttons: need %d LSK and %d RSK ids, got %d and %d", LineKeys, LineKeys, len(m.LSK), len(m.RSK))
	}
	if len(m.Digits) != 10 {
		return fmt.Errorf("buttons: need 10 digit ids, got %d", len(m.Digits))
	}

	index := make(map[int]Button)
	add := func(b Button) error {
		if b.ID < 0 {
			return fmt.Errorf("buttons: negative id %d for %s", b.ID, b.Kind)
		}
		if prev, exists := index[b.ID]; exists {
			return fmt.Errorf("buttons: id %d assigned to both %s and %s", b.ID, prev, b)
		}
		index[b.ID] = b
		return nil
	}

	var all []Button
	for i, id := range m.LSK {
		all = append(all, Button{ID: id, Kind: KindLSK, Line: i})
	}
	for i, id := range m.RSK {
		all = append(all, Button{ID: id, Kind: KindRSK, Line: i})
	}
	for d, id := range m.Digits {
		all = append(all, Button{ID: id, Kind: KindDigit, Char: rune('0' + d)})
	}
	for l := 0; l < 26; l++ {
		all = append(all, Button{ID: m.LetterA + l, Kind: KindLetter, Char: rune('A' + l)})
	}
	all = append(all,
		Button{ID: m.Dot, Kind: KindDot, Char: '.'},
		Button{ID: m.Backspace, Kind: KindBackspace},
		Button{ID: m.Clear, Kind: KindClear},
		Button{ID: m.Left, Kind: KindLeft},
		Button{ID: m.Right, Kind: KindRight},
		Button{ID: m.Up, Kind: KindUp},
		Button{ID: m.Down, Kind: KindDown},
	)

	for _, b := range all {
		if err := add(b); err != nil {
			return err
		}
	}
	m.index = index
	return nil
}

// Lookup classifies a hardware id. Ids not in the map come back as
// KindUnknown. Compile must have succeeded first.
func (m *Map) Lookup(id int) Button {
	if b, ok := m.index[id]; ok {
		return b
	}
	return Button{ID: id, Kind: KindUnknown}
}

// Find returns the first button of the given kind, and for line-select keys
// the given line. Used by input sources that translate keyboard keys.
func (m *Map) Find(kind Kind, line int) (Button, bool) {
	ids := make([]int, 0, len(m.index))
	for id := range m.index {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		b := m.index[id]
		if b.Kind != kind {
			continue
		}
		if (kind == KindLSK || kind == KindRSK) && b.Line != line {
			continue
		}
		return b, true
	}
	return Button{}, false
}

// FindChar returns the button that enters ch.
func (m *Map) FindChar(ch rune) (Button, bool) {
	for _, b := range m.index {
		if (b.Kind == KindDigit || b.Kind == KindLetter || b.Kind == KindDot) && b.Char == ch {
			return b, true
		}
	}
	return Button{}, false
}
