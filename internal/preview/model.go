// Package preview is a terminal emulator of the CDU. It draws the frames a
// session would send to the display and turns key presses into button ids.
package preview

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/cdubridge/internal/buttons"
	"github.com/muurk/cdubridge/internal/display"
)

type frameMsg struct {
	frame display.Frame
}

// Model is the Bubble Tea model of the emulator.
type Model struct {
	buttons *buttons.Map
	events  chan<- int
	frame   display.Frame
	frames  int
	dropped int
	last    string

	keys keyMap
	help help.Model

	width  int
	height int
}

// New creates an emulator that reports button ids on events. m must be
// compiled.
func New(m *buttons.Map, events chan<- int) Model {
	return Model{
		buttons: m,
		events:  events,
		keys:    newKeyMap(),
		help:    help.New(),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case frameMsg:
		m.frame = msg.frame
		m.frames++

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if msg.String() == "?" {
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		id, ok := buttonFor(m.buttons, msg)
		if !ok {
			return m, nil
		}
		select {
		case m.events <- id:
			m.last = m.buttons.Lookup(id).String()
		default:
			m.dropped++
		}
	}
	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("CDU PREVIEW"))
	b.WriteString("\n")
	b.WriteString(screenStyle.Render(renderFrame(m.frame)))
	b.WriteString("\n")

	status := fmt.Sprintf("frames %d", m.frames)
	if m.last != "" {
		status += "  last " + m.last
	}
	if m.dropped > 0 {
		status += fmt.Sprintf("  dropped %d", m.dropped)
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// renderFrame draws a frame as Rows lines, coloring runs of equal color
// together. An empty frame draws a blank screen.
func renderFrame(f display.Frame) string {
	if len(f) != display.Rows*display.Cols {
		blank := strings.Repeat(" ", display.Cols)
		lines := make([]string, display.Rows)
		for i := range lines {
			lines[i] = blank
		}
		return strings.Join(lines, "\n")
	}

	lines := make([]string, display.Rows)
	for r := 0; r < display.Rows; r++ {
		var line strings.Builder
		row := f.Row(r)
		start := 0
		for i := 1; i <= len(row); i++ {
			if i < len(row) && row[i].Color == row[start].Color {
				continue
			}
			run := make([]rune, 0, i-start)
			for _, c := range row[start:i] {
				run = append(run, c.Char)
			}
			line.WriteString(cellStyle(row[start].Color).Render(string(run)))
			start = i
		}
		lines[r] = line.String()
	}
	return strings.Join(lines, "\n")
}

// Transport hands frames to a running emulator program.
type Transport struct {
	p *tea.Program
}

// NewTransport creates a transport drawing into p.
func NewTransport(p *tea.Program) *Transport {
	return &Transport{p: p}
}

// Send implements cdu.Transport.
func (t *Transport) Send(ctx context.Context, frame display.Frame) error {
	t.p.Send(frameMsg{frame: frame})
	return nil
}
