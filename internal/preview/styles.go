package preview

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/cdubridge/internal/display"
)

// Screen colors approximating the CDU's LCD palette
var palette = map[display.Color]lipgloss.Color{
	display.Amber:   lipgloss.Color("#FFA500"),
	display.Cyan:    lipgloss.Color("#00D7FF"),
	display.Grey:    lipgloss.Color("#8A8A8A"),
	display.Green:   lipgloss.Color("#43BF6D"),
	display.Khaki:   lipgloss.Color("#C3B091"),
	display.Magenta: lipgloss.Color("#FF55FF"),
	display.Red:     lipgloss.Color("#FF5555"),
	display.White:   lipgloss.Color("#FFFFFF"),
	display.Yellow:  lipgloss.Color("#FFFF55"),
}

var (
	// PrimaryColor is used for the bezel
	PrimaryColor = lipgloss.Color("#7D56F4")
	// MutedColor is used for labels
	MutedColor = lipgloss.Color("#626262")

	screenStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Background(lipgloss.Color("#000000")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			PaddingLeft(2)

	statusStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			PaddingLeft(2)
)

// cellStyle returns the style for one display color. Unknown codes render
// in the default color.
func cellStyle(c display.Color) lipgloss.Style {
	fg, ok := palette[c]
	if !ok {
		fg = palette[display.DefaultColor]
	}
	return lipgloss.NewStyle().Foreground(fg)
}
