package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette.
var (
	ColorCyan    = lipgloss.Color("14")
	ColorGreen   = lipgloss.Color("10")
	ColorYellow  = lipgloss.Color("220")
	ColorRed     = lipgloss.Color("204")
	ColorDimGray = lipgloss.Color("240")
)

// Styles holds the lipgloss styles bound to one renderer.
type Styles struct {
	Header   lipgloss.Style
	Header2  lipgloss.Style
	Noun     lipgloss.Style
	Path     lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
	Selector lipgloss.Style
}

func newStyles(lr *lipgloss.Renderer) *Styles {
	return &Styles{
		Header:   lr.NewStyle().Bold(true).Underline(true),
		Header2:  lr.NewStyle().Bold(true),
		Noun:     lr.NewStyle().Foreground(ColorCyan),
		Path:     lr.NewStyle().Faint(true),
		Success:  lr.NewStyle().Foreground(ColorGreen),
		Warning:  lr.NewStyle().Foreground(ColorYellow),
		Error:    lr.NewStyle().Bold(true).Foreground(ColorRed),
		Muted:    lr.NewStyle().Foreground(ColorDimGray),
		Selector: lr.NewStyle().Foreground(ColorCyan).Bold(true),
	}
}
