package output

import "github.com/charmbracelet/lipgloss"

// Palette used across the CLI. Each operator has its own colour.
const (
	colorNot     = lipgloss.Color("#9B59B6")
	colorAnd     = lipgloss.Color("#3498DB")
	colorOr      = lipgloss.Color("#E67E22")
	colorTrue    = lipgloss.Color("#27AE60")
	colorFalse   = lipgloss.Color("#E74C3C")
	colorMuted   = lipgloss.Color("#7F8C8D")
	colorWarning = lipgloss.Color("#F1C40F")
)

// Styles holds the lipgloss styles for one renderer.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	Not      lipgloss.Style
	And      lipgloss.Style
	Or       lipgloss.Style
	True     lipgloss.Style
	False    lipgloss.Style
	Paren    lipgloss.Style
	Variable lipgloss.Style
	// Highlight wraps the span reduced by a step.
	Highlight lipgloss.Style
}

// NewStyles builds the styles for lr.
func NewStyles(lr *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1: lr.NewStyle().Bold(true).Underline(true),
		Header2: lr.NewStyle().Bold(true),
		Bold:    lr.NewStyle().Bold(true),
		Muted:   lr.NewStyle().Foreground(colorMuted),
		Success: lr.NewStyle().Foreground(colorTrue).Bold(true),
		Warning: lr.NewStyle().Foreground(colorWarning),
		Error:   lr.NewStyle().Foreground(colorFalse).Bold(true),

		Not:       lr.NewStyle().Foreground(colorNot).Bold(true),
		And:       lr.NewStyle().Foreground(colorAnd).Bold(true),
		Or:        lr.NewStyle().Foreground(colorOr).Bold(true),
		True:      lr.NewStyle().Foreground(colorTrue),
		False:     lr.NewStyle().Foreground(colorFalse),
		Paren:     lr.NewStyle().Foreground(colorMuted),
		Variable:  lr.NewStyle().Bold(true),
		Highlight: lr.NewStyle().Underline(true),
	}
}
