package stepper

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/leapstack-labs/boolstep/internal/cli/output"
	"github.com/leapstack-labs/boolstep/pkg/trace"
)

type keyMap struct {
	Next  key.Binding
	Prev  key.Binding
	Reset key.Binding
	End   key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Reset, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev},
		{k.Reset, k.End},
		{k.Help, k.Quit},
	}
}

var keys = keyMap{
	Next: key.NewBinding(
		key.WithKeys("right", "l", "n", " ", "enter"),
		key.WithHelp("→/n", "next step"),
	),
	Prev: key.NewBinding(
		key.WithKeys("left", "h", "p", "backspace"),
		key.WithHelp("←/p", "previous step"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r", "home"),
		key.WithHelp("r", "reset"),
	),
	End: key.NewBinding(
		key.WithKeys("e", "end"),
		key.WithHelp("e", "final result"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Model is the bubbletea model of the terminal stepper.
type Model struct {
	stepper *Stepper
	r       *output.Renderer
	keys    keyMap
	help    help.Model
	width   int
}

// NewModel wraps s for display through r.
func NewModel(s *Stepper, r *output.Renderer) Model {
	return Model{stepper: s, r: r, keys: keys, help: help.New()}
}

// Stepper returns the underlying cursor.
func (m Model) Stepper() *Stepper { return m.stepper }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.stepper.Next()
		case key.Matches(msg, m.keys.Prev):
			m.stepper.Prev()
		case key.Matches(msg, m.keys.Reset):
			m.stepper.Reset()
		case key.Matches(msg, m.keys.End):
			m.stepper.End()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	styles := m.r.Styles()
	step := m.stepper.Current()

	var b strings.Builder
	b.WriteString(styles.Header1.Render(m.stepper.Progress()))
	b.WriteString("\n\n")

	b.WriteString("  ")
	b.WriteString(m.r.Expr(step.Before, step.Highlight))
	b.WriteString("\n\n")

	label := styles.Muted.Render(opLabel(step.Op))
	b.WriteString("  " + label + " " + step.Description())
	b.WriteString("\n\n")

	if step.Op != trace.OpDone {
		b.WriteString("  ")
		b.WriteString(m.r.Expr(step.After, step.Highlight.Collapse()))
		b.WriteString("\n\n")
	}

	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func opLabel(op trace.OpKind) string {
	switch op {
	case trace.OpParens:
		return "[remove parentheses]"
	case trace.OpDone:
		return "[done]"
	}
	return "[" + op.String() + "]"
}
