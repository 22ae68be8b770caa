package tui

import (
	"leadscope/internal/wizard"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds every binding the wizard understands.
type keyMap struct {
	Submit    key.Binding
	Resume    key.Binding
	Dismiss   key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Toggle    key.Binding
	Next      key.Binding
	Back      key.Binding
	Generate  key.Binding
	Edit      key.Binding
	Scroll    key.Binding
	StartOver key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "generate pain points")),
		Resume:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "back to results")),
		Dismiss:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss error")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle card")),
		Next:      key.NewBinding(key.WithKeys("n", "enter"), key.WithHelp("n/enter", "next")),
		Back:      key.NewBinding(key.WithKeys("b", "backspace"), key.WithHelp("b", "back")),
		Generate:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "generate scope")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit answers")),
		Scroll:    key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown"), key.WithHelp("↑/↓", "scroll")),
		StartOver: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "start over")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// stepHelp narrows the key map to the bindings of one step.
type stepHelp struct {
	keys      keyMap
	step      wizard.Step
	canResume bool
	hasError  bool
}

var _ help.KeyMap = stepHelp{}

func (h stepHelp) ShortHelp() []key.Binding {
	k := h.keys
	switch h.step {
	case wizard.StepInput:
		b := []key.Binding{k.Submit}
		if h.hasError {
			b = append(b, k.Dismiss)
		}
		if h.canResume {
			b = append(b, k.Resume)
		}
		return append(b, k.Quit)
	case wizard.StepPainCardsPage1:
		return []key.Binding{k.Up, k.Down, k.Toggle, k.Next, k.StartOver, k.Quit}
	case wizard.StepPainCardsPage2:
		return []key.Binding{k.Up, k.Down, k.Toggle, k.Next, k.Back, k.StartOver, k.Quit}
	case wizard.StepSurvey:
		return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Generate, k.Back, k.StartOver, k.Quit}
	case wizard.StepDashboard:
		return []key.Binding{k.Scroll, k.Edit, k.StartOver, k.Quit}
	}
	return []key.Binding{k.Quit}
}

func (h stepHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
