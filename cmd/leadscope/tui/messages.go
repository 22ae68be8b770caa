package tui

import (
	"context"

	"leadscope/cmd/leadscope/ui"
	"leadscope/internal/assessment"
	"leadscope/internal/wizard"

	tea "github.com/charmbracelet/bubbletea"
)

// Messages for tea updates
type (
	// fetchResultMsg carries a finished provider call back into Update.
	fetchResultMsg wizard.Result
	// submitMsg asks Update to submit the current ticker.
	submitMsg struct{}
)

// SettingsMsg swaps styles and provider while the wizard runs, e.g. after
// the config file changed. A nil Provider keeps the current one.
type SettingsMsg struct {
	Styles   ui.Styles
	Provider assessment.Provider
}

// fetchCmd runs one provider call off the event loop.
func fetchCmd(ctx context.Context, p assessment.Provider, req wizard.Request) tea.Cmd {
	return func() tea.Msg {
		a, err := p.Fetch(ctx, req.Ticker)
		return fetchResultMsg{Seq: req.Seq, Assessment: a, Err: err}
	}
}

func submitCmd() tea.Msg {
	return submitMsg{}
}
