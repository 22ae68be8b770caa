// Package tui implements the interactive lead-scoping wizard on bubbletea.
package tui

import (
	"context"
	"errors"

	"leadscope/cmd/leadscope/ui"
	"leadscope/internal/assessment"
	"leadscope/internal/logging"
	"leadscope/internal/wizard"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// Config wires a Model to its provider and presentation.
type Config struct {
	Provider assessment.Provider
	Styles   ui.Styles
	Answers  wizard.UserAnswers
	// Ticker pre-fills the input; with AutoSubmit it is fetched on start.
	Ticker     string
	AutoSubmit bool
}

// Model is the bubbletea model for the wizard. All wizard state lives in the
// controller; the model only adds cursor positions and widgets.
type Model struct {
	ctrl     *wizard.Controller
	provider assessment.Provider
	ctx      context.Context

	// UI Components
	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	progress progress.Model
	help     help.Model
	keys     keyMap
	styles   ui.Styles
	renderer *glamour.TermRenderer
	cache    *ui.RenderCache
	layout   ui.LayoutConfig

	// cursor indexes the visible cards; question indexes the survey.
	cursor     int
	question   int
	autoSubmit bool

	log *logging.Logger
}

// New creates the wizard model.
func New(ctx context.Context, cfg Config) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	styles := cfg.Styles

	answers := cfg.Answers
	if answers.Validate() != nil {
		answers = wizard.DefaultAnswers()
	}
	ctrl := wizard.New(wizard.WithAnswers(answers), wizard.WithTicker(cfg.Ticker))

	ti := textinput.New()
	ti.Placeholder = "e.g. NFLX"
	ti.Prompt = "› "
	ti.CharLimit = 16
	ti.Width = 20
	ti.SetValue(ctrl.Ticker())
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctrl:       ctrl,
		provider:   cfg.Provider,
		ctx:        ctx,
		input:      ti,
		spinner:    sp,
		viewport:   viewport.New(80, 16),
		help:       help.New(),
		keys:       defaultKeyMap(),
		cache:      ui.NewRenderCache(32),
		autoSubmit: cfg.AutoSubmit && cfg.Ticker != "",
		log:        logging.Get(logging.CategoryUI),
	}
	m.applyStyles(styles)
	return m
}

// applyStyles restyles every widget and re-lays out for the current size.
func (m *Model) applyStyles(s ui.Styles) {
	m.styles = s
	m.input.PromptStyle = s.Prompt
	m.input.TextStyle = s.Bold
	m.spinner.Style = s.Spinner
	m.progress = progress.New(progress.WithSolidFill(string(s.Theme.Accent)), progress.WithoutPercentage())
	m.setSize(m.layout.TerminalWidth, m.layout.TerminalHeight)
}

// Controller exposes the wizard state, mainly for tests and the caller
// inspecting the final outcome.
func (m Model) Controller() *wizard.Controller {
	return m.ctrl
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.autoSubmit {
		cmds = append(cmds, submitCmd)
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.StartOver) {
			return m.startOver()
		}
		switch m.ctrl.Step() {
		case wizard.StepInput:
			return m.updateInput(msg)
		case wizard.StepPainCardsPage1, wizard.StepPainCardsPage2:
			return m.updateCards(msg)
		case wizard.StepSurvey:
			return m.updateSurvey(msg)
		case wizard.StepDashboard:
			return m.updateDashboard(msg)
		}
		return m, nil

	case submitMsg:
		return m.submit()

	case SettingsMsg:
		if msg.Provider != nil {
			m.provider = msg.Provider
		}
		m.applyStyles(msg.Styles)
		m.log.Info("settings reloaded")
		return m, nil

	case fetchResultMsg:
		if !m.ctrl.Complete(wizard.Result(msg)) {
			return m, nil
		}
		if m.ctrl.Step() != wizard.StepInput {
			m.cursor = 0
			m.question = 0
		}
		return m, nil

	case spinner.TickMsg:
		if m.ctrl.Loading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	// Cursor blink and other widget messages.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	m.ctrl.SetTicker(m.input.Value())
	req, err := m.ctrl.Submit()
	if err != nil {
		// Validation errors are surfaced through ctrl.Err(); a busy or
		// off-step submit is simply ignored.
		m.log.Debug("submit: %v", err)
		return m, nil
	}
	if m.provider == nil {
		m.ctrl.Complete(wizard.Result{Seq: req.Seq, Err: errors.New("no assessment provider configured")})
		return m, nil
	}
	return m, tea.Batch(m.spinner.Tick, fetchCmd(m.ctx, m.provider, req))
}

func (m Model) startOver() (tea.Model, tea.Cmd) {
	if err := m.ctrl.StartOver(); err != nil {
		m.log.Debug("start over: %v", err)
		return m, nil
	}
	m.cursor, m.question = 0, 0
	m.input.SetValue(m.ctrl.Ticker())
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Dismiss):
		m.ctrl.ClearError()
		return m, nil
	case key.Matches(msg, m.keys.Resume):
		if err := m.ctrl.Resume(); err != nil {
			m.log.Debug("resume: %v", err)
		}
		m.cursor = 0
		return m, nil
	}

	if m.ctrl.Loading() {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != m.ctrl.Ticker() {
		m.ctrl.SetTicker(v)
		m.input.SetValue(m.ctrl.Ticker())
	}
	return m, cmd
}

func (m Model) updateCards(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cards := m.ctrl.VisibleCards()
	cols := m.layout.CardColumns()

	switch {
	case key.Matches(msg, m.keys.Toggle):
		if m.cursor < len(cards) {
			if err := m.ctrl.ToggleCard(cards[m.cursor].Title); err != nil {
				m.log.Debug("toggle: %v", err)
			}
		}
	case key.Matches(msg, m.keys.Next):
		if err := m.ctrl.Next(); err == nil {
			m.cursor, m.question = 0, 0
		}
	case key.Matches(msg, m.keys.Back):
		if err := m.ctrl.Back(); err == nil {
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.Up):
		m.cursor = moveCursor(m.cursor, -cols, len(cards))
	case key.Matches(msg, m.keys.Down):
		m.cursor = moveCursor(m.cursor, cols, len(cards))
	case key.Matches(msg, m.keys.Left):
		m.cursor = moveCursor(m.cursor, -1, len(cards))
	case key.Matches(msg, m.keys.Right):
		m.cursor = moveCursor(m.cursor, 1, len(cards))
	}
	return m, nil
}

func moveCursor(cur, delta, n int) int {
	next := cur + delta
	if next < 0 || next >= n {
		return cur
	}
	return next
}

func (m Model) updateSurvey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	questions := wizard.Questions()

	switch {
	case key.Matches(msg, m.keys.Generate):
		if err := m.ctrl.Generate(); err != nil {
			m.log.Debug("generate: %v", err)
			return m, nil
		}
		m.refreshDashboard()
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Back):
		if err := m.ctrl.Back(); err == nil {
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.Up):
		m.question = moveCursor(m.question, -1, len(questions))
	case key.Matches(msg, m.keys.Down):
		m.question = moveCursor(m.question, 1, len(questions))
	case key.Matches(msg, m.keys.Left):
		m.cycleAnswer(questions[m.question], -1)
	case key.Matches(msg, m.keys.Right):
		m.cycleAnswer(questions[m.question], 1)
	}
	return m, nil
}

// cycleAnswer moves the answer of q by delta options, wrapping around.
func (m Model) cycleAnswer(q wizard.Question, delta int) {
	current := m.ctrl.Answers().Get(q.Key)
	idx := 0
	for i, opt := range q.Options {
		if opt == current {
			idx = i
			break
		}
	}
	n := len(q.Options)
	idx = ((idx+delta)%n + n) % n
	if err := m.ctrl.SetAnswer(q.Key, q.Options[idx]); err != nil {
		m.log.Warn("set answer %s: %v", q.Key, err)
	}
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Edit) {
		if err := m.ctrl.Edit(); err != nil {
			m.log.Debug("edit: %v", err)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// setSize recomputes widget sizes; called with zeros before the first
// WindowSizeMsg.
func (m *Model) setSize(width, height int) {
	m.layout = ui.NewLayoutConfig(width, height)
	m.help.Width = m.layout.ContentWidth()
	m.viewport.Width = m.layout.ContentWidth()
	m.viewport.Height = m.layout.ContentHeight()

	style := "light"
	if m.styles.Theme.IsDark {
		style = "dark"
	}
	left, right := m.layout.DashboardColumns()
	wrap := left
	if right > 0 {
		wrap = right
	}
	m.progress.Width = max(wrap-4, 10)
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(wrap-4, 20)),
	)
	if err != nil {
		m.log.Warn("markdown renderer: %v", err)
		r = nil
	}
	m.renderer = r

	if m.ctrl.Step() == wizard.StepDashboard {
		m.refreshDashboard()
	}
}

// NewProgram builds the full-screen wizard program. Callers may Send a
// SettingsMsg to it while it runs.
func NewProgram(ctx context.Context, cfg Config, opts ...tea.ProgramOption) *tea.Program {
	if ctx == nil {
		ctx = context.Background()
	}
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	return tea.NewProgram(New(ctx, cfg), opts...)
}
