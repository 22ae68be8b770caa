package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"leadscope/cmd/leadscope/ui"
	"leadscope/internal/assessment"
	"leadscope/internal/wizard"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	a     *assessment.Assessment
	err   error
	calls []string
}

func (s *stubProvider) Fetch(_ context.Context, ticker string) (*assessment.Assessment, error) {
	s.calls = append(s.calls, ticker)
	return s.a, s.err
}

func sampleAssessment() *assessment.Assessment {
	rev := 33.7e9
	return &assessment.Assessment{
		CompanyName:        "NFLX",
		ClassifiedIndustry: "Media & Entertainment",
		Revenue:            &rev,
		ScopeSummary:       "Focus on finance data.",
		PainCards: []assessment.PainCard{
			{Title: "Close cycle", Blurb: "Month-end takes too long.", TriggeredTiles: []string{"FIN-MDM"}},
			{Title: "Cash visibility", Blurb: "No daily cash view.", TriggeredTiles: []string{"FIN-TRE"}},
			{Title: "Stock levels", Blurb: "Inventory is opaque.", TriggeredTiles: []string{"SCM-IM"}},
			{Title: "Vendor sprawl", Blurb: "Too many suppliers.", TriggeredTiles: []string{"SCM-PRO"}},
			{Title: "Forecasting", Blurb: "Plans miss reality.", TriggeredTiles: []string{"FIN-PLN"}},
		},
	}
}

func newTestModel(p assessment.Provider) Model {
	m := New(context.Background(), Config{
		Provider: p,
		Styles:   ui.NewStyles(ui.LightTheme()),
		Answers:  wizard.DefaultAnswers(),
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 60})
	return next.(Model)
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	space = tea.KeyMsg{Type: tea.KeySpace}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	up    = tea.KeyMsg{Type: tea.KeyUp}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	left  = tea.KeyMsg{Type: tea.KeyLeft}
	right = tea.KeyMsg{Type: tea.KeyRight}
	ctrlR = tea.KeyMsg{Type: tea.KeyCtrlR}
	ctrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
)

// execute runs cmd and the commands of a batch one level deep.
func execute(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		if c != nil {
			out = append(out, c())
		}
	}
	return out
}

func fetchResult(t *testing.T, cmd tea.Cmd) fetchResultMsg {
	t.Helper()
	for _, msg := range execute(cmd) {
		if r, ok := msg.(fetchResultMsg); ok {
			return r
		}
	}
	t.Fatalf("command produced no fetch result")
	return fetchResultMsg{}
}

// loaded drives a model from typing a ticker to the first card page.
func loaded(t *testing.T, p *stubProvider) Model {
	t.Helper()
	m := newTestModel(p)
	m, _ = press(t, m, runes("nflx"))
	m, cmd := press(t, m, enter)
	require.True(t, m.ctrl.Loading())

	next, _ := m.Update(fetchResult(t, cmd))
	m = next.(Model)
	require.Equal(t, wizard.StepPainCardsPage1, m.ctrl.Step())
	return m
}

func TestInputUppercasesWhileTyping(t *testing.T) {
	m := newTestModel(&stubProvider{})
	m, _ = press(t, m, runes("nf"), runes("lx"))

	assert.Equal(t, "NFLX", m.ctrl.Ticker())
	assert.Equal(t, "NFLX", m.input.Value())
}

func TestHeaderDividerSpansContent(t *testing.T) {
	m := newTestModel(&stubProvider{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	assert.Contains(t, m.View(), strings.Repeat("─", m.layout.ContentWidth()))
}

func TestSubmitLoadsFirstCardPage(t *testing.T) {
	p := &stubProvider{a: sampleAssessment()}
	m := newTestModel(p)
	m, _ = press(t, m, runes(" nflx "))

	m, cmd := press(t, m, enter)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Generating pain points for")

	// A second enter while loading is ignored.
	_, again := press(t, m, enter)
	assert.Nil(t, again)

	next, _ := m.Update(fetchResult(t, cmd))
	m = next.(Model)

	assert.Equal(t, []string{"NFLX"}, p.calls)
	assert.Equal(t, wizard.StepPainCardsPage1, m.ctrl.Step())
	assert.Equal(t, 5, m.ctrl.Selected().Len())

	view := m.View()
	assert.Contains(t, view, "Page 1 of 2")
	assert.Contains(t, view, "Close cycle")
	assert.Contains(t, view, "Vendor sprawl")
	assert.NotContains(t, view, "Forecasting")
}

func TestEmptyTickerMakesNoRequest(t *testing.T) {
	p := &stubProvider{a: sampleAssessment()}
	m := newTestModel(p)

	m, cmd := press(t, m, enter)
	assert.Nil(t, cmd)
	assert.Empty(t, p.calls)

	var verr *assessment.ValidationError
	require.ErrorAs(t, m.ctrl.Err(), &verr)
	assert.Equal(t, wizard.StepInput, m.ctrl.Step())
}

func TestProviderErrorStaysOnInput(t *testing.T) {
	p := &stubProvider{err: &assessment.ProviderError{Status: 404, Message: "Company not found"}}
	m := newTestModel(p)
	m, _ = press(t, m, runes("zzzz"))
	m, cmd := press(t, m, enter)

	next, _ := m.Update(fetchResult(t, cmd))
	m = next.(Model)

	assert.Equal(t, wizard.StepInput, m.ctrl.Step())
	assert.False(t, m.ctrl.Loading())
	assert.Contains(t, m.View(), "Company not found")

	m, _ = press(t, m, esc)
	assert.NoError(t, m.ctrl.Err())
	assert.NotContains(t, m.View(), "Company not found")
}

func TestTypingClearsError(t *testing.T) {
	p := &stubProvider{err: errors.New("boom")}
	m := newTestModel(p)
	m, _ = press(t, m, runes("x"))
	m, cmd := press(t, m, enter)
	next, _ := m.Update(fetchResult(t, cmd))
	m = next.(Model)
	require.Error(t, m.ctrl.Err())

	m, _ = press(t, m, runes("y"))
	assert.NoError(t, m.ctrl.Err())
	assert.Equal(t, "XY", m.ctrl.Ticker())
}

func TestStaleResultIgnored(t *testing.T) {
	m := newTestModel(&stubProvider{})
	m, _ = press(t, m, runes("nflx"), enter)

	next, _ := m.Update(fetchResultMsg{Seq: 99, Assessment: sampleAssessment()})
	m = next.(Model)
	assert.Equal(t, wizard.StepInput, m.ctrl.Step())
	assert.True(t, m.ctrl.Loading())
}

func TestCardToggleAndPaging(t *testing.T) {
	m := loaded(t, &stubProvider{a: sampleAssessment()})

	// Deselect the focused first card.
	m, _ = press(t, m, space)
	assert.False(t, m.ctrl.IsSelected("Close cycle"))
	assert.NotContains(t, m.ctrl.ActivatedTiles(), "FIN-MDM")

	// Cursor moves right then toggles the second card.
	m, _ = press(t, m, right, space)
	assert.False(t, m.ctrl.IsSelected("Cash visibility"))
	m, _ = press(t, m, space)
	assert.True(t, m.ctrl.IsSelected("Cash visibility"))

	m, _ = press(t, m, runes("n"))
	assert.Equal(t, wizard.StepPainCardsPage2, m.ctrl.Step())
	assert.Equal(t, 0, m.cursor)
	view := m.View()
	assert.Contains(t, view, "Page 2 of 2")
	assert.Contains(t, view, "Forecasting")

	m, _ = press(t, m, runes("b"))
	assert.Equal(t, wizard.StepPainCardsPage1, m.ctrl.Step())
	assert.False(t, m.ctrl.IsSelected("Close cycle"), "selection survives paging")

	m, _ = press(t, m, enter, enter)
	assert.Equal(t, wizard.StepSurvey, m.ctrl.Step())
}

func TestCursorStaysInsideGrid(t *testing.T) {
	m := loaded(t, &stubProvider{a: sampleAssessment()})
	m, _ = press(t, m, up, left)
	assert.Equal(t, 0, m.cursor)

	m, _ = press(t, m, down, right, right, down)
	assert.Equal(t, 3, m.cursor)

	// Page 2 has one card.
	m, _ = press(t, m, runes("n"), right, down)
	assert.Equal(t, 0, m.cursor)
}

func TestSurveyAnswers(t *testing.T) {
	m := loaded(t, &stubProvider{a: sampleAssessment()})
	m, _ = press(t, m, runes("n"), runes("n"))
	require.Equal(t, wizard.StepSurvey, m.ctrl.Step())
	assert.Contains(t, m.View(), "Is your current ERP SAP?")

	m, _ = press(t, m, right)
	assert.Equal(t, wizard.GeoUnderFive, m.ctrl.Answers().GeoScope)
	m, _ = press(t, m, left, left)
	assert.Equal(t, wizard.GeoMoreThanFive, m.ctrl.Answers().GeoScope, "left wraps around")

	m, _ = press(t, m, down, right)
	assert.Equal(t, wizard.AnswerNo, m.ctrl.Answers().IsSAP)
	assert.Equal(t, wizard.AnswerYes, m.ctrl.Answers().IsOnPrem)

	m, _ = press(t, m, runes("b"))
	assert.Equal(t, wizard.StepPainCardsPage2, m.ctrl.Step())
}

func TestDashboardEditAndStartOver(t *testing.T) {
	m := loaded(t, &stubProvider{a: sampleAssessment()})
	m, _ = press(t, m, runes("n"), runes("n"), enter)
	require.Equal(t, wizard.StepDashboard, m.ctrl.Step())

	view := m.View()
	assert.Contains(t, view, "The NFLX Company")
	assert.Contains(t, view, "Phase 1 Scope includes 5 key")
	assert.Contains(t, view, "$33.70B")

	m, _ = press(t, m, runes("e"))
	assert.Equal(t, wizard.StepSurvey, m.ctrl.Step())

	m, _ = press(t, m, ctrlR)
	assert.Equal(t, wizard.StepInput, m.ctrl.Step())
	assert.Equal(t, "NFLX", m.input.Value())
	assert.Contains(t, m.View(), "Press tab to return to NFLX")

	m, _ = press(t, m, tab)
	assert.Equal(t, wizard.StepPainCardsPage1, m.ctrl.Step())
}

func TestStartOverFromInputIsNoop(t *testing.T) {
	m := newTestModel(&stubProvider{})
	m, cmd := press(t, m, ctrlR)
	assert.Nil(t, cmd)
	assert.Equal(t, wizard.StepInput, m.ctrl.Step())
}

func TestQuit(t *testing.T) {
	m := newTestModel(&stubProvider{})
	_, cmd := press(t, m, ctrlC)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestAutoSubmitOnInit(t *testing.T) {
	p := &stubProvider{a: sampleAssessment()}
	m := New(context.Background(), Config{
		Provider:   p,
		Styles:     ui.NewStyles(ui.DarkTheme()),
		Ticker:     "nflx",
		AutoSubmit: true,
	})
	assert.Equal(t, "NFLX", m.input.Value())

	var submit tea.Msg
	for _, msg := range execute(m.Init()) {
		if _, ok := msg.(submitMsg); ok {
			submit = msg
		}
	}
	require.NotNil(t, submit)

	next, cmd := m.Update(submit)
	m = next.(Model)
	next, _ = m.Update(fetchResult(t, cmd))
	m = next.(Model)
	assert.Equal(t, wizard.StepPainCardsPage1, m.ctrl.Step())
}

func TestMissingProviderSurfacesError(t *testing.T) {
	m := newTestModel(nil)
	m, cmd := press(t, m, runes("nflx"), enter)
	assert.Nil(t, cmd)
	require.Error(t, m.ctrl.Err())
	assert.False(t, m.ctrl.Loading())
	assert.True(t, strings.Contains(m.View(), "no assessment provider"))
}

func TestSettingsMsgSwapsProvider(t *testing.T) {
	first := &stubProvider{err: errors.New("unreachable")}
	second := &stubProvider{a: sampleAssessment()}
	m := newTestModel(first)

	next, _ := m.Update(SettingsMsg{Styles: ui.NewStyles(ui.DarkTheme()), Provider: second})
	m = next.(Model)
	assert.True(t, m.styles.Theme.IsDark)

	m, cmd := press(t, m, runes("nflx"), enter)
	next, _ = m.Update(fetchResult(t, cmd))
	m = next.(Model)

	assert.Empty(t, first.calls)
	assert.Equal(t, []string{"NFLX"}, second.calls)
	assert.Equal(t, wizard.StepPainCardsPage1, m.ctrl.Step())

	// A nil provider keeps the current one.
	next, _ = m.Update(SettingsMsg{Styles: ui.NewStyles(ui.LightTheme())})
	m = next.(Model)
	assert.Same(t, second, m.provider)
	assert.False(t, m.styles.Theme.IsDark)
}

func TestDashboardSummaryRenderIsCached(t *testing.T) {
	m := loaded(t, &stubProvider{a: sampleAssessment()})
	m, _ = press(t, m, runes("n"), runes("n"), enter)
	require.Equal(t, wizard.StepDashboard, m.ctrl.Step())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 60})
	m = next.(Model)

	hits, misses := m.cache.Stats()
	assert.Equal(t, 1, misses)
	assert.Equal(t, 1, hits)
}
