package tui

import (
	"fmt"
	"strings"

	"leadscope/cmd/leadscope/ui"
	"leadscope/internal/assessment"
	"leadscope/internal/dashboard"
	"leadscope/internal/wizard"

	"github.com/charmbracelet/lipgloss"
)

const appTitle = "Lead-Scope"

func (m Model) View() string {
	var body string
	switch m.ctrl.Step() {
	case wizard.StepInput:
		body = m.viewInput()
	case wizard.StepPainCardsPage1, wizard.StepPainCardsPage2:
		body = m.viewCards()
	case wizard.StepSurvey:
		body = m.viewSurvey()
	case wizard.StepDashboard:
		body = m.viewport.View()
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Header.Render(appTitle),
		m.styles.Subtitle.Render(m.ctrl.HeaderText()),
		m.styles.RenderDivider(m.layout.ContentWidth()),
	)
	footer := m.styles.Footer.Render(m.help.View(stepHelp{
		keys:      m.keys,
		step:      m.ctrl.Step(),
		canResume: m.ctrl.Assessment() != nil && !m.ctrl.Loading(),
		hasError:  m.ctrl.Err() != nil,
	}))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.styles.Content.Render(body),
		footer,
	)
}

func (m Model) viewInput() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Bold.Render("Company ticker"))
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")

	switch {
	case m.ctrl.Loading():
		sb.WriteString(fmt.Sprintf("%s %s", m.spinner.View(),
			m.styles.Muted.Render("Generating pain points for "+m.ctrl.Ticker()+"...")))
	case m.ctrl.Err() != nil:
		sb.WriteString(m.styles.Error.Render("Error: " + m.ctrl.Err().Error()))
		sb.WriteString("\n")
		sb.WriteString(m.styles.Muted.Render("Edit the ticker to try again, or press esc to dismiss."))
	case m.ctrl.Assessment() != nil:
		sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("Press tab to return to %s.", m.ctrl.Assessment().CompanyName)))
	}
	return sb.String()
}

func (m Model) viewCards() string {
	a := m.ctrl.Assessment()
	step := m.ctrl.Step()
	cards := m.ctrl.VisibleCards()

	title := m.styles.Title.Render(fmt.Sprintf("%s: CFO pain points", companyName(a)))
	pageInfo := m.styles.Muted.Render(fmt.Sprintf("Page %d of %d", step.Page(), wizard.PageCount))

	var grid string
	if len(cards) == 0 {
		grid = m.styles.Muted.Render("No pain cards on this page.")
	} else {
		grid = m.cardGrid(cards)
	}

	selected := m.ctrl.Selected()
	total := 0
	if a != nil {
		total = len(a.PainCards)
	}
	status := m.styles.Muted.Render(fmt.Sprintf("%d of %d selected · %d tiles activated",
		selected.Len(), total, len(m.ctrl.ActivatedTiles())))

	return lipgloss.JoinVertical(lipgloss.Left, title, pageInfo, "", grid, "", status)
}

func (m Model) cardGrid(cards []assessment.PainCard) string {
	cols := m.layout.CardColumns()
	width := m.layout.CardWidth()

	var rows []string
	for start := 0; start < len(cards); start += cols {
		end := min(start+cols, len(cards))
		var row []string
		for i := start; i < end; i++ {
			if i > start {
				row = append(row, " ")
			}
			row = append(row, m.renderCard(cards[i], i == m.cursor, width))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCard(card assessment.PainCard, focused bool, width int) string {
	selected := m.ctrl.IsSelected(card.Title)
	style := m.styles.Card
	check := "[ ]"
	if selected {
		style = m.styles.CardSelected
		check = "[x]"
	}
	if focused {
		style = m.styles.CardCursor
		if selected {
			style = style.Background(m.styles.Theme.Selected)
		}
	}
	// Border and padding take four columns.
	inner := max(width-4, 10)

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Bold.Render(check+" "+card.Title),
		m.styles.Body.Width(inner).Render(card.Blurb),
		m.styles.Muted.Width(inner).Render("Tiles: "+strings.Join(card.TriggeredTiles, ", ")),
	)
	return style.Width(inner + 2).Render(content)
}

func (m Model) viewSurvey() string {
	answers := m.ctrl.Answers()
	var blocks []string
	for i, q := range wizard.Questions() {
		marker := "  "
		prompt := m.styles.Body.Render(q.Prompt)
		if i == m.question {
			marker = m.styles.Prompt.Render("› ")
			prompt = m.styles.Bold.Render(q.Prompt)
		}

		var opts []string
		for _, opt := range q.Options {
			if opt == answers.Get(q.Key) {
				opts = append(opts, m.styles.OptionSelected.Render(opt))
			} else {
				opts = append(opts, m.styles.Option.Render(opt))
			}
		}
		blocks = append(blocks,
			marker+prompt,
			"  "+lipgloss.JoinHorizontal(lipgloss.Top, opts...),
			"",
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

// refreshDashboard rebuilds the dashboard into the viewport.
func (m *Model) refreshDashboard() {
	d := dashboard.Build(m.ctrl.Assessment(), m.ctrl.Answers(), m.ctrl.ActivatedTiles())
	m.viewport.SetContent(m.renderDashboard(d))

	hits, misses := m.cache.Stats()
	m.log.Debug("dashboard refreshed: %d tiles, render cache %d hits / %d misses", d.ScopeCount, hits, misses)
}

func (m Model) renderDashboard(d dashboard.Dashboard) string {
	left, right := m.layout.DashboardColumns()

	profile := []string{
		m.styles.Title.Render(d.Title),
		m.renderField(d.Industry),
		"",
	}
	for _, sec := range d.Sections {
		lines := []string{m.styles.Bold.Render(sec.Title)}
		for _, f := range sec.Fields {
			lines = append(lines, m.renderField(f))
		}
		profile = append(profile, m.styles.Section.Width(max(left-2, 10)).Render(strings.Join(lines, "\n")))
	}

	ratio := 0.0
	if total := catalogSize(d); total > 0 {
		ratio = float64(d.ScopeCount) / float64(total)
	}
	scopeLines := []string{
		m.styles.Title.Render("Business Transformation Scope"),
		m.styles.Success.Render(d.Headline),
		m.progress.ViewAs(min(ratio, 1)),
		"",
	}
	for _, cat := range d.Categories {
		scopeLines = append(scopeLines, m.styles.Bold.Render(fmt.Sprintf("%s (%d/%d)", cat.Name, cat.ActiveCount, len(cat.Tiles))))
		for _, t := range cat.Tiles {
			scopeLines = append(scopeLines, m.renderTile(t))
		}
		scopeLines = append(scopeLines, "")
	}
	if len(d.Uncataloged) > 0 {
		scopeLines = append(scopeLines, m.styles.Bold.Render("Other activated tiles"))
		for _, t := range d.Uncataloged {
			scopeLines = append(scopeLines, m.renderTile(t))
		}
		scopeLines = append(scopeLines, "")
	}
	if d.ScopeSummary != "" {
		scopeLines = append(scopeLines, m.styles.Title.Render("Summary"), m.renderMarkdown(d.ScopeSummary))
	}

	leftCol := lipgloss.JoinVertical(lipgloss.Left, profile...)
	rightCol := lipgloss.JoinVertical(lipgloss.Left, scopeLines...)
	if right == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, leftCol, "", rightCol)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(left).Render(leftCol),
		strings.Repeat(" ", 2),
		lipgloss.NewStyle().Width(right).Render(rightCol),
	)
}

func (m Model) renderField(f dashboard.Field) string {
	return m.styles.Muted.Render(f.Label+" ") + m.styles.Body.Render(f.Value)
}

func (m Model) renderTile(t dashboard.TileView) string {
	if t.Active {
		return m.styles.TileActive.Render(fmt.Sprintf("  ✓ %s  %s", t.ID, t.Name))
	}
	return m.styles.TileInactive.Render(fmt.Sprintf("  · %s  %s", t.ID, t.Name))
}

func (m Model) renderMarkdown(s string) string {
	if m.renderer == nil {
		return m.styles.Body.Render(s)
	}
	key := ui.ComputeKey(s, m.layout.TerminalWidth, m.styles.Theme.IsDark)
	return m.cache.GetOrCompute(key, func() string {
		out, err := m.renderer.Render(s)
		if err != nil {
			m.log.Warn("render summary: %v", err)
			return m.styles.Body.Render(s)
		}
		return strings.TrimRight(out, "\n")
	})
}

func catalogSize(d dashboard.Dashboard) int {
	n := len(d.Uncataloged)
	for _, c := range d.Categories {
		n += len(c.Tiles)
	}
	return n
}

func companyName(a *assessment.Assessment) string {
	if a == nil || a.CompanyName == "" {
		return "..."
	}
	return a.CompanyName
}
