package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"leadscope/cmd/leadscope/ui"
	"leadscope/internal/assessment"
	"leadscope/internal/dashboard"
	"leadscope/internal/wizard"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	assessDeselect []string
	assessGeo      string
	assessSAP      string
	assessOnPrem   string
	assessParallel int
	rawMarkdown    bool
)

// assessCmd runs the wizard non-interactively for one or more tickers.
var assessCmd = &cobra.Command{
	Use:   "assess TICKER...",
	Short: "Print the transformation scope dashboard for tickers",
	Long: `Fetches each ticker, selects every pain card except those named with
--deselect, applies the survey answers and prints the dashboard as markdown.

Example:
  leadscope assess NFLX AAPL --geo "Less than 5 countries" --sap No`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAssess,
}

func init() {
	assessCmd.Flags().StringArrayVar(&assessDeselect, "deselect", nil, "Pain card title to leave unselected (repeatable)")
	assessCmd.Flags().StringVar(&assessGeo, "geo", "", "Geographical scope answer")
	assessCmd.Flags().StringVar(&assessSAP, "sap", "", "Is your current ERP SAP? (Yes/No)")
	assessCmd.Flags().StringVar(&assessOnPrem, "onprem", "", "Is your infrastructure currently On-prem? (Yes/No)")
	assessCmd.Flags().IntVarP(&assessParallel, "parallel", "p", 4, "Maximum concurrent fetches")
	assessCmd.Flags().BoolVar(&rawMarkdown, "raw", false, "Print markdown without terminal rendering")
}

// assessOutcome is the result of driving one wizard to its dashboard.
type assessOutcome struct {
	ticker string
	board  dashboard.Dashboard
	err    error
}

func runAssess(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	answers := cfg.Wizard.DefaultAnswers
	for key, value := range map[wizard.AnswerKey]string{
		wizard.AnswerGeoScope: assessGeo,
		wizard.AnswerIsSAP:    assessSAP,
		wizard.AnswerIsOnPrem: assessOnPrem,
	} {
		if value == "" {
			continue
		}
		if err := answers.Set(key, value); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider := newProvider(cfg)
	outcomes := make([]assessOutcome, len(args))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(assessParallel, 1))
	for i, raw := range args {
		g.Go(func() error {
			outcomes[i] = assessTicker(gctx, provider, raw, answers, assessDeselect)
			return nil
		})
	}
	_ = g.Wait()

	style := "light"
	if ui.ThemeByName(cfg.UI.Theme).IsDark {
		style = "dark"
	}

	failed := 0
	for i, o := range outcomes {
		if o.err != nil {
			failed++
			logger.Warn("assessment failed", zap.String("ticker", o.ticker), zap.Error(o.err))
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", o.ticker, o.err)
			continue
		}
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		out, err := renderMarkdown(dashboard.Markdown(o.board), style)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d assessments failed", failed, len(args))
	}
	return nil
}

// assessTicker walks a fresh controller from input to dashboard.
func assessTicker(ctx context.Context, p assessment.Provider, raw string, answers wizard.UserAnswers, deselect []string) assessOutcome {
	c := wizard.New(wizard.WithTicker(raw), wizard.WithAnswers(answers))
	out := assessOutcome{ticker: strings.ToUpper(strings.TrimSpace(raw))}

	req, err := c.Submit()
	if err != nil {
		out.err = err
		return out
	}
	a, err := p.Fetch(ctx, req.Ticker)
	c.Complete(wizard.Result{Seq: req.Seq, Assessment: a, Err: err})
	if err := c.Err(); err != nil {
		out.err = err
		return out
	}

	for _, title := range deselect {
		if c.IsSelected(title) {
			_ = c.ToggleCard(title)
		}
	}
	for _, step := range []func() error{c.Next, c.Next, c.Generate} {
		if err := step(); err != nil {
			out.err = err
			return out
		}
	}

	out.board = dashboard.Build(c.Assessment(), c.Answers(), c.ActivatedTiles())
	return out
}

// renderMarkdown renders md for the terminal unless --raw is set.
func renderMarkdown(md, style string) (string, error) {
	if rawMarkdown {
		return md, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
