package main

import (
	"fmt"
	"strings"

	"leadscope/cmd/leadscope/ui"
	"leadscope/internal/scope"

	"github.com/spf13/cobra"
)

// catalogCmd lists the transformation scope catalog.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the scope catalog categories and tiles",
	Args:  cobra.NoArgs,
	RunE:  runCatalog,
}

func init() {
	catalogCmd.Flags().BoolVar(&rawMarkdown, "raw", false, "Print markdown without terminal rendering")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Scope catalog (%d tiles)\n\n", scope.TileCount()))
	for _, cat := range scope.Categories() {
		sb.WriteString(fmt.Sprintf("## %s\n\n", cat.Name))
		sb.WriteString("| ID | Name |\n|---|---|\n")
		for _, t := range cat.Tiles {
			sb.WriteString(fmt.Sprintf("| %s | %s |\n", t.ID, t.Name))
		}
		sb.WriteString("\n")
	}

	style := "light"
	if ui.ThemeByName(theme).IsDark {
		style = "dark"
	}
	out, err := renderMarkdown(sb.String(), style)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
