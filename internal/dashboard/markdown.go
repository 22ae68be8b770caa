package dashboard

import (
	"fmt"
	"strings"
)

// Markdown renders the dashboard as a markdown document.
func Markdown(d Dashboard) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", d.Title))
	sb.WriteString(fmt.Sprintf("**%s:** %s\n\n", d.Industry.Label, d.Industry.Value))

	for _, sec := range d.Sections {
		sb.WriteString(fmt.Sprintf("## %s\n\n", sec.Title))
		for _, f := range sec.Fields {
			sb.WriteString(fmt.Sprintf("- **%s** %s\n", f.Label, f.Value))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Business Transformation Scope\n\n")
	sb.WriteString(fmt.Sprintf("> %s\n\n", d.Headline))

	for _, cat := range d.Categories {
		sb.WriteString(fmt.Sprintf("### %s (%d/%d)\n\n", cat.Name, cat.ActiveCount, len(cat.Tiles)))
		for _, tile := range cat.Tiles {
			mark := " "
			if tile.Active {
				mark = "x"
			}
			sb.WriteString(fmt.Sprintf("- [%s] %s\n", mark, tile.Name))
		}
		sb.WriteString("\n")
	}

	if len(d.Uncataloged) > 0 {
		sb.WriteString("### Other activated tiles\n\n")
		for _, tile := range d.Uncataloged {
			sb.WriteString(fmt.Sprintf("- [x] %s (`%s`)\n", tile.Name, tile.ID))
		}
		sb.WriteString("\n")
	}

	if d.ScopeSummary != "" {
		sb.WriteString("## Summary\n\n")
		sb.WriteString(d.ScopeSummary)
		sb.WriteString("\n")
	}

	return sb.String()
}
