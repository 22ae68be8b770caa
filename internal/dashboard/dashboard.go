// Package dashboard derives the final transformation-scope summary shown at
// the end of the wizard. It is pure presentation data; rendering lives with
// the callers.
package dashboard

import (
	"fmt"

	"leadscope/internal/assessment"
	"leadscope/internal/scope"
	"leadscope/internal/wizard"
)

// Field is a labelled value.
type Field struct {
	Label string
	Value string
}

// Section is a titled group of fields.
type Section struct {
	Title  string
	Fields []Field
}

// TileView is a catalog tile with its activation state.
type TileView struct {
	ID     string
	Name   string
	Active bool
}

// CategoryView is a catalog category with tile states.
type CategoryView struct {
	Name        string
	Tiles       []TileView
	ActiveCount int
}

// Dashboard is the derived summary for one assessment and selection.
type Dashboard struct {
	Title      string
	Industry   Field
	Sections   []Section
	Headline   string
	ScopeCount int
	Categories []CategoryView
	// Uncataloged lists activated tiles missing from the catalog.
	Uncataloged  []TileView
	ScopeSummary string
}

// Build derives the dashboard. a may be nil, in which case company fields
// fall back to N/A.
func Build(a *assessment.Assessment, answers wizard.UserAnswers, activated []string) Dashboard {
	var (
		company, industry, summary string
		revenue                    *float64
	)
	if a != nil {
		company = a.CompanyName
		industry = a.ClassifiedIndustry
		revenue = a.Revenue
		summary = a.ScopeSummary
	}
	if company == "" {
		company = "..."
	}

	active := make(map[string]bool, len(activated))
	for _, id := range activated {
		active[id] = true
	}

	d := Dashboard{
		Title:    fmt.Sprintf("The %s Company", company),
		Industry: Field{Label: "Industry", Value: orNA(industry)},
		Sections: []Section{
			{
				Title: "Financial Profile",
				Fields: []Field{
					{Label: "Revenue", Value: FormatRevenue(revenue)},
					{Label: "Geographical Scope", Value: orNA(answers.GeoScope)},
				},
			},
			{
				Title: "Additional Considerations",
				Fields: []Field{
					{Label: "Is your current ERP SAP?", Value: orNA(answers.IsSAP)},
					{Label: "Is your infrastructure currently On-prem?", Value: orNA(answers.IsOnPrem)},
				},
			},
		},
		ScopeCount:   len(active),
		Headline:     fmt.Sprintf("Phase 1 Scope includes %d key modules based on your selections.", len(active)),
		ScopeSummary: summary,
	}

	for _, cat := range scope.Categories() {
		cv := CategoryView{Name: cat.Name}
		for _, tile := range cat.Tiles {
			tv := TileView{ID: tile.ID, Name: tile.Name, Active: active[tile.ID]}
			if tv.Active {
				cv.ActiveCount++
			}
			cv.Tiles = append(cv.Tiles, tv)
		}
		d.Categories = append(d.Categories, cv)
	}

	seen := make(map[string]bool)
	for _, id := range activated {
		if _, ok := scope.Lookup(id); ok || seen[id] {
			continue
		}
		seen[id] = true
		name := id
		if n, ok := a.TileName(id); ok && n != "" {
			name = n
		}
		d.Uncataloged = append(d.Uncataloged, TileView{ID: id, Name: name, Active: true})
	}

	return d
}
