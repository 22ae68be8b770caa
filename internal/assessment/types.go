// Package assessment talks to the external assessment provider and holds the
// observable state of the most recent fetch.
package assessment

// PainCard is a business problem surfaced for the company, tagged with the
// scope tiles it implies. Title is unique within one assessment.
type PainCard struct {
	Title              string   `json:"title"`
	Blurb              string   `json:"blurb"`
	TriggeredTiles     []string `json:"triggered_tiles"`
	TriggeringKeywords []string `json:"triggering_keywords"`
}

// Assessment is the provider payload for one ticker. It is treated as
// immutable once returned.
type Assessment struct {
	PainCards          []PainCard        `json:"pain_cards"`
	ScopeSummary       string            `json:"scope_summary"`
	ActivatedTiles     []string          `json:"activated_tiles"`
	AllTiles           map[string]string `json:"all_tiles"`
	Industry           string            `json:"industry,omitempty"`
	Revenue            *float64          `json:"revenue,omitempty"`
	ClassifiedIndustry string            `json:"classified_industry,omitempty"`
	GeoScope           string            `json:"geo_scope,omitempty"`
	CompanyName        string            `json:"company_name,omitempty"`
}

// Titles returns the pain card titles in card order.
func (a *Assessment) Titles() []string {
	if a == nil {
		return nil
	}
	titles := make([]string, len(a.PainCards))
	for i, c := range a.PainCards {
		titles[i] = c.Title
	}
	return titles
}

// TileName resolves a tile ID through the provider's all_tiles map.
func (a *Assessment) TileName(id string) (string, bool) {
	if a == nil || a.AllTiles == nil {
		return "", false
	}
	name, ok := a.AllTiles[id]
	return name, ok
}
