// Package selection tracks which pain cards the user keeps and derives the
// scope tiles those cards activate.
package selection

import (
	"sort"

	"leadscope/internal/assessment"
)

// Set is a set of pain card titles. The zero value is an empty set.
// Copies share storage; use Clone for an independent set.
type Set struct {
	titles map[string]struct{}
}

// New returns a set holding titles.
func New(titles ...string) Set {
	s := Set{titles: make(map[string]struct{}, len(titles))}
	for _, t := range titles {
		s.titles[t] = struct{}{}
	}
	return s
}

// All returns a set holding every card title of a.
func All(a *assessment.Assessment) Set {
	return New(a.Titles()...)
}

// Toggle adds title if absent and removes it if present.
func (s *Set) Toggle(title string) {
	if s.titles == nil {
		s.titles = make(map[string]struct{})
	}
	if _, ok := s.titles[title]; ok {
		delete(s.titles, title)
		return
	}
	s.titles[title] = struct{}{}
}

// Has reports membership.
func (s Set) Has(title string) bool {
	_, ok := s.titles[title]
	return ok
}

// Len returns the number of titles.
func (s Set) Len() int {
	return len(s.titles)
}

// Titles returns the titles sorted.
func (s Set) Titles() []string {
	out := make([]string, 0, len(s.titles))
	for t := range s.titles {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy.
func (s Set) Clone() Set {
	return New(s.Titles()...)
}

// Equal reports whether both sets hold the same titles.
func (s Set) Equal(other Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for t := range s.titles {
		if !other.Has(t) {
			return false
		}
	}
	return true
}

// DeriveActivatedTiles returns the union of TriggeredTiles over the cards
// whose title is selected, deduplicated in first-encounter order. Selected
// titles that match no card are ignored.
func DeriveActivatedTiles(cards []assessment.PainCard, selected Set) []string {
	seen := make(map[string]struct{})
	tiles := []string{}
	for _, card := range cards {
		if !selected.Has(card.Title) {
			continue
		}
		for _, id := range card.TriggeredTiles {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			tiles = append(tiles, id)
		}
	}
	return tiles
}
