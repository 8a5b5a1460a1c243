// Package filter narrows the schedule table to the user's category and
// builder selection.
package filter

import (
	"scheduleboard/server/internal/models"
)

// Set is an inclusion set of column values.
type Set map[string]struct{}

// NewSet builds a set from values. NewSet() is an empty set that admits nothing.
func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s Set) Contains(v string) bool {
	_, ok := s[v]
	return ok
}

// Selection holds the category and builder inclusion sets. A nil set admits
// every value, an empty non-nil set admits none.
type Selection struct {
	Categories Set
	Builders   Set
}

// DefaultSelection selects every distinct category and builder in records.
func DefaultSelection(records []models.Record) Selection {
	opts := Options(records)
	return Selection{
		Categories: NewSet(opts.Categories...),
		Builders:   NewSet(opts.Builders...),
	}
}

// Matches reports whether rec passes both inclusion sets.
func (s Selection) Matches(rec models.Record) bool {
	if s.Categories != nil && !s.Categories.Contains(rec.Category) {
		return false
	}
	if s.Builders != nil && !s.Builders.Contains(rec.Builder) {
		return false
	}
	return true
}

// Apply returns the records matching sel in their original order. The input
// slice is never modified and the result never aliases it.
func Apply(records []models.Record, sel Selection) []models.Record {
	filtered := make([]models.Record, 0, len(records))
	for _, rec := range records {
		if sel.Matches(rec) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// Options lists the distinct categories and builders in first-seen order.
func Options(records []models.Record) models.FilterOptions {
	opts := models.FilterOptions{
		Categories: []string{},
		Builders:   []string{},
	}
	seenCategory := make(map[string]bool)
	seenBuilder := make(map[string]bool)
	for _, rec := range records {
		if !seenCategory[rec.Category] {
			seenCategory[rec.Category] = true
			opts.Categories = append(opts.Categories, rec.Category)
		}
		if !seenBuilder[rec.Builder] {
			seenBuilder[rec.Builder] = true
			opts.Builders = append(opts.Builders, rec.Builder)
		}
	}
	return opts
}
