package search

import (
	"github.com/mpavkov/search-refinery/internal/domain"
	"github.com/mpavkov/search-refinery/internal/synonym"
)

// DefaultRowLimit applies when the configuration does not set one.
const DefaultRowLimit = 50

// Config is the immutable query configuration of a session. Build a new
// value per configuration change instead of mutating a shared instance, so
// in-flight requests never observe a half-updated state.
type Config struct {
	QueryTemplate     string
	SelectedFields    []string
	SourceID          string
	SortList          []domain.Sort
	EnableQueryRules  bool
	RowLimit          int
	Refiners          []domain.RefinerConfig
	RefinementFilters []domain.RefinementFilter
	Synonyms          synonym.Table
}

func (c Config) rowLimit() int {
	if c.RowLimit > 0 {
		return c.RowLimit
	}
	return DefaultRowLimit
}

func (c Config) refinerNames() []string {
	names := make([]string, 0, len(c.Refiners))
	for _, r := range c.Refiners {
		names = append(names, r.RefinerName)
	}
	return names
}
