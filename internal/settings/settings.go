// Package settings loads the pipeline configuration: query template,
// refiners, synonyms and verticals.
package settings

import (
	"fmt"
	"os"

	"github.com/mpavkov/search-refinery/internal/domain"
	"github.com/mpavkov/search-refinery/internal/search"
	"github.com/mpavkov/search-refinery/internal/synonym"
	"gopkg.in/yaml.v3"
)

type Settings struct {
	QueryTemplate    string                 `yaml:"queryTemplate"`
	SelectedFields   []string               `yaml:"selectedFields"`
	SourceID         string                 `yaml:"sourceId"`
	SortList         []string               `yaml:"sortList"`
	EnableQueryRules bool                   `yaml:"enableQueryRules"`
	RowLimit         int                    `yaml:"rowLimit"`
	Refiners         []domain.RefinerConfig `yaml:"refiners"`
	Synonyms         []synonym.Entry        `yaml:"synonyms"`
	Verticals        []domain.Vertical      `yaml:"verticals"`
}

func LoadFromFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse settings YAML: %w", err)
	}

	if s.RowLimit < 0 {
		return nil, fmt.Errorf("rowLimit must not be negative, got %d", s.RowLimit)
	}

	for i, r := range s.Refiners {
		if r.RefinerName == "" {
			return nil, fmt.Errorf("refiner at index %d has no name", i)
		}
	}

	seen := make(map[string]bool)
	for i, v := range s.Verticals {
		if v.Key == "" {
			return nil, fmt.Errorf("vertical at index %d has no key", i)
		}
		if seen[v.Key] {
			return nil, fmt.Errorf("duplicate vertical key %q", v.Key)
		}
		seen[v.Key] = true
	}

	for i, entry := range s.Synonyms {
		if entry.Term == "" {
			return nil, fmt.Errorf("synonym entry at index %d has no term", i)
		}
	}

	return &s, nil
}

// SearchConfig compiles the settings into an immutable session
// configuration. The synonym table is built once here, per configuration
// change, not per query.
func (s *Settings) SearchConfig() search.Config {
	return search.Config{
		QueryTemplate:    s.QueryTemplate,
		SelectedFields:   s.SelectedFields,
		SourceID:         s.SourceID,
		SortList:         domain.ParseSortList(s.SortList),
		EnableQueryRules: s.EnableQueryRules,
		RowLimit:         s.RowLimit,
		Refiners:         s.Refiners,
		Synonyms:         synonym.BuildTable(s.Synonyms),
	}
}
