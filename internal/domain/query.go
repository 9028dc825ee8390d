package domain

import (
	"strings"
)

type SortDirection string

const (
	SortAscending  SortDirection = "ascending"
	SortDescending SortDirection = "descending"
)

// Sort is a single field+direction pair of a backend sort list.
type Sort struct {
	Field     string        `yaml:"field" json:"field"`
	Direction SortDirection `yaml:"direction" json:"direction"`
}

// ParseSortList converts "field:ascending" style entries into a sort list.
// A missing or unknown direction defaults to ascending.
func ParseSortList(entries []string) []Sort {
	var sorts []Sort

	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		kvp := strings.SplitN(entry, ":", 2)
		direction := SortAscending
		if len(kvp) == 2 && strings.EqualFold(strings.TrimSpace(kvp[1]), string(SortDescending)) {
			direction = SortDescending
		}

		sorts = append(sorts, Sort{
			Field:     strings.TrimSpace(kvp[0]),
			Direction: direction,
		})
	}

	return sorts
}
