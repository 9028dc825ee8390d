// Package synonym rewrites free-text query terms into OR-expansions using a
// configured synonym table.
package synonym

import "strings"

// Table maps a lowercase term to its ordered synonym list. Build it once per
// configuration change and treat it as immutable until the next rebuild.
type Table map[string][]string

// Entry is one configured synonym row: a term, a comma-separated synonym
// list and whether the mapping works both ways.
type Entry struct {
	Term     string `yaml:"term" json:"term"`
	Synonyms string `yaml:"synonyms" json:"synonyms"`
	TwoWays  bool   `yaml:"twoWays" json:"twoWays"`
}

// BuildTable converts configured entries into a lookup table. Synonyms are
// lowercased, trimmed and de-quoted. For a two-way entry every synonym also
// maps back to the original term plus the other synonyms, excluding itself.
func BuildTable(entries []Entry) Table {
	table := make(Table, len(entries))

	for _, entry := range entries {
		term := strings.ToLower(entry.Term)
		synonyms := splitSynonyms(entry.Synonyms)

		table[term] = synonyms

		if entry.TwoWays {
			reverse := make([]string, 0, len(synonyms)+1)
			reverse = append(reverse, strings.TrimSpace(term))
			reverse = append(reverse, synonyms...)

			for _, s := range synonyms {
				back := make([]string, 0, len(reverse)-1)
				for _, candidate := range reverse {
					if candidate != s {
						back = append(back, candidate)
					}
				}
				table[strings.ToLower(strings.TrimSpace(s))] = back
			}
		}
	}

	return table
}

func splitSynonyms(value string) []string {
	parts := strings.Split(value, ",")
	synonyms := make([]string, 0, len(parts))
	for _, p := range parts {
		synonyms = append(synonyms, strings.ReplaceAll(strings.TrimSpace(strings.ToLower(p)), `"`, ""))
	}
	return synonyms
}
