package synonym

import (
	"regexp"
	"strings"
)

// Strips structured query-language constructs before term extraction:
// negations, property filters with comparison operators, parenthesized
// groups and boolean keywords. Applied to a working copy only.
var structuredRegex = regexp.MustCompile(
	`(-\w+)|(-"\w+.*?")|(-?\w+[:=<>]+\w+)|(-?\w+[:=<>]+".*?")|((\w+)?\(.*?\))|(AND)|(OR)|(NOT)`)

// Splits the stripped text into quoted phrases or whitespace-delimited words.
var termRegex = regexp.MustCompile(`("[^"]+"|[^"\s]+)`)

// Expand rewrites every table-matching free-text term of query into a
// parenthesized OR-disjunction of the term and its synonyms, each quoted.
// Structured filter syntax never participates in expansion. Replacement is a
// literal first-occurrence substring substitution: a term appearing several
// times is only expanded at its first textual occurrence. That substring
// semantic is part of the contract, not an accident.
func Expand(query string, table Table) string {
	if len(table) == 0 {
		return query
	}

	clean := structuredRegex.ReplaceAllString(query, "")
	parts := termRegex.FindAllString(clean, -1)

	seen := make(map[string]bool, len(parts))
	for _, part := range parts {
		term := strings.ToLower(part)
		if seen[term] {
			continue
		}
		seen[term] = true

		synonyms, ok := table[term]
		if !ok {
			continue
		}

		expanded := "(" + formatSynonym(part) + " OR " + formatSynonymQuery(synonyms) + ")"
		query = strings.Replace(query, part, expanded, 1)
	}

	return query
}

// formatSynonym quotes a single term, stripping any quotes it already has.
func formatSynonym(value string) string {
	value = strings.TrimSpace(strings.ReplaceAll(strings.TrimSpace(value), `"`, ""))
	return `"` + value + `"`
}

func formatSynonymQuery(items []string) string {
	quoted := make([]string, 0, len(items))
	for _, item := range items {
		if len(item) > 0 {
			quoted = append(quoted, formatSynonym(item))
		}
	}
	return strings.Join(quoted, " OR ")
}
