// Package refine compiles selected refinement filters into backend filter
// condition strings.
package refine

import (
	"net/url"
	"strings"

	"github.com/mpavkov/search-refinery/internal/domain"
)

// TaxonomyMarker flags hex-encoded taxonomy tokens. Such tokens must be
// percent-encoded for transports that require ASCII-safe query strings.
const TaxonomyMarker = "ǂǂ"

// Compile turns selected filters into one condition string per filter,
// preserving input order. A single value compiles to "Name:token", multiple
// values to "Name:OP(t1,t2)". Filters with no values are skipped.
func Compile(filters []domain.RefinementFilter, encodeTokens bool) []string {
	var conditions []string

	for _, filter := range filters {
		switch {
		case len(filter.Values) > 1:
			tokens := make([]string, 0, len(filter.Values))
			for _, value := range filter.Values {
				tokens = append(tokens, encodeToken(value.Token, encodeTokens))
			}
			conditions = append(conditions,
				filter.FilterName+":"+string(filter.Operator)+"("+strings.Join(tokens, ",")+")")
		case len(filter.Values) == 1:
			conditions = append(conditions,
				filter.FilterName+":"+encodeToken(filter.Values[0].Token, encodeTokens))
		}
	}

	return conditions
}

func encodeToken(token string, encode bool) string {
	if encode && strings.Contains(token, TaxonomyMarker) {
		return url.QueryEscape(token)
	}
	return token
}
