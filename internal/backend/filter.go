package backend

import (
	"fmt"
	"net/url"
	"strings"
)

// Filter is a compiled refinement condition decomposed back into its parts so
// structured backends can translate it natively.
type Filter struct {
	Name     string
	Operator string // "" for single-value conditions
	Tokens   []string
}

// ParseFilter decomposes a compiled condition string, either "Name:token" or
// "Name:OP(t1,t2)". Percent-encoded tokens are decoded.
func ParseFilter(condition string) (Filter, error) {
	name, rest, found := strings.Cut(condition, ":")
	if !found || name == "" || rest == "" {
		return Filter{}, fmt.Errorf("malformed refinement condition %q", condition)
	}

	open := strings.IndexByte(rest, '(')
	if open > 0 && strings.HasSuffix(rest, ")") {
		op := rest[:open]
		inner := rest[open+1 : len(rest)-1]
		if inner == "" {
			return Filter{}, fmt.Errorf("refinement condition %q has no tokens", condition)
		}

		parts := strings.Split(inner, ",")
		tokens := make([]string, 0, len(parts))
		for _, p := range parts {
			tokens = append(tokens, decodeToken(p))
		}

		return Filter{Name: name, Operator: op, Tokens: tokens}, nil
	}

	return Filter{Name: name, Tokens: []string{decodeToken(rest)}}, nil
}

func decodeToken(token string) string {
	if strings.Contains(token, "%") {
		if decoded, err := url.QueryUnescape(token); err == nil {
			return decoded
		}
	}
	return token
}
