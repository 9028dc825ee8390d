// Package token substitutes context placeholders inside a query template
// before it is sent to the backend.
package token

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ItemFetcher loads the record backing the current page. The fetch may be a
// remote call, so the resolver invokes it at most once per Resolve call no
// matter how many {Page.*} placeholders the template contains.
type ItemFetcher interface {
	FetchCurrentItem(ctx context.Context) (map[string]any, error)
}

// Resolver substitutes placeholder tokens in a query template. All resolution
// inputs are injected: the item fetcher, the ambient site/page properties,
// the current request's query parameters and the clock.
type Resolver struct {
	items   ItemFetcher
	ambient map[string]string
	params  url.Values
	now     func() time.Time
}

type ResolverOption func(*Resolver)

func WithItemFetcher(f ItemFetcher) ResolverOption {
	return func(r *Resolver) { r.items = f }
}

func WithAmbientProperties(props map[string]string) ResolverOption {
	return func(r *Resolver) { r.ambient = props }
}

func WithQueryParams(params url.Values) ResolverOption {
	return func(r *Resolver) { r.params = params }
}

func WithClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) { r.now = now }
}

func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve substitutes every recognized placeholder in the template. Families
// use disjoint prefixes so each span resolves independently. A failed item
// fetch is logged and leaves the {Page.*} spans unresolved; the other
// families still resolve. Unknown placeholders pass through unchanged.
func (r *Resolver) Resolve(ctx context.Context, template string) string {
	placeholders := Scan(template)
	if len(placeholders) == 0 {
		return template
	}

	var item map[string]any
	itemFetched := false
	itemFailed := false

	var sb strings.Builder
	pos := 0

	for _, p := range placeholders {
		sb.WriteString(template[pos:p.Start])
		pos = p.End

		switch p.Family {
		case FamilyPage:
			if !itemFetched && !itemFailed {
				var err error
				item, err = r.fetchItem(ctx)
				if err != nil {
					slog.Error("Failed to fetch current item for page tokens", "error", err)
					itemFailed = true
				} else {
					itemFetched = true
				}
			}
			if itemFailed {
				sb.WriteString(p.Raw)
			} else {
				sb.WriteString(r.resolvePageField(item, p.Field))
			}
		case FamilyCurrentDate:
			sb.WriteString(strconv.Itoa(r.now().Day()))
		case FamilyCurrentMonth:
			sb.WriteString(strconv.Itoa(int(r.now().Month())))
		case FamilyCurrentYear:
			sb.WriteString(strconv.Itoa(r.now().Year()))
		case FamilyQueryString:
			sb.WriteString(r.params.Get(p.Field))
		case FamilyPageContext:
			sb.WriteString(r.ambient[p.Field])
		default:
			sb.WriteString(p.Raw)
		}
	}

	sb.WriteString(template[pos:])
	return sb.String()
}

func (r *Resolver) fetchItem(ctx context.Context) (map[string]any, error) {
	if r.items == nil {
		return nil, fmt.Errorf("no item fetcher configured")
	}
	return r.items.FetchCurrentItem(ctx)
}

// resolvePageField resolves one {Page.<field>} span against the fetched item.
// A ".Label" or ".TermID" suffix selects a sub-property of a multi-valued
// entry; entries are joined with commas. Values containing whitespace are
// quoted so they stay a single query token.
func (r *Resolver) resolvePageField(item map[string]any, field string) string {
	var resolved string

	if strings.Contains(field, ".Label") || strings.Contains(field, ".TermID") {
		parts := strings.SplitN(field, ".", 2)
		resolved = resolveTermField(item[parts[0]], parts[1])
	} else {
		resolved = stringify(item[field])
	}

	if strings.ContainsAny(resolved, " \t") {
		resolved = `"` + resolved + `"`
	}

	return resolved
}

func resolveTermField(value any, sub string) string {
	switch v := value.(type) {
	case []any:
		parts := make([]string, 0, len(v))
		for _, entry := range v {
			if m, ok := entry.(map[string]any); ok {
				parts = append(parts, stringify(m[sub]))
			}
		}
		return strings.Join(parts, ",")
	case map[string]any:
		return stringify(v[sub])
	default:
		return ""
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
