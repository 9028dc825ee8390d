package domain

import (
	"encoding/json"
	"strconv"
	"time"
)

// ValueKind tags the type of a single result cell.
type ValueKind int

const (
	KindString ValueKind = iota
	KindNumber
	KindBool
	KindDate
)

// FieldValue is one tagged cell value. Search result rows are heterogeneous
// by definition so we keep the backend value plus its parsed form instead of
// forcing a fixed schema.
type FieldValue struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
	Time time.Time
}

func StringValue(s string) FieldValue { return FieldValue{Kind: KindString, Str: s} }

func NumberValue(n float64) FieldValue {
	return FieldValue{Kind: KindNumber, Num: n, Str: strconv.FormatFloat(n, 'f', -1, 64)}
}

func BoolValue(b bool) FieldValue {
	return FieldValue{Kind: KindBool, Bool: b, Str: strconv.FormatBool(b)}
}

func DateValue(t time.Time) FieldValue {
	return FieldValue{Kind: KindDate, Time: t, Str: t.Format(time.RFC3339)}
}

// String returns the raw backend string form regardless of kind.
func (v FieldValue) String() string { return v.Str }

// ResultRow is an ordered mapping from field name to a tagged value. Field
// order follows backend cell order so templates can iterate deterministically.
type ResultRow struct {
	fields []string
	values map[string]FieldValue
}

func NewResultRow() *ResultRow {
	return &ResultRow{values: make(map[string]FieldValue)}
}

// Set inserts or replaces a field value, preserving first-insertion order.
func (r *ResultRow) Set(field string, value FieldValue) {
	if _, ok := r.values[field]; !ok {
		r.fields = append(r.fields, field)
	}
	r.values[field] = value
}

func (r *ResultRow) Get(field string) (FieldValue, bool) {
	v, ok := r.values[field]
	return v, ok
}

// GetString returns the string form of a field, or "" when absent.
func (r *ResultRow) GetString(field string) string {
	if v, ok := r.values[field]; ok {
		return v.Str
	}
	return ""
}

// Fields returns field names in insertion order.
func (r *ResultRow) Fields() []string {
	out := make([]string, len(r.fields))
	copy(out, r.fields)
	return out
}

func (r *ResultRow) Len() int { return len(r.fields) }

// MarshalJSON renders the row as a flat object using raw string values.
func (r *ResultRow) MarshalJSON() ([]byte, error) {
	obj := make(map[string]string, len(r.fields))
	for _, f := range r.fields {
		obj[f] = r.values[f].Str
	}
	return json.Marshal(obj)
}

// PromotedResult is an editorially curated best-bet injected alongside
// organic matches.
type PromotedResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

type Pagination struct {
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalRows   int `json:"totalRows"`
}

// ResultPage is the structured result set returned to the caller.
type ResultPage struct {
	QueryKeywords   string            `json:"queryKeywords"`
	Rows            []*ResultRow      `json:"rows"`
	Facets          []RefinementFacet `json:"facets"`
	PromotedResults []PromotedResult  `json:"promotedResults,omitempty"`
	Pagination      Pagination        `json:"pagination"`
}
