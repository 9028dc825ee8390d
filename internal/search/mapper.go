package search

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mpavkov/search-refinery/internal/backend"
	"github.com/mpavkov/search-refinery/internal/domain"
)

// cellValue converts one wire cell into a tagged value using the backend's
// declared value type. Anything that fails to parse stays a string; result
// rows are heterogeneous and a bad cell must never fail the page.
func cellValue(cell backend.Cell) domain.FieldValue {
	switch normalizeValueType(cell.ValueType) {
	case "date":
		if t, err := time.Parse(time.RFC3339, cell.Value); err == nil {
			return domain.DateValue(t)
		}
	case "number":
		if n, err := strconv.ParseFloat(cell.Value, 64); err == nil {
			return domain.NumberValue(n)
		}
	case "boolean":
		if b, err := strconv.ParseBool(cell.Value); err == nil {
			return domain.BoolValue(b)
		}
	}
	return domain.StringValue(cell.Value)
}

// normalizeValueType folds both our own tags and Edm.* style backend type
// names onto the tagged value kinds.
func normalizeValueType(valueType string) string {
	switch strings.ToLower(valueType) {
	case "date", "edm.datetime", "edm.datetimeoffset":
		return "date"
	case "number", "edm.double", "edm.decimal", "edm.int32", "edm.int64":
		return "number"
	case "boolean", "edm.boolean":
		return "boolean"
	default:
		return "string"
	}
}

// stableSortBy sorts in place by an integer key, preserving the relative
// order of equal keys.
func stableSortBy[T any](items []T, key func(T) int) {
	sort.SliceStable(items, func(i, j int) bool {
		return key(items[i]) < key(items[j])
	})
}
