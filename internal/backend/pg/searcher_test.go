package pg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpavkov/search-refinery/internal/backend"
	"github.com/mpavkov/search-refinery/internal/domain"
)

func TestBuildWhere_TextOnly(t *testing.T) {
	s := &Searcher{}

	where, args := s.buildWhere(&backend.Request{QueryText: "budget"})

	assert.Equal(t, `search_vector @@ websearch_to_tsquery('english', $1)`, where)
	assert.Equal(t, []any{"budget"}, args)
}

func TestBuildWhere_OrFilterUsesAny(t *testing.T) {
	s := &Searcher{}

	where, args := s.buildWhere(&backend.Request{
		QueryText:         "budget",
		RefinementFilters: []string{"FileType:OR(docx,pdf)"},
	})

	assert.Contains(t, where, "fields->>$2 = ANY($3)")
	require.Len(t, args, 3)
	assert.Equal(t, "FileType", args[1])
	assert.Equal(t, []string{"docx", "pdf"}, args[2])
}

func TestBuildWhere_AndFilterAddsClausePerToken(t *testing.T) {
	s := &Searcher{}

	where, args := s.buildWhere(&backend.Request{
		QueryText:         "budget",
		RefinementFilters: []string{"Tags:AND(t1,t2)"},
	})

	assert.Contains(t, where, "fields->>$2 = $3")
	assert.Contains(t, where, "fields->>$4 = $5")
	assert.Equal(t, []any{"budget", "Tags", "t1", "Tags", "t2"}, args)
}

func TestBuildWhere_MalformedConditionSkipped(t *testing.T) {
	s := &Searcher{}

	where, args := s.buildWhere(&backend.Request{
		QueryText:         "budget",
		RefinementFilters: []string{"not-a-condition"},
	})

	assert.Equal(t, `search_vector @@ websearch_to_tsquery('english', $1)`, where)
	assert.Len(t, args, 1)
}

func TestOrderBy(t *testing.T) {
	s := &Searcher{}

	assert.Equal(t,
		`ts_rank(search_vector, websearch_to_tsquery('english', $1)) DESC`,
		s.orderBy(&backend.Request{}))

	assert.Equal(t,
		`fields->>'Created' DESC, fields->>'Title' ASC`,
		s.orderBy(&backend.Request{SortList: []domain.Sort{
			{Field: "Created", Direction: domain.SortDescending},
			{Field: "Title", Direction: domain.SortAscending},
		}}))
}

func TestToRow_SortedCellsWithTypes(t *testing.T) {
	row := toRow(map[string]any{
		"title":    "Annual Report",
		"size":     float64(1024),
		"archived": true,
		"created":  "2023-10-05T14:30:00Z",
	})

	require.Len(t, row.Cells, 4)
	assert.Equal(t, backend.Cell{Key: "archived", Value: "true", ValueType: "boolean"}, row.Cells[0])
	assert.Equal(t, backend.Cell{Key: "created", Value: "2023-10-05T14:30:00Z", ValueType: "date"}, row.Cells[1])
	assert.Equal(t, backend.Cell{Key: "size", Value: "1024", ValueType: "number"}, row.Cells[2])
	assert.Equal(t, backend.Cell{Key: "title", Value: "Annual Report", ValueType: "string"}, row.Cells[3])
}
