// Package pg adapts the backend contract to a PostgreSQL full-text index.
// Documents live in a single table with a JSONB field bag and a tsvector
// column, so the row schema stays caller-configured like every other backend.
package pg

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mpavkov/search-refinery/internal/apperr"
	"github.com/mpavkov/search-refinery/internal/backend"
	"github.com/mpavkov/search-refinery/internal/domain"
)

const facetLimit = 50

type Searcher struct {
	db           *pgxpool.Pool
	suggestField string
}

type SearcherConfig struct {
	SuggestField string // default "title"
}

func NewSearcher(pool *ConnectionPool, cfg SearcherConfig) *Searcher {
	suggestField := cfg.SuggestField
	if suggestField == "" {
		suggestField = "title"
	}
	return &Searcher{db: pool.conn, suggestField: suggestField}
}

func (s *Searcher) Search(ctx context.Context, req *backend.Request) (*backend.Response, error) {
	slog.Info("Executing pg search",
		"query", req.QueryText,
		"row_limit", req.RowLimit,
		"start_row", req.StartRow)

	where, args := s.buildWhere(req)

	var total int
	countSQL := `SELECT COUNT(*) FROM documents WHERE ` + where
	if err := s.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		slog.Error("Failed to count matches", "error", err)
		return nil, apperr.NewTransport("search", fmt.Errorf("count matches: %w", err))
	}

	searchSQL := `
		SELECT fields
		FROM documents
		WHERE ` + where + `
		ORDER BY ` + s.orderBy(req) + `
		LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	rowArgs := append(append([]any{}, args...), req.RowLimit, req.StartRow)

	pgRows, err := s.db.Query(ctx, searchSQL, rowArgs...)
	if err != nil {
		slog.Error("Failed to execute search query", "error", err)
		return nil, apperr.NewTransport("search", err)
	}
	defer pgRows.Close()

	var rows []backend.Row
	for pgRows.Next() {
		var fieldsJSON []byte
		if err := pgRows.Scan(&fieldsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}

		var fields map[string]any
		if err := json.Unmarshal(fieldsJSON, &fields); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document fields: %w", err)
		}

		rows = append(rows, toRow(fields))
	}
	if err := pgRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	refiners, err := s.facetCounts(ctx, req, where, args)
	if err != nil {
		return nil, err
	}

	return &backend.Response{
		Primary: &backend.PrimaryResult{
			Rows:      rows,
			Refiners:  refiners,
			TotalRows: total,
		},
		Request: req,
	}, nil
}

func (s *Searcher) Page(ctx context.Context, prev *backend.Response, page int) (*backend.Response, error) {
	if prev == nil || prev.Request == nil {
		return nil, fmt.Errorf("no paging cursor available")
	}

	paged := *prev.Request
	paged.StartRow = (page - 1) * paged.RowLimit

	return s.Search(ctx, &paged)
}

func (s *Searcher) Suggest(ctx context.Context, req *backend.SuggestRequest) ([]string, error) {
	suggestSQL := `
		SELECT DISTINCT fields->>$1
		FROM documents
		WHERE fields->>$1 ILIKE $2 || '%'
		LIMIT $3`

	rows, err := s.db.Query(ctx, suggestSQL, s.suggestField, req.QueryText, req.Count)
	if err != nil {
		slog.Error("Failed to execute suggest query", "error", err)
		return nil, apperr.NewTransport("suggest", err)
	}
	defer rows.Close()

	var suggestions []string
	for rows.Next() {
		var suggestion string
		if err := rows.Scan(&suggestion); err != nil {
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		suggestions = append(suggestions, suggestion)
	}

	return suggestions, rows.Err()
}

// buildWhere renders the text match plus parsed refinement filters.
// websearch_to_tsquery understands the quoted phrases and OR keywords the
// synonym expansion produces.
func (s *Searcher) buildWhere(req *backend.Request) (string, []any) {
	clauses := []string{`search_vector @@ websearch_to_tsquery('english', $1)`}
	args := []any{req.QueryText}

	for _, condition := range req.RefinementFilters {
		filter, err := backend.ParseFilter(condition)
		if err != nil {
			slog.Warn("Skipping malformed refinement condition", "condition", condition, "error", err)
			continue
		}

		if filter.Operator == string(domain.OperatorAnd) {
			for _, token := range filter.Tokens {
				args = append(args, filter.Name, token)
				clauses = append(clauses,
					fmt.Sprintf("fields->>$%d = $%d", len(args)-1, len(args)))
			}
			continue
		}

		args = append(args, filter.Name, filter.Tokens)
		clauses = append(clauses,
			fmt.Sprintf("fields->>$%d = ANY($%d)", len(args)-1, len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

func (s *Searcher) orderBy(req *backend.Request) string {
	if len(req.SortList) == 0 {
		return `ts_rank(search_vector, websearch_to_tsquery('english', $1)) DESC`
	}

	parts := make([]string, 0, len(req.SortList))
	for _, entry := range req.SortList {
		dir := "ASC"
		if entry.Direction == domain.SortDescending {
			dir = "DESC"
		}
		// Field names come from static configuration, not user input.
		parts = append(parts, fmt.Sprintf("fields->>'%s' %s", entry.Field, dir))
	}

	return strings.Join(parts, ", ")
}

func (s *Searcher) facetCounts(ctx context.Context, req *backend.Request, where string, args []any) ([]backend.RefinerBlock, error) {
	var blocks []backend.RefinerBlock

	for _, name := range splitRefiners(req.Refiners) {
		facetSQL := fmt.Sprintf(`
			SELECT fields->>$%d AS value, COUNT(*) AS count
			FROM documents
			WHERE %s AND fields->>$%d IS NOT NULL
			GROUP BY 1
			ORDER BY 2 DESC, 1 ASC
			LIMIT %d`, len(args)+1, where, len(args)+1, facetLimit)

		facetArgs := append(append([]any{}, args...), name)

		rows, err := s.db.Query(ctx, facetSQL, facetArgs...)
		if err != nil {
			slog.Error("Failed to execute facet query", "refiner", name, "error", err)
			return nil, apperr.NewTransport("search", err)
		}

		block := backend.RefinerBlock{Name: name}
		for rows.Next() {
			var value string
			var count int
			if err := rows.Scan(&value, &count); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan facet value: %w", err)
			}
			block.Entries = append(block.Entries, backend.RefinerEntry{
				Token: value,
				Value: value,
				Count: count,
			})
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("error iterating facet rows: %w", err)
		}

		blocks = append(blocks, block)
	}

	return blocks, nil
}

func toRow(fields map[string]any) backend.Row {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	row := backend.Row{Cells: make([]backend.Cell, 0, len(keys))}
	for _, k := range keys {
		row.Cells = append(row.Cells, toCell(k, fields[k]))
	}
	return row
}

func toCell(key string, value any) backend.Cell {
	switch v := value.(type) {
	case string:
		if _, err := time.Parse(time.RFC3339, v); err == nil {
			return backend.Cell{Key: key, Value: v, ValueType: "date"}
		}
		return backend.Cell{Key: key, Value: v, ValueType: "string"}
	case float64:
		return backend.Cell{Key: key, Value: strconv.FormatFloat(v, 'f', -1, 64), ValueType: "number"}
	case bool:
		return backend.Cell{Key: key, Value: strconv.FormatBool(v), ValueType: "boolean"}
	default:
		raw, _ := json.Marshal(v)
		return backend.Cell{Key: key, Value: string(raw), ValueType: "string"}
	}
}

func splitRefiners(joined string) []string {
	if joined == "" {
		return nil
	}

	var names []string
	for _, name := range strings.Split(joined, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
