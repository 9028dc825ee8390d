// Package enrich post-processes result rows with correlated batch requests:
// per-row file icons and per-vertical result counts.
package enrich

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mpavkov/search-refinery/internal/backend"
	"github.com/mpavkov/search-refinery/internal/domain"
	"github.com/mpavkov/search-refinery/pkg/batch"
)

type Enricher struct {
	icons    backend.IconResolver
	searcher backend.Searcher
}

func NewEnricher(icons backend.IconResolver, searcher backend.Searcher) *Enricher {
	return &Enricher{icons: icons, searcher: searcher}
}

// MapIcons attaches an IconSrc field to every row whose filename resolved to
// an icon. One logical batch round trip serves all rows; responses correlate
// strictly by input index, so N rows in always means N rows out with row i
// unchanged or enriched in place.
func (e *Enricher) MapIcons(ctx context.Context, rows []*domain.ResultRow) ([]*domain.ResultRow, error) {
	if e.icons == nil || len(rows) == 0 {
		return rows, nil
	}

	filenames := make([]string, len(rows))
	for i, row := range rows {
		filenames[i] = iconLookupKey(row)
	}

	icons, err := e.icons.ResolveIcons(ctx, filenames)
	if err != nil {
		slog.Error("Icon batch failed", "rows", len(rows), "error", err)
		return nil, err
	}

	for i, icon := range icons {
		if icon != "" {
			rows[i].Set("IconSrc", domain.StringValue(icon))
		}
	}

	return rows, nil
}

// iconLookupKey derives the filename used for icon resolution: the Filename
// field when present, else a bare extension. Quote characters are stripped
// and any query-string suffix removed, both break the icon lookup.
func iconLookupKey(row *domain.ResultRow) string {
	filename := row.GetString("Filename")
	if filename == "" {
		if ext := row.GetString("FileExtension"); ext != "" {
			filename = "." + ext
		}
	}
	if filename == "" {
		return ""
	}

	filename = strings.NewReplacer("'", "", "’", "", "‘", "").Replace(filename)
	if idx := strings.IndexByte(filename, '?'); idx != -1 {
		filename = filename[:idx]
	}

	return filename
}

// VerticalCounts fetches the total row count of each vertical for the given
// query text. All member requests run within one batch; counts merge back by
// input index. A count entry is only emitted when the backend returned a
// usable total and the query text is non-empty, a GET with empty text still
// matches rows and would report a bogus count.
func (e *Enricher) VerticalCounts(ctx context.Context, queryText string, verticals []domain.Vertical, enableQueryRules bool) ([]domain.VerticalCount, error) {
	if len(verticals) == 0 {
		return nil, nil
	}

	// Query rules only populate the primary result block when at least one
	// row is requested.
	rowLimit := 0
	if enableQueryRules {
		rowLimit = 1
	}

	reqs := make([]*backend.Request, 0, len(verticals))
	for _, vertical := range verticals {
		reqs = append(reqs, &backend.Request{
			QueryText:        queryText,
			QueryTemplate:    vertical.QueryTemplate,
			SourceID:         vertical.SourceID,
			RowLimit:         rowLimit,
			EnableQueryRules: enableQueryRules,
			TrimDuplicates:   false,
			ClientType:       backend.ClientType,
			Properties:       backend.DefaultProperties(),
		})
	}

	responses, err := e.searchBatch(ctx, reqs)
	if err != nil {
		slog.Error("Vertical count batch failed", "verticals", len(verticals), "error", err)
		return nil, err
	}

	var counts []domain.VerticalCount
	for i, resp := range responses {
		if resp == nil || resp.Primary == nil {
			continue
		}
		if queryText == "" {
			continue
		}
		counts = append(counts, domain.VerticalCount{
			VerticalKey: verticals[i].Key,
			Count:       resp.Primary.TotalRows,
		})
	}

	return counts, nil
}

func (e *Enricher) searchBatch(ctx context.Context, reqs []*backend.Request) ([]*backend.Response, error) {
	if batcher, ok := e.searcher.(backend.BatchSearcher); ok {
		return batcher.SearchBatch(ctx, reqs)
	}

	return batch.Run(ctx, reqs, func(ctx context.Context, req *backend.Request) (*backend.Response, error) {
		return e.searcher.Search(ctx, req)
	})
}
