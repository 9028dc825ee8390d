package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mpavkov/search-refinery/internal/backend"
	"github.com/mpavkov/search-refinery/internal/domain"
)

// Session runs searches for one query configuration and owns the page-1
// response cache used as the paging cursor. The cache is read and replaced as
// a whole object, never partially mutated. A session is not safe for
// concurrent use: callers must serialize new-query and turn-page calls.
type Session struct {
	svc *Service
	cfg Config

	cached    *backend.Response
	cachedKey string
}

// Search executes the pipeline for the given text and one-based page number.
//
// A fresh page-1 backend call happens only when the compiled request differs
// from the cached one; repeating the same query reuses the cache, and pages
// beyond the first are fetched from the cached response's paging cursor
// without re-issuing page 1.
func (s *Session) Search(ctx context.Context, text string, page int) (*domain.ResultPage, error) {
	if page < 1 {
		page = 1
	}

	req := s.svc.buildRequest(ctx, s.cfg, text)

	key, err := fingerprint(req)
	if err != nil {
		return nil, err
	}

	if s.cached == nil || key != s.cachedKey {
		resp, err := s.svc.backend.Search(ctx, req)
		if err != nil {
			slog.Error("Search failed", "query", text, "page", page, "error", err)
			return nil, err
		}
		s.cached = resp
		s.cachedKey = key
	}

	resp := s.cached
	if page > 1 {
		resp, err = s.svc.backend.Page(ctx, s.cached, page)
		if err != nil {
			slog.Error("Page fetch failed", "query", text, "page", page, "error", err)
			return nil, err
		}
	}

	result := &domain.ResultPage{
		QueryKeywords: text,
		Pagination: domain.Pagination{
			CurrentPage: page,
			PageSize:    s.cfg.rowLimit(),
		},
	}

	// A malformed or empty response degrades to an empty page.
	if resp == nil || resp.Primary == nil {
		return result, nil
	}

	rows := make([]*domain.ResultRow, 0, len(resp.Primary.Rows))
	for _, raw := range resp.Primary.Rows {
		rows = append(rows, mapRow(raw))
	}

	if s.svc.enricher != nil {
		rows, err = s.svc.enricher.MapIcons(ctx, rows)
		if err != nil {
			return nil, err
		}
	}

	result.Rows = rows
	result.Facets = s.mapFacets(resp.Primary.Refiners)
	result.PromotedResults = mapPromoted(resp.Secondary)

	// The page-1 response carries the authoritative total, but it may itself
	// have been malformed; fall back to the current page's total then.
	result.Pagination.TotalRows = resp.Primary.TotalRows
	if s.cached.Primary != nil {
		result.Pagination.TotalRows = s.cached.Primary.TotalRows
	}

	return result, nil
}

// mapFacets converts refiner blocks and orders them by the configured
// display order. A facet whose name is absent from the configuration sorts
// with index -1, which places it before all matched facets; that sentinel
// ordering is contractual, do not flip it to sort-last.
func (s *Session) mapFacets(blocks []backend.RefinerBlock) []domain.RefinementFacet {
	names := s.cfg.refinerNames()

	facets := make([]domain.RefinementFacet, 0, len(blocks))
	for _, block := range blocks {
		values := make([]domain.RefinementValue, 0, len(block.Entries))
		for _, entry := range block.Entries {
			values = append(values, domain.RefinementValue{
				Token: s.svc.dates.Prettify(entry.Token),
				Value: s.svc.dates.Prettify(entry.Value),
				Count: entry.Count,
			})
		}
		facets = append(facets, domain.RefinementFacet{
			FilterName: block.Name,
			Values:     values,
		})
	}

	stableSortBy(facets, func(f domain.RefinementFacet) int {
		return indexOf(names, f.FilterName)
	})

	return facets
}

func mapRow(raw backend.Row) *domain.ResultRow {
	row := domain.NewResultRow()
	for _, cell := range raw.Cells {
		row.Set(cell.Key, cellValue(cell))
	}
	return row
}

func mapPromoted(secondary []backend.SecondaryResult) []domain.PromotedResult {
	var promoted []domain.PromotedResult
	for _, block := range secondary {
		for _, result := range block.SpecialTermResults {
			promoted = append(promoted, domain.PromotedResult{
				Title:       result.Title,
				URL:         result.URL,
				Description: result.Description,
			})
		}
	}
	return promoted
}

func fingerprint(req *backend.Request) (string, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("fingerprint request: %w", err)
	}
	return string(raw), nil
}

func indexOf(values []string, value string) int {
	for i, v := range values {
		if v == value {
			return i
		}
	}
	return -1
}
