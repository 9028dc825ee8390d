// Package search composes the query pipeline: token resolution, synonym
// expansion and refinement compilation on the way in, caching, pagination,
// facet ordering and enrichment on the way out.
package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mpavkov/search-refinery/internal/backend"
	"github.com/mpavkov/search-refinery/internal/datefmt"
	"github.com/mpavkov/search-refinery/internal/domain"
	"github.com/mpavkov/search-refinery/internal/enrich"
	"github.com/mpavkov/search-refinery/internal/refine"
	"github.com/mpavkov/search-refinery/internal/synonym"
	"github.com/mpavkov/search-refinery/internal/token"
)

const suggestionCount = 10

// Service carries the stateless pipeline dependencies. Sessions created from
// it share these dependencies but own their cache individually.
type Service struct {
	backend      backend.Searcher
	tokens       *token.Resolver
	dates        *datefmt.Formatter
	enricher     *enrich.Enricher
	encodeTokens bool
}

type Option func(*Service)

func WithTokenResolver(r *token.Resolver) Option {
	return func(s *Service) { s.tokens = r }
}

func WithEnricher(e *enrich.Enricher) Option {
	return func(s *Service) { s.enricher = e }
}

// WithTokenEncoding percent-encodes taxonomy refinement tokens, required for
// transports that serialize the request into an ASCII-safe query string.
func WithTokenEncoding(encode bool) Option {
	return func(s *Service) { s.encodeTokens = encode }
}

func NewService(b backend.Searcher, dates *datefmt.Formatter, opts ...Option) *Service {
	s := &Service{
		backend: b,
		dates:   dates,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) NewSession(cfg Config) *Session {
	return &Session{svc: s, cfg: cfg}
}

// VerticalCounts exposes the per-vertical count batch of the enricher.
func (s *Service) VerticalCounts(ctx context.Context, queryText string, verticals []domain.Vertical, enableQueryRules bool) ([]domain.VerticalCount, error) {
	if s.enricher == nil {
		return nil, nil
	}
	return s.enricher.VerticalCounts(ctx, queryText, verticals, enableQueryRules)
}

// buildRequest compiles the session configuration plus query text into one
// backend request. The raw text gets the synonym expansion, the template gets
// the token resolution; the two run on disjoint inputs.
func (s *Service) buildRequest(ctx context.Context, cfg Config, text string) *backend.Request {
	req := &backend.Request{
		QueryText:        synonym.Expand(text, cfg.Synonyms),
		SourceID:         cfg.SourceID,
		SortList:         cfg.SortList,
		EnableQueryRules: cfg.EnableQueryRules,
		RowLimit:         cfg.rowLimit(),
		SelectFields:     cfg.SelectedFields,
		TrimDuplicates:   false,
		ClientType:       backend.ClientType,
		Properties:       backend.DefaultProperties(),
	}

	req.QueryTemplate = cfg.QueryTemplate
	if s.tokens != nil && cfg.QueryTemplate != "" {
		req.QueryTemplate = s.tokens.Resolve(ctx, cfg.QueryTemplate)
	}

	if len(cfg.Refiners) > 0 {
		req.Refiners = strings.Join(cfg.refinerNames(), ",")
	}

	if len(cfg.RefinementFilters) > 0 {
		req.RefinementFilters = refine.Compile(cfg.RefinementFilters, s.encodeTokens)
	}

	return req
}

// Suggest returns ranked query completions in a single round trip. Embedded
// single quotes are doubled so the text survives the backend's quoting.
func (s *Service) Suggest(ctx context.Context, text string) ([]string, error) {
	req := &backend.SuggestRequest{
		QueryText:       strings.ReplaceAll(text, "'", "''"),
		Count:           suggestionCount,
		PrefixMatch:     true,
		HitHighlighting: true,
	}

	suggestions, err := s.backend.Suggest(ctx, req)
	if err != nil {
		slog.Error("Suggest failed", "query", text, "error", err)
		return nil, err
	}

	return suggestions, nil
}
