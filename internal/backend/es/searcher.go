// Package es adapts the backend contract to an Elasticsearch index.
package es

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/mpavkov/search-refinery/internal/apperr"
	"github.com/mpavkov/search-refinery/internal/backend"
	"github.com/mpavkov/search-refinery/internal/domain"
)

const defaultFacetSize = 50

type ClientConfig struct {
	Addresses    []string
	IndexName    string
	Username     string
	Password     string
	SuggestField string // field used for prefix suggestions, default "title"
}

type Searcher struct {
	client       *elasticsearch.TypedClient
	indexName    string
	suggestField string
}

func NewSearcher(config ClientConfig) (*Searcher, error) {
	cfg := elasticsearch.Config{
		Addresses: config.Addresses,
	}
	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	client, err := elasticsearch.NewTypedClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	suggestField := config.SuggestField
	if suggestField == "" {
		suggestField = "title"
	}

	return &Searcher{
		client:       client,
		indexName:    config.IndexName,
		suggestField: suggestField,
	}, nil
}

func (s *Searcher) Search(ctx context.Context, req *backend.Request) (*backend.Response, error) {
	slog.Info("Executing es search",
		"query", req.QueryText,
		"row_limit", req.RowLimit,
		"start_row", req.StartRow,
		"refiners", req.Refiners)

	query := s.buildQuery(req)

	searchReq := s.client.Search().
		Index(s.indexName).
		Query(query).
		Size(req.RowLimit).
		From(req.StartRow).
		TrackTotalHits(true)

	if aggs := buildAggregations(req); len(aggs) > 0 {
		searchReq = searchReq.Aggregations(aggs)
	}

	for _, sortEntry := range req.SortList {
		order := sortorder.Asc
		if sortEntry.Direction == domain.SortDescending {
			order = sortorder.Desc
		}
		searchReq = searchReq.Sort(&types.SortOptions{
			SortOptions: map[string]types.FieldSort{
				sortEntry.Field: {Order: &order},
			},
		})
	}

	res, err := searchReq.Do(ctx)
	if err != nil {
		slog.Error("Elasticsearch query failed", "error", err, "query", req.QueryText)
		return nil, apperr.NewTransport("search", err)
	}

	primary := &backend.PrimaryResult{
		Rows:     mapHits(res.Hits.Hits),
		Refiners: mapAggregations(req, res.Aggregations),
	}
	if res.Hits.Total != nil {
		primary.TotalRows = int(res.Hits.Total.Value)
	}

	return &backend.Response{Primary: primary, Request: req}, nil
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
	res, err := s.client.Search().
		Index(s.indexName).
		Query(&types.Query{
			MatchPhrasePrefix: map[string]types.MatchPhrasePrefixQuery{
				s.suggestField: {Query: req.QueryText},
			},
		}).
		Size(req.Count).
		Do(ctx)
	if err != nil {
		slog.Error("Elasticsearch suggest failed", "error", err, "query", req.QueryText)
		return nil, apperr.NewTransport("suggest", err)
	}

	suggestions := make([]string, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var source map[string]any
		if err := json.Unmarshal(hit.Source_, &source); err != nil {
			continue
		}
		if text, ok := source[s.suggestField].(string); ok && text != "" {
			suggestions = append(suggestions, text)
		}
	}

	return suggestions, nil
}

// buildQuery combines the free-text query with parsed refinement filters.
func (s *Searcher) buildQuery(req *backend.Request) *types.Query {
	textQuery := types.Query{
		SimpleQueryString: &types.SimpleQueryStringQuery{
			Query: req.QueryText,
		},
	}
	if len(req.SelectFields) > 0 {
		textQuery.SimpleQueryString.Fields = req.SelectFields
	}

	if len(req.RefinementFilters) == 0 {
		return &textQuery
	}

	boolQuery := types.BoolQuery{
		Must: []types.Query{textQuery},
	}

	for _, condition := range req.RefinementFilters {
		filter, err := backend.ParseFilter(condition)
		if err != nil {
			slog.Warn("Skipping malformed refinement condition", "condition", condition, "error", err)
			continue
		}

		if filter.Operator == string(domain.OperatorAnd) {
			for _, token := range filter.Tokens {
				boolQuery.Filter = append(boolQuery.Filter, termQuery(filter.Name, token))
			}
			continue
		}

		if len(filter.Tokens) == 1 {
			boolQuery.Filter = append(boolQuery.Filter, termQuery(filter.Name, filter.Tokens[0]))
		} else {
			boolQuery.Filter = append(boolQuery.Filter, types.Query{
				Terms: &types.TermsQuery{
					TermsQuery: map[string]types.TermsQueryField{
						filter.Name: filter.Tokens,
					},
				},
			})
		}
	}

	return &types.Query{Bool: &boolQuery}
}

func termQuery(field, value string) types.Query {
	return types.Query{
		Term: map[string]types.TermQuery{
			field: {Value: value},
		},
	}
}

func buildAggregations(req *backend.Request) map[string]types.Aggregations {
	names := splitRefiners(req.Refiners)
	if len(names) == 0 {
		return nil
	}

	size := defaultFacetSize
	aggs := make(map[string]types.Aggregations, len(names))
	for _, name := range names {
		field := name
		aggs[name] = types.Aggregations{
			Terms: &types.TermsAggregation{
				Field: &field,
				Size:  &size,
			},
		}
	}

	return aggs
}

func mapHits(hits []types.Hit) []backend.Row {
	rows := make([]backend.Row, 0, len(hits))

	for _, hit := range hits {
		var source map[string]any
		if err := json.Unmarshal(hit.Source_, &source); err != nil {
			continue
		}

		// Source maps are unordered, sort keys for a deterministic row shape.
		keys := make([]string, 0, len(source))
		for k := range source {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		row := backend.Row{Cells: make([]backend.Cell, 0, len(keys))}
		for _, k := range keys {
			row.Cells = append(row.Cells, toCell(k, source[k]))
		}
		rows = append(rows, row)
	}

	return rows
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

func mapAggregations(req *backend.Request, aggs map[string]types.Aggregate) []backend.RefinerBlock {
	var blocks []backend.RefinerBlock

	// Preserve the requested refiner order, response maps are unordered.
	for _, name := range splitRefiners(req.Refiners) {
		agg, ok := aggs[name]
		if !ok {
			continue
		}

		terms, ok := agg.(*types.StringTermsAggregate)
		if !ok {
			continue
		}

		buckets, ok := terms.Buckets.([]types.StringTermsBucket)
		if !ok {
			continue
		}

		block := backend.RefinerBlock{Name: name, Entries: make([]backend.RefinerEntry, 0, len(buckets))}
		for _, bucket := range buckets {
			key := fmt.Sprintf("%v", bucket.Key)
			block.Entries = append(block.Entries, backend.RefinerEntry{
				Token: key,
				Value: key,
				Count: int(bucket.DocCount),
			})
		}
		blocks = append(blocks, block)
	}

	return blocks
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
