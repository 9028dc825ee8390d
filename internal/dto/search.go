package dto

import (
	"github.com/mpavkov/search-refinery/internal/domain"
)

// SearchRequest is the body of a search call. Filters carry the facet
// values the caller selected from a previous page's refinement results.
type SearchRequest struct {
	Text    string                    `json:"text"`
	Page    int                       `json:"page"`
	Filters []domain.RefinementFilter `json:"filters,omitempty"`
}

type SuggestResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

type VerticalCountsRequest struct {
	Text string `json:"text"`
}

type VerticalCountsResponse struct {
	Counts []domain.VerticalCount `json:"counts"`
}
