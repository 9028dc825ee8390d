// Package backend defines the abstract search backend contract: the wire
// request/response shapes and the interfaces adapters implement.
package backend

import (
	"context"

	"github.com/mpavkov/search-refinery/internal/domain"
)

// ClientType tags every compiled request.
const ClientType = "ContentSearchRegular"

// Property is an always-on capability flag sent with every request.
type Property struct {
	Name    string `json:"name"`
	BoolVal bool   `json:"boolVal"`
}

// DefaultProperties returns the capability flags sent with every request:
// dynamic grouping and multi-geo search stay enabled unconditionally.
func DefaultProperties() []Property {
	return []Property{
		{Name: "EnableDynamicGroups", BoolVal: true},
		{Name: "EnableMultiGeoSearch", BoolVal: true},
	}
}

// Request is the compiled backend search request.
type Request struct {
	QueryText         string          `json:"queryText"`
	QueryTemplate     string          `json:"queryTemplate,omitempty"`
	SourceID          string          `json:"sourceId,omitempty"`
	SortList          []domain.Sort   `json:"sortList,omitempty"`
	EnableQueryRules  bool            `json:"enableQueryRules"`
	RowLimit          int             `json:"rowLimit"`
	StartRow          int             `json:"startRow"`
	SelectFields      []string        `json:"selectFields,omitempty"`
	TrimDuplicates    bool            `json:"trimDuplicates"`
	Refiners          string          `json:"refiners,omitempty"`
	RefinementFilters []string        `json:"refinementFilters,omitempty"`
	ClientType        string          `json:"clientType"`
	Properties        []Property      `json:"properties,omitempty"`
}

// SuggestRequest asks for ranked query completions.
type SuggestRequest struct {
	QueryText       string `json:"queryText"`
	Count           int    `json:"count"`
	PrefixMatch     bool   `json:"prefixMatch"`
	HitHighlighting bool   `json:"hitHighlighting"`
}

// Cell is one key/value of a heterogeneous result row.
type Cell struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	ValueType string `json:"valueType,omitempty"`
}

type Row struct {
	Cells []Cell `json:"cells"`
}

// RefinerEntry is one facet value of a refiner block.
type RefinerEntry struct {
	Token string `json:"token"`
	Value string `json:"value"`
	Count int    `json:"count"`
}

type RefinerBlock struct {
	Name    string         `json:"name"`
	Entries []RefinerEntry `json:"entries"`
}

// PrimaryResult is the main result block of a backend response.
type PrimaryResult struct {
	Rows      []Row          `json:"rows"`
	Refiners  []RefinerBlock `json:"refiners,omitempty"`
	TotalRows int            `json:"totalRows"`
}

// SpecialTermResult is a promoted, editorially curated result.
type SpecialTermResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// SecondaryResult carries query-rule output such as best bets.
type SecondaryResult struct {
	SpecialTermResults []SpecialTermResult `json:"specialTermResults,omitempty"`
}

// Response is a full backend response. Request is retained as the paging
// cursor: adapters fetch subsequent pages from it without the caller
// re-specifying the query.
type Response struct {
	Primary   *PrimaryResult    `json:"primary,omitempty"`
	Secondary []SecondaryResult `json:"secondary,omitempty"`

	Request *Request `json:"-"`
}

// Searcher executes compiled requests against a concrete search backend.
type Searcher interface {
	// Search issues a fresh page-1 query.
	Search(ctx context.Context, req *Request) (*Response, error)
	// Page fetches the given page using a previous response as cursor.
	Page(ctx context.Context, prev *Response, page int) (*Response, error)
	// Suggest returns ranked query completions in a single round trip.
	Suggest(ctx context.Context, req *SuggestRequest) ([]string, error)
}

// BatchSearcher is implemented by backends with native batch transport.
// Responses align to the submitted request order; a member that came back
// malformed is returned as nil rather than failing the whole batch.
type BatchSearcher interface {
	SearchBatch(ctx context.Context, reqs []*Request) ([]*Response, error)
}

// IconResolver resolves file icons for a batch of filenames in one logical
// round trip. The returned slice is aligned to the input: entry i is the icon
// for filenames[i], empty when nothing resolved.
type IconResolver interface {
	ResolveIcons(ctx context.Context, filenames []string) ([]string, error)
}
