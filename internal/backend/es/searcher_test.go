package es

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpavkov/search-refinery/internal/backend"
)

func TestBuildQuery_TextOnly(t *testing.T) {
	s := &Searcher{}

	q := s.buildQuery(&backend.Request{QueryText: "budget", SelectFields: []string{"title", "content"}})

	require.NotNil(t, q.SimpleQueryString)
	assert.Equal(t, "budget", q.SimpleQueryString.Query)
	assert.Equal(t, []string{"title", "content"}, q.SimpleQueryString.Fields)
	assert.Nil(t, q.Bool)
}

func TestBuildQuery_SingleValueFilterBecomesTerm(t *testing.T) {
	s := &Searcher{}

	q := s.buildQuery(&backend.Request{
		QueryText:         "budget",
		RefinementFilters: []string{"FileType:docx"},
	})

	require.NotNil(t, q.Bool)
	require.Len(t, q.Bool.Filter, 1)
	require.NotNil(t, q.Bool.Filter[0].Term)
	assert.Equal(t, "docx", q.Bool.Filter[0].Term["FileType"].Value)
}

func TestBuildQuery_OrFilterBecomesTerms(t *testing.T) {
	s := &Searcher{}

	q := s.buildQuery(&backend.Request{
		QueryText:         "budget",
		RefinementFilters: []string{"FileType:OR(docx,pdf)"},
	})

	require.NotNil(t, q.Bool)
	require.Len(t, q.Bool.Filter, 1)
	require.NotNil(t, q.Bool.Filter[0].Terms)
	assert.Equal(t, []string{"docx", "pdf"}, q.Bool.Filter[0].Terms.TermsQuery["FileType"])
}

func TestBuildQuery_AndFilterBecomesTermPerToken(t *testing.T) {
	s := &Searcher{}

	q := s.buildQuery(&backend.Request{
		QueryText:         "budget",
		RefinementFilters: []string{"Tags:AND(t1,t2)"},
	})

	require.NotNil(t, q.Bool)
	require.Len(t, q.Bool.Filter, 2)
	assert.Equal(t, "t1", q.Bool.Filter[0].Term["Tags"].Value)
	assert.Equal(t, "t2", q.Bool.Filter[1].Term["Tags"].Value)
}

func TestBuildAggregations(t *testing.T) {
	aggs := buildAggregations(&backend.Request{Refiners: "FileType, Author"})

	require.Len(t, aggs, 2)
	require.Contains(t, aggs, "FileType")
	require.Contains(t, aggs, "Author")
	assert.Equal(t, "FileType", *aggs["FileType"].Terms.Field)

	assert.Nil(t, buildAggregations(&backend.Request{}))
}

func TestSplitRefiners(t *testing.T) {
	assert.Equal(t, []string{"FileType", "Author"}, splitRefiners("FileType, Author"))
	assert.Equal(t, []string{"FileType"}, splitRefiners("FileType,,  "))
	assert.Nil(t, splitRefiners(""))
}
