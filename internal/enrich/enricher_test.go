package enrich

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpavkov/search-refinery/internal/backend"
	"github.com/mpavkov/search-refinery/internal/domain"
)

type fakeIconResolver struct {
	gotFilenames []string
	icons        []string
	err          error
}

func (f *fakeIconResolver) ResolveIcons(ctx context.Context, filenames []string) ([]string, error) {
	f.gotFilenames = filenames
	if f.err != nil {
		return nil, f.err
	}
	return f.icons, nil
}

type countingSearcher struct {
	totals map[string]int

	mu    sync.Mutex
	calls int
}

func (s *countingSearcher) Search(ctx context.Context, req *backend.Request) (*backend.Response, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	total, ok := s.totals[req.QueryTemplate]
	if !ok {
		return &backend.Response{}, nil
	}
	return &backend.Response{Primary: &backend.PrimaryResult{TotalRows: total}, Request: req}, nil
}

func (s *countingSearcher) Page(ctx context.Context, prev *backend.Response, page int) (*backend.Response, error) {
	return prev, nil
}

func (s *countingSearcher) Suggest(ctx context.Context, req *backend.SuggestRequest) ([]string, error) {
	return nil, nil
}

func rowWith(fields map[string]string) *domain.ResultRow {
	row := domain.NewResultRow()
	for _, field := range []string{"Title", "Filename", "FileExtension"} {
		if v, ok := fields[field]; ok {
			row.Set(field, domain.StringValue(v))
		}
	}
	return row
}

func TestMapIcons_IndexAlignment(t *testing.T) {
	icons := &fakeIconResolver{icons: []string{"icdocx.png", "", "icpdf.png"}}
	e := NewEnricher(icons, nil)

	rows := []*domain.ResultRow{
		rowWith(map[string]string{"Filename": "report.docx"}),
		rowWith(map[string]string{"Title": "no file"}),
		rowWith(map[string]string{"Filename": "budget.pdf"}),
	}

	got, err := e.MapIcons(context.Background(), rows)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, []string{"report.docx", "", "budget.pdf"}, icons.gotFilenames)
	assert.Equal(t, "icdocx.png", got[0].GetString("IconSrc"))
	assert.Equal(t, "", got[1].GetString("IconSrc"))
	assert.Equal(t, "icpdf.png", got[2].GetString("IconSrc"))
}

func TestMapIcons_FilenameDerivation(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		want   string
	}{
		{
			name:   "filename preferred",
			fields: map[string]string{"Filename": "report.docx", "FileExtension": "pdf"},
			want:   "report.docx",
		},
		{
			name:   "extension fallback",
			fields: map[string]string{"FileExtension": "xlsx"},
			want:   ".xlsx",
		},
		{
			name:   "quotes stripped",
			fields: map[string]string{"Filename": "jane’s notes.docx"},
			want:   "janes notes.docx",
		},
		{
			name:   "query string suffix removed",
			fields: map[string]string{"Filename": "report.docx?web=1"},
			want:   "report.docx",
		},
		{
			name:   "no file fields",
			fields: map[string]string{"Title": "welcome"},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, iconLookupKey(rowWith(tt.fields)))
		})
	}
}

func TestMapIcons_NilResolverPassesThrough(t *testing.T) {
	e := NewEnricher(nil, nil)

	rows := []*domain.ResultRow{rowWith(map[string]string{"Filename": "a.docx"})}

	got, err := e.MapIcons(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
	assert.Equal(t, "", got[0].GetString("IconSrc"))
}

func TestMapIcons_BatchFailure(t *testing.T) {
	icons := &fakeIconResolver{err: errors.New("transport down")}
	e := NewEnricher(icons, nil)

	_, err := e.MapIcons(context.Background(), []*domain.ResultRow{rowWith(map[string]string{"Filename": "a.docx"})})

	require.Error(t, err)
}

func TestVerticalCounts_MergeByIndex(t *testing.T) {
	searcher := &countingSearcher{totals: map[string]int{
		"{searchTerms} IsDocument:true": 42,
		"{searchTerms} people":          7,
	}}
	e := NewEnricher(nil, searcher)

	verticals := []domain.Vertical{
		{Key: "documents", QueryTemplate: "{searchTerms} IsDocument:true"},
		{Key: "broken", QueryTemplate: "{searchTerms} nothing"},
		{Key: "people", QueryTemplate: "{searchTerms} people"},
	}

	counts, err := e.VerticalCounts(context.Background(), "budget", verticals, false)
	require.NoError(t, err)

	assert.Equal(t, 3, searcher.calls)
	assert.Equal(t, []domain.VerticalCount{
		{VerticalKey: "documents", Count: 42},
		{VerticalKey: "people", Count: 7},
	}, counts)
}

func TestVerticalCounts_EmptyQueryTextSuppressed(t *testing.T) {
	searcher := &countingSearcher{totals: map[string]int{"{searchTerms}": 99}}
	e := NewEnricher(nil, searcher)

	counts, err := e.VerticalCounts(context.Background(), "", []domain.Vertical{
		{Key: "all", QueryTemplate: "{searchTerms}"},
	}, false)

	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestVerticalCounts_RowLimitFollowsQueryRules(t *testing.T) {
	var seen []*backend.Request
	searcher := &recordingSearcher{record: func(req *backend.Request) {
		seen = append(seen, req)
	}}
	e := NewEnricher(nil, searcher)

	verticals := []domain.Vertical{{Key: "a", QueryTemplate: "t"}}

	_, err := e.VerticalCounts(context.Background(), "x", verticals, true)
	require.NoError(t, err)
	_, err = e.VerticalCounts(context.Background(), "x", verticals, false)
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Equal(t, 1, seen[0].RowLimit)
	assert.True(t, seen[0].EnableQueryRules)
	assert.Equal(t, 0, seen[1].RowLimit)
	assert.False(t, seen[1].EnableQueryRules)
}

func TestVerticalCounts_NoVerticals(t *testing.T) {
	e := NewEnricher(nil, &countingSearcher{})

	counts, err := e.VerticalCounts(context.Background(), "x", nil, false)

	require.NoError(t, err)
	assert.Nil(t, counts)
}

type recordingSearcher struct {
	record func(*backend.Request)
}

func (s *recordingSearcher) Search(ctx context.Context, req *backend.Request) (*backend.Response, error) {
	s.record(req)
	return &backend.Response{Primary: &backend.PrimaryResult{}, Request: req}, nil
}

func (s *recordingSearcher) Page(ctx context.Context, prev *backend.Response, page int) (*backend.Response, error) {
	return prev, nil
}

func (s *recordingSearcher) Suggest(ctx context.Context, req *backend.SuggestRequest) ([]string, error) {
	return nil, nil
}
