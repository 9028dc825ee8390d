package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpavkov/search-refinery/internal/backend"
)

func batchServer(t *testing.T, responses []string) (*httptest.Server, *batchEnvelope) {
	t.Helper()
	var received batchEnvelope

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/batch", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		raws := make([]json.RawMessage, len(responses))
		for i, resp := range responses {
			raws[i] = json.RawMessage(resp)
		}
		_ = json.NewEncoder(w).Encode(batchResult{Responses: raws})
	}))
	t.Cleanup(srv.Close)

	return srv, &received
}

func TestExecuteBatch_CountMismatch(t *testing.T) {
	srv, _ := batchServer(t, []string{`{}`})

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.ExecuteBatch(context.Background(), []SubRequest{
		{Method: "GET", URL: srv.URL + "/a"},
		{Method: "GET", URL: srv.URL + "/b"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 responses for 2 requests")
}

func TestExecuteBatch_AssignsBatchID(t *testing.T) {
	srv, received := batchServer(t, []string{`{}`})

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.ExecuteBatch(context.Background(), []SubRequest{{Method: "GET", URL: srv.URL + "/a"}})
	require.NoError(t, err)

	assert.NotEmpty(t, received.BatchID)
	require.Len(t, received.Requests, 1)
}

func TestResolveIcons_IndexAlignment(t *testing.T) {
	srv, received := batchServer(t, []string{
		`{"value":"icdocx.png"}`,
		`{"value":""}`,
		`{"value":"icpdf.png"}`,
	})

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	icons, err := client.ResolveIcons(context.Background(), []string{"a.docx", "unknown.bin", "b.pdf"})
	require.NoError(t, err)
	require.Len(t, icons, 3)

	assert.Equal(t, srv.URL+"/layouts/images/icdocx.png", icons[0])
	assert.Equal(t, "", icons[1])
	assert.Equal(t, srv.URL+"/layouts/images/icpdf.png", icons[2])

	require.Len(t, received.Requests, 3)
	assert.Contains(t, received.Requests[0].URL, "/web/maptoicon?filename=a.docx")
}

func TestSearchBatch_MalformedMemberDegradesToNil(t *testing.T) {
	srv, _ := batchServer(t, []string{
		`{"primary":{"totalRows":42}}`,
		`"not even json"`,
	})

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	reqs := []*backend.Request{
		{QueryText: "budget", QueryTemplate: "a"},
		{QueryText: "budget", QueryTemplate: "b"},
	}

	responses, err := client.SearchBatch(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, responses, 2)

	require.NotNil(t, responses[0])
	assert.Equal(t, 42, responses[0].Primary.TotalRows)
	assert.Same(t, reqs[0], responses[0].Request)
	assert.Nil(t, responses[1])
}

func TestSearchBatch_SerializesRequestsAsGet(t *testing.T) {
	srv, received := batchServer(t, []string{`{}`})

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.SearchBatch(context.Background(), []*backend.Request{{
		QueryText:        "budget",
		QueryTemplate:    "{searchTerms}",
		RowLimit:         1,
		EnableQueryRules: true,
		ClientType:       backend.ClientType,
		SourceID:         "src-1",
	}})
	require.NoError(t, err)

	require.Len(t, received.Requests, 1)
	sub := received.Requests[0]
	assert.Equal(t, "GET", sub.Method)
	assert.Contains(t, sub.URL, "querytext=budget")
	assert.Contains(t, sub.URL, "rowlimit=1")
	assert.Contains(t, sub.URL, "enablequeryrules=true")
	assert.Contains(t, sub.URL, "sourceid=src-1")
}
