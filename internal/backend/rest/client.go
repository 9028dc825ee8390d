// Package rest implements the backend contract against a remote search
// service speaking JSON over HTTP.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mpavkov/search-refinery/internal/apperr"
	"github.com/mpavkov/search-refinery/internal/backend"
)

const defaultTimeout = 30 * time.Second

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("rest backend base URL is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// Search issues a fresh page-1 query as a POST of the compiled request.
func (c *Client) Search(ctx context.Context, req *backend.Request) (*backend.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	raw, err := c.post(ctx, c.baseURL+"/search/query", body)
	if err != nil {
		slog.Error("Search request failed", "error", err)
		return nil, apperr.NewTransport("search", err)
	}

	var resp backend.Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}

	resp.Request = req
	return &resp, nil
}

// Page re-issues the cached request with start-row arithmetic. The previous
// response acts as the paging cursor; page 1 is never repeated to turn pages.
func (c *Client) Page(ctx context.Context, prev *backend.Response, page int) (*backend.Response, error) {
	if prev == nil || prev.Request == nil {
		return nil, fmt.Errorf("no paging cursor available")
	}

	paged := *prev.Request
	paged.StartRow = (page - 1) * paged.RowLimit

	return c.Search(ctx, &paged)
}

// Suggest fetches ranked query completions.
func (c *Client) Suggest(ctx context.Context, req *backend.SuggestRequest) ([]string, error) {
	params := url.Values{}
	params.Set("querytext", req.QueryText)
	params.Set("count", strconv.Itoa(req.Count))
	params.Set("prefixmatch", strconv.FormatBool(req.PrefixMatch))
	params.Set("hithighlighting", strconv.FormatBool(req.HitHighlighting))

	raw, err := c.get(ctx, c.baseURL+"/search/suggest?"+params.Encode())
	if err != nil {
		slog.Error("Suggest request failed", "error", err)
		return nil, apperr.NewTransport("suggest", err)
	}

	var resp struct {
		Queries []struct {
			Query string `json:"query"`
		} `json:"queries"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("parse suggest response: %w", err)
	}

	suggestions := make([]string, 0, len(resp.Queries))
	for _, q := range resp.Queries {
		suggestions = append(suggestions, q.Query)
	}

	return suggestions, nil
}

func (c *Client) post(ctx context.Context, reqURL string, body []byte) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	return c.do(httpReq)
}

func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	return c.do(httpReq)
}

func (c *Client) do(httpReq *http.Request) ([]byte, error) {
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
