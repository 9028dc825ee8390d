package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/mpavkov/search-refinery/internal/apperr"
	"github.com/mpavkov/search-refinery/internal/backend"
)

// SubRequest is one GET-style member of a batch round trip.
type SubRequest struct {
	Method string `json:"method"`
	URL    string `json:"url"`
}

type batchEnvelope struct {
	BatchID  string       `json:"batchId"`
	Requests []SubRequest `json:"requests"`
}

type batchResult struct {
	Responses []json.RawMessage `json:"responses"`
}

// ExecuteBatch submits the sub-requests as one network round trip. The
// response array is aligned to submission order; the caller correlates by
// index only, never by response content.
func (c *Client) ExecuteBatch(ctx context.Context, subs []SubRequest) ([]json.RawMessage, error) {
	envelope := batchEnvelope{
		BatchID:  uuid.NewString(),
		Requests: subs,
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("marshal batch envelope: %w", err)
	}

	raw, err := c.post(ctx, c.baseURL+"/batch", body)
	if err != nil {
		slog.Error("Batch request failed", "batch_id", envelope.BatchID, "size", len(subs), "error", err)
		return nil, apperr.NewTransport("batch", err)
	}

	var result batchResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("parse batch response: %w", err)
	}

	if len(result.Responses) != len(subs) {
		return nil, fmt.Errorf("batch returned %d responses for %d requests", len(result.Responses), len(subs))
	}

	return result.Responses, nil
}

// ResolveIcons maps filenames to icon URLs using a single batch round trip.
// Slot i of the returned slice is the icon for filenames[i]; empty when the
// backend resolved nothing for that filename.
func (c *Client) ResolveIcons(ctx context.Context, filenames []string) ([]string, error) {
	subs := make([]SubRequest, 0, len(filenames))
	for _, filename := range filenames {
		subs = append(subs, SubRequest{
			Method: "GET",
			URL:    c.baseURL + "/web/maptoicon?filename=" + url.QueryEscape(filename),
		})
	}

	responses, err := c.ExecuteBatch(ctx, subs)
	if err != nil {
		return nil, err
	}

	icons := make([]string, len(filenames))
	for i, raw := range responses {
		var iconResp struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(raw, &iconResp); err != nil {
			continue
		}
		if iconResp.Value != "" {
			icons[i] = c.baseURL + "/layouts/images/" + iconResp.Value
		}
	}

	return icons, nil
}

// SearchBatch executes several compiled requests in one round trip, used for
// per-vertical result counts. Responses align to the input order.
func (c *Client) SearchBatch(ctx context.Context, reqs []*backend.Request) ([]*backend.Response, error) {
	subs := make([]SubRequest, 0, len(reqs))
	for _, req := range reqs {
		subs = append(subs, SubRequest{Method: "GET", URL: c.queryURL(req)})
	}

	raws, err := c.ExecuteBatch(ctx, subs)
	if err != nil {
		return nil, err
	}

	responses := make([]*backend.Response, len(raws))
	for i, raw := range raws {
		var resp backend.Response
		if err := json.Unmarshal(raw, &resp); err != nil {
			// Malformed member responses degrade to nil, the caller
			// treats them as missing primary results.
			continue
		}
		resp.Request = reqs[i]
		responses[i] = &resp
	}

	return responses, nil
}

// queryURL serializes a compiled request into GET form for batching.
func (c *Client) queryURL(req *backend.Request) string {
	params := url.Values{}
	params.Set("querytext", req.QueryText)
	params.Set("rowlimit", strconv.Itoa(req.RowLimit))
	params.Set("querytemplate", req.QueryTemplate)
	params.Set("trimduplicates", strconv.FormatBool(req.TrimDuplicates))
	params.Set("enablequeryrules", strconv.FormatBool(req.EnableQueryRules))
	params.Set("clienttype", req.ClientType)

	if len(req.Properties) > 0 {
		props := ""
		for i, p := range req.Properties {
			if i > 0 {
				props += ","
			}
			props += p.Name + ":" + strconv.FormatBool(p.BoolVal)
		}
		params.Set("properties", props)
	}

	if req.SourceID != "" {
		params.Set("sourceid", req.SourceID)
	}

	return c.baseURL + "/search/query?" + params.Encode()
}
