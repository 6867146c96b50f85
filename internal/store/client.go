package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"

	"chartscout/internal/errors"
)

// Client fetches chart documents from the remote example/upload store.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	group      singleflight.Group
}

// NewClient creates a store client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With(slog.String("component", "store.client")),
	}
}

// Fetch retrieves and decodes one document. Identical in-flight requests
// share a single round trip. Each caller gets its own copy of the decoded
// tree; the pipeline mutates payloads in place, so a shared tree would let
// concurrent renders of one document corrupt each other.
func (c *Client) Fetch(ctx context.Context, filename, fileType string) (any, error) {
	key := fileType + "|" + filename
	v, err, shared := c.group.Do(key, func() (any, error) {
		return c.fetch(ctx, filename, fileType)
	})
	if shared {
		c.logger.DebugContext(ctx, "fetch_deduplicated",
			slog.String("filename", filename),
			slog.String("type", fileType))
	}
	if err != nil {
		return nil, err
	}
	return clonePayload(v), nil
}

// clonePayload deep-copies the decoded JSON tree. Leaves (strings,
// json.Number, bool, nil) are immutable and shared.
func clonePayload(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = clonePayload(child)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = clonePayload(child)
		}
		return out
	default:
		return v
	}
}

func (c *Client) fetch(ctx context.Context, filename, fileType string) (any, error) {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, errors.NewDataFormatError(filename, "invalid store URL", err)
	}
	q := endpoint.Query()
	q.Set("filename", filename)
	q.Set("type", fileType)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, errors.NewDataFormatError(filename, "building request", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewDataFormatError(filename, "store unreachable", err)
	}
	defer resp.Body.Close()

	c.logger.InfoContext(ctx, "store_fetch",
		slog.String("filename", filename),
		slog.String("type", fileType),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewDataFormatError(filename,
			fmt.Sprintf("store returned HTTP %d", resp.StatusCode), nil)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, errors.NewDataFormatError(filename, "undecodable response body", err)
	}

	// The store reports some failures inside a 200 body.
	if obj, ok := payload.(map[string]any); ok {
		if msg, ok := obj["error"].(string); ok && msg != "" {
			return nil, errors.NewDataFormatError(filename, "store error: "+msg, nil)
		}
	}
	return payload, nil
}
