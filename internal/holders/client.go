// Package holders provides a best-effort holder-count lookup. Failures are
// logged and swallowed; they never fail the overall request.
package holders

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/yourorg/token-risk-api/internal/config"
	"github.com/yourorg/token-risk-api/internal/fetch"
)

// Client queries the holder-count API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a holder-count client from the process configuration.
func NewClient(cfg config.Config) *Client {
	return &Client{
		baseURL:    cfg.HoldersAPIURL,
		httpClient: fetch.NewClient(cfg.RequestTimeout),
	}
}

// Count returns the total holder count for a token address, or nil on any
// failure. The pipeline only needs the total, so the page size is pinned
// to 1.
func (c *Client) Count(ctx context.Context, address string) *int64 {
	endpoint := fmt.Sprintf("%s/token/holders?tokenAddress=%s&limit=1",
		c.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		logrus.Warnf("Holder count request build failed: %v", err)
		return nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.Warnf("Holder count lookup failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logrus.Warnf("Holder count lookup returned status %d", resp.StatusCode)
		return nil
	}

	var payload struct {
		Total int64 `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		logrus.Warnf("Holder count response parse failed: %v", err)
		return nil
	}

	logrus.Debugf("Holder count for %s: %d", address, payload.Total)
	return &payload.Total
}
