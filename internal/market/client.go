// Package market queries the DEX Screener API for trading pairs and distills
// them into token facts.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/yourorg/token-risk-api/internal/apperr"
	"github.com/yourorg/token-risk-api/internal/config"
	"github.com/yourorg/token-risk-api/internal/fetch"
)

// Client talks to the DEX Screener pairs-for-token endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a market-data client from the process configuration.
func NewClient(cfg config.Config) *Client {
	return &Client{
		baseURL:    cfg.DexScreenerURL,
		httpClient: fetch.NewClient(cfg.RequestTimeout),
	}
}

// TokenPairs fetches all trading pairs for a (chain, address) pair. A
// non-success response is an upstream error; an empty or non-array body
// means the token has no discoverable pairs.
func (c *Client) TokenPairs(ctx context.Context, chainID, address string) ([]Pair, error) {
	url := fmt.Sprintf("%s/tokens/v1/%s/%s", c.baseURL, chainID, address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperr.Internal(err, "internal error")
	}
	req.Header.Set("Accept", "application/json")

	logrus.Debugf("Fetching pairs from DEX Screener: %s/%s", chainID, address)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Upstream(err, "market data request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, apperr.Upstream(
			fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body)),
			"market data request failed")
	}

	var pairs []Pair
	if err := json.NewDecoder(resp.Body).Decode(&pairs); err != nil {
		return nil, apperr.NotFound("no trading pairs found for token")
	}
	if len(pairs) == 0 {
		return nil, apperr.NotFound("no trading pairs found for token")
	}

	logrus.Debugf("Received %d pairs from DEX Screener", len(pairs))
	return pairs, nil
}

// BestPair selects the pair with the highest liquidity in USD. Missing
// liquidity counts as zero and ties keep the first-seen pair, so selection
// is a stable left fold over the response order.
func BestPair(pairs []Pair) Pair {
	best := pairs[0]
	for _, p := range pairs[1:] {
		if p.liquidityUsd() > best.liquidityUsd() {
			best = p
		}
	}
	return best
}
