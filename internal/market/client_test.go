package market

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/token-risk-api/internal/apperr"
	"github.com/yourorg/token-risk-api/internal/config"
)

func testClient(baseURL string) *Client {
	return NewClient(config.Config{
		DexScreenerURL: baseURL,
		RequestTimeout: 2 * time.Second,
	})
}

func TestTokenPairs_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tokens/v1/ethereum/0xabc", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"chainId":"ethereum","url":"https://dexscreener.com/ethereum/0xpair",
			 "baseToken":{"address":"0xabc","name":"Foo Coin","symbol":"FOO"},
			 "priceUsd":"0.00123","volume":{"h24":4567.8},
			 "liquidity":{"usd":100000,"base":1,"quote":2},
			 "fdv":1000000,"marketCap":900000}
		]`))
	}))
	defer srv.Close()

	pairs, err := testClient(srv.URL).TokenPairs(context.Background(), "ethereum", "0xabc")
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "Foo Coin", pairs[0].BaseToken.Name)
	assert.Equal(t, "0.00123", pairs[0].PriceUsd)
	require.NotNil(t, pairs[0].Liquidity)
	assert.Equal(t, 100000.0, pairs[0].Liquidity.Usd)
}

func TestTokenPairs_EmptyArrayIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).TokenPairs(context.Background(), "solana", "mint")
	require.Error(t, err)

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindNotFound, appErr.Kind)
}

func TestTokenPairs_NonArrayBodyIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"no such token"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).TokenPairs(context.Background(), "solana", "mint")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.HTTPStatus(err))
}

func TestTokenPairs_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).TokenPairs(context.Background(), "ethereum", "0xabc")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, apperr.HTTPStatus(err))
}

func TestBestPair(t *testing.T) {
	liq := func(usd float64) *Liquidity { return &Liquidity{Usd: usd} }

	tests := []struct {
		name  string
		pairs []Pair
		want  string // pair address of expected winner
	}{
		{
			name: "maximum liquidity wins",
			pairs: []Pair{
				{PairAddress: "a", Liquidity: liq(100)},
				{PairAddress: "b", Liquidity: liq(50)},
				{PairAddress: "c", Liquidity: liq(300)},
			},
			want: "c",
		},
		{
			name: "tie keeps first seen",
			pairs: []Pair{
				{PairAddress: "a", Liquidity: liq(100)},
				{PairAddress: "b", Liquidity: liq(100)},
			},
			want: "a",
		},
		{
			name: "missing liquidity counts as zero",
			pairs: []Pair{
				{PairAddress: "a"},
				{PairAddress: "b", Liquidity: liq(1)},
			},
			want: "b",
		},
		{
			name:  "single pair",
			pairs: []Pair{{PairAddress: "only"}},
			want:  "only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BestPair(tt.pairs).PairAddress)
		})
	}
}
