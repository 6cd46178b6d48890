package holders

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/token-risk-api/internal/config"
)

func testClient(baseURL string) *Client {
	return NewClient(config.Config{
		HoldersAPIURL:  baseURL,
		RequestTimeout: 2 * time.Second,
	})
}

func TestCount_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/token/holders", r.URL.Path)
		assert.Equal(t, "mint123", r.URL.Query().Get("tokenAddress"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"total": 4821}`))
	}))
	defer srv.Close()

	total := testClient(srv.URL).Count(context.Background(), "mint123")
	require.NotNil(t, total)
	assert.Equal(t, int64(4821), *total)
}

func TestCount_FailuresReturnNil(t *testing.T) {
	t.Run("non-success status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "denied", http.StatusForbidden)
		}))
		defer srv.Close()

		assert.Nil(t, testClient(srv.URL).Count(context.Background(), "mint123"))
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		assert.Nil(t, testClient(srv.URL).Count(context.Background(), "mint123"))
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // shut down before use

		assert.Nil(t, testClient(srv.URL).Count(context.Background(), "mint123"))
	})
}
