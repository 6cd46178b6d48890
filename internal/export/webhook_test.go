package export

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExporter_DisabledWithoutURL(t *testing.T) {
	e := New(Config{})
	assert.False(t, e.Enabled())

	// Adding and closing must be safe no-ops.
	e.Add(map[string]string{"summary": "x"})
	e.Close()
}

func TestExporter_FlushesAtBatchSize(t *testing.T) {
	received := make(chan []byte, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))
		var payload struct {
			Reports []map[string]string `json:"reports"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		out, _ := json.Marshal(payload.Reports)
		received <- out
	}))
	defer srv.Close()

	e := New(Config{
		WebhookURL: srv.URL,
		APIKey:     "secret",
		BatchSize:  2,
		Interval:   time.Hour, // interval flush out of the picture
	})
	defer e.Close()

	e.Add(map[string]string{"summary": "one"})
	e.Add(map[string]string{"summary": "two"})

	select {
	case body := <-received:
		assert.Contains(t, string(body), "one")
		assert.Contains(t, string(body), "two")
	case <-time.After(2 * time.Second):
		t.Fatal("batch was not flushed at batch size")
	}
}

func TestExporter_CloseFlushesRemainder(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	e := New(Config{WebhookURL: srv.URL, BatchSize: 100, Interval: time.Hour})
	e.Add(map[string]string{"summary": "pending"})
	e.Close()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
