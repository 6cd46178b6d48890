// Package export ships completed report envelopes to an external webhook in
// batches. Export is fire-and-forget: it never affects request handling.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Config holds webhook export settings. An empty WebhookURL disables the
// exporter entirely.
type Config struct {
	WebhookURL string
	APIKey     string
	BatchSize  int
	Interval   time.Duration
}

// Exporter batches reports and flushes them on size or interval.
type Exporter struct {
	config     Config
	httpClient *http.Client

	mu    sync.Mutex
	batch []interface{}

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates an Exporter. When enabled it starts a background flush loop.
func New(config Config) *Exporter {
	if config.BatchSize < 1 {
		config.BatchSize = 25
	}
	if config.Interval <= 0 {
		config.Interval = time.Minute
	}

	e := &Exporter{
		config:     config,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		batch:      make([]interface{}, 0, config.BatchSize),
		done:       make(chan struct{}),
	}

	if !e.Enabled() {
		close(e.done)
		return e
	}

	e.ctx, e.cancel = context.WithCancel(context.Background())
	go e.loop()

	logrus.Infof("Report exporter initialized: batch=%d interval=%s", config.BatchSize, config.Interval)
	return e
}

// Enabled reports whether a webhook is configured.
func (e *Exporter) Enabled() bool {
	return e.config.WebhookURL != ""
}

// Add queues a report for export and flushes if the batch is full.
func (e *Exporter) Add(report interface{}) {
	if !e.Enabled() {
		return
	}

	e.mu.Lock()
	e.batch = append(e.batch, report)
	full := len(e.batch) >= e.config.BatchSize
	e.mu.Unlock()

	if full {
		e.Flush()
	}
}

// Flush sends the pending batch, if any.
func (e *Exporter) Flush() {
	e.mu.Lock()
	if len(e.batch) == 0 {
		e.mu.Unlock()
		return
	}
	pending := e.batch
	e.batch = make([]interface{}, 0, e.config.BatchSize)
	e.mu.Unlock()

	if err := e.post(pending); err != nil {
		logrus.Warnf("Report export failed, dropping %d reports: %v", len(pending), err)
	}
}

// Close stops the flush loop and sends any remaining reports.
func (e *Exporter) Close() {
	if e.cancel != nil {
		e.cancel()
		<-e.done
	}
	e.Flush()
}

func (e *Exporter) loop() {
	defer close(e.done)

	ticker := time.NewTicker(e.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			e.Flush()
		case <-e.ctx.Done():
			return
		}
	}
}

func (e *Exporter) post(reports []interface{}) error {
	payload, err := json.Marshal(map[string]interface{}{
		"reports":   reports,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal batch: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, e.config.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.config.APIKey != "" {
		req.Header.Set("X-API-Key", e.config.APIKey)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	logrus.Debugf("Exported %d reports to webhook", len(reports))
	return nil
}
