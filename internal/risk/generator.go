// Package risk builds a structured prompt from assembled token facts and
// requests a natural-language risk brief from a chat-completion service.
// The generator degrades gracefully: without a credential, or on any call
// failure, the pipeline still succeeds with an "unavailable" brief.
package risk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourorg/token-risk-api/internal/config"
	"github.com/yourorg/token-risk-api/internal/fetch"
	"github.com/yourorg/token-risk-api/internal/model"
)

// systemPrompt pins down the model's behavior and the exact output layout
// the parser expects.
const systemPrompt = `You are a cautious crypto token risk analyst.

Rules:
- Never give financial advice. Never recommend buying, selling, or any trading action. Never mention price targets.
- Treat missing or null fields as data limitations, not as red flags.
- Do not infer suspicion from a domain name alone.
- Base your assessment only on the JSON facts provided.

Respond in EXACTLY this layout:
RISK_LEVEL: <Low|Medium|High|Unknown>

RED FLAGS:
- <bullet points, or "- none identified">

POSITIVE SIGNALS:
- <bullet points, or "- none identified">

DATA LIMITATIONS:
- <bullet points, or "- none">

HONEYPOT LIKELIHOOD: <one line>

<one final caution line reminding the reader this is informational only>`

const unavailableText = "AI risk analysis unavailable."

// Generator holds the generative-text service configuration.
type Generator struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

// New creates a Generator from the process configuration. An empty API key
// is valid and disables the service.
func New(cfg config.Config) *Generator {
	return &Generator{
		apiKey:   cfg.OpenAIKey,
		model:    cfg.OpenAIModel,
		endpoint: cfg.OpenAIURL,
		// The completion POST is not idempotent, so no retries.
		httpClient: fetch.NewPlainClient(cfg.RequestTimeout),
	}
}

// Enabled reports whether a credential is configured.
func (g *Generator) Enabled() bool {
	return g.apiKey != ""
}

// Generate returns a risk brief for the given facts. It never returns an
// error: any failure yields the unavailable brief with level unknown.
func (g *Generator) Generate(ctx context.Context, facts model.TokenFacts) model.RiskBrief {
	if !g.Enabled() {
		return model.RiskBrief{Level: model.RiskUnknown, Text: unavailableText}
	}

	text, err := g.complete(ctx, facts)
	if err != nil {
		logrus.Warnf("Risk narrative generation failed: %v", err)
		return model.RiskBrief{Level: model.RiskUnknown, Text: unavailableText}
	}

	return ParseBrief(text)
}

// complete performs the chat-completion call and returns the raw completion
// text.
func (g *Generator) complete(ctx context.Context, facts model.TokenFacts) (string, error) {
	factsJSON, err := json.Marshal(facts)
	if err != nil {
		return "", fmt.Errorf("failed to marshal facts: %w", err)
	}

	reqBody := map[string]interface{}{
		"model": g.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": string(factsJSON)},
		},
		"temperature": 0.2,
		"max_tokens":  700,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 256<<10))
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion API error %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to decode completion: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}

	return result.Choices[0].Message.Content, nil
}

// ParseBrief extracts the risk level from the first line of the model's
// response. Only a case-insensitive "RISK_LEVEL:" prefix counts; the rest of
// the response is passed through verbatim. Unparseable output keeps the full
// text with level unknown.
func ParseBrief(text string) model.RiskBrief {
	firstLine := text
	rest := ""
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		firstLine = text[:idx]
		rest = text[idx+1:]
	}

	trimmed := strings.TrimSpace(firstLine)
	const prefix = "risk_level:"
	if len(trimmed) >= len(prefix) && strings.EqualFold(trimmed[:len(prefix)], prefix) {
		level := model.ParseRiskLevel(trimmed[len(prefix):])
		return model.RiskBrief{Level: level, Text: strings.TrimLeft(rest, "\n")}
	}

	return model.RiskBrief{Level: model.RiskUnknown, Text: text}
}
