package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/token-risk-api/internal/model"
)

func fullFacts() model.TokenFacts {
	price := 0.00123
	vol := 4567.8
	liq := 100000.0
	mcap := 900000.0
	fdv := 1000000.0
	holders := int64(4821)

	return model.TokenFacts{
		Name:           "Foo Coin",
		Symbol:         "FOO",
		ChainID:        "ethereum",
		Address:        "0x1234567890abcdef1234567890abcdef12345678",
		PriceUsd:       &price,
		Volume24h:      &vol,
		LiquidityUsd:   &liq,
		MarketCap:      &mcap,
		Fdv:            &fdv,
		Holders:        &holders,
		PrimaryWebsite: "https://foo.example",
		TelegramURL:    "https://t.me/foochat",
		XURL:           "https://x.com/foocoin",
		DexscreenerURL: "https://dexscreener.com/ethereum/0xpair",
		Description:    "A community coin.",
	}
}

func TestSummary_Idempotent(t *testing.T) {
	a := Assembler{Persona: "Token Sleuth"}
	brief := model.RiskBrief{Level: model.RiskMedium, Text: "body"}

	first := a.Summary(fullFacts(), brief)
	second := a.Summary(fullFacts(), brief)
	assert.Equal(t, first, second, "rendering must be byte-identical for equal inputs")
}

func TestSummary_FullFacts(t *testing.T) {
	summary := Assembler{Persona: "Token Sleuth"}.Summary(fullFacts(), model.RiskBrief{Level: model.RiskLow})

	assert.True(t, strings.HasPrefix(summary, "Token Sleuth — Token Report\n"))
	assert.Contains(t, summary, "Name:            Foo Coin")
	assert.Contains(t, summary, "Symbol:          FOO")
	assert.Contains(t, summary, "Price (USD):     $0.00123")
	assert.Contains(t, summary, "24h Volume:      $4567.8")
	assert.Contains(t, summary, "Holders:         4821")
	assert.Contains(t, summary, "Telegram:        https://t.me/foochat")
	assert.Contains(t, summary, "Text:            A community coin.")
	assert.Contains(t, summary, "Level:           low")
}

func TestSummary_PlaceholdersForMissingFields(t *testing.T) {
	facts := model.TokenFacts{
		Name:    "Unknown",
		Symbol:  "?",
		ChainID: "solana",
		Address: "mint123",
	}
	summary := Assembler{Persona: "Token Sleuth"}.Summary(facts, model.RiskBrief{Level: model.RiskUnknown})

	// Every labeled line is present even when the field is absent.
	for _, label := range []string{
		"Name:", "Symbol:", "Chain:", "Address:",
		"Price (USD):", "24h Volume:", "Liquidity (USD):", "Market Cap:", "FDV:", "Holders:",
		"Website:", "Telegram:", "X:", "DexScreener:",
		"Text:", "Level:",
	} {
		assert.Contains(t, summary, label, "missing labeled line %q", label)
	}

	assert.Contains(t, summary, "Price (USD):     ?")
	assert.Contains(t, summary, "Holders:         ?")
	assert.Contains(t, summary, "Website:         not listed")
	assert.Contains(t, summary, "Text:            not provided")
}

func TestNewEnvelope(t *testing.T) {
	rep := model.Report{
		Summary: "summary text",
		Risk:    model.RiskBrief{Level: model.RiskHigh, Text: "brief text"},
		Facts:   fullFacts(),
	}

	env := NewEnvelope(rep)
	assert.True(t, env.OK)
	assert.Equal(t, "summary text", env.Summary)
	assert.Equal(t, "brief text", env.AIRisk)
	assert.Equal(t, "high", env.AIRiskLevel)
	require.NotNil(t, env.Links)
	assert.Equal(t, "https://t.me/foochat", env.Links.Telegram)

	// Facts are flattened into the envelope for machine consumers.
	payload, err := json.Marshal(env)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, true, decoded["ok"])
	assert.Equal(t, "Foo Coin", decoded["name"])
	assert.Equal(t, "ethereum", decoded["chainId"])
	assert.Equal(t, float64(4821), decoded["holders"])
}

func TestNewEnvelope_NoLinks(t *testing.T) {
	rep := model.Report{
		Summary: "s",
		Risk:    model.RiskBrief{Level: model.RiskUnknown, Text: "t"},
		Facts:   model.TokenFacts{ChainID: "solana", Address: "mint123"},
	}

	env := NewEnvelope(rep)
	assert.Nil(t, env.Links)
}
