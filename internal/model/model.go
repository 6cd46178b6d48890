// Package model defines the core data structures for the token risk analyzer.
package model

import "strings"

// Chain identifies the blockchain network a token address belongs to.
type Chain string

// Supported chains, guessed from the address shape.
const (
	ChainEthereum Chain = "ethereum"
	ChainSolana   Chain = "solana"
)

// AddressCandidate is a token address found by pattern matching, together
// with the chain guessed from its shape. Candidates are produced once and
// discarded after use.
type AddressCandidate struct {
	Address string `json:"address"`
	Chain   Chain  `json:"chain"`
}

// TokenFacts is the aggregate record assembled for a single request.
// Everything except Address and ChainID is optional: numeric fields are nil
// when the upstream did not report them, string fields are empty.
// The struct is built once per request and never mutated after assembly.
type TokenFacts struct {
	Name           string   `json:"name"`
	Symbol         string   `json:"symbol"`
	ChainID        string   `json:"chainId"`
	Address        string   `json:"address"`
	PriceUsd       *float64 `json:"priceUsd"`
	Volume24h      *float64 `json:"volume24h"`
	LiquidityUsd   *float64 `json:"liquidityUsd"`
	MarketCap      *float64 `json:"marketCap"`
	Fdv            *float64 `json:"fdv"`
	Holders        *int64   `json:"holders"`
	PrimaryWebsite string   `json:"website,omitempty"`
	TelegramURL    string   `json:"telegram,omitempty"`
	XURL           string   `json:"x,omitempty"`
	DexscreenerURL string   `json:"dexscreenerUrl,omitempty"`
	Description    string   `json:"description,omitempty"`
}

// RiskLevel is the qualitative risk classification relayed from the
// narrative generator.
type RiskLevel string

// Risk levels. Unknown is the degraded default when the generator is
// unavailable or its output cannot be parsed.
const (
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
	RiskUnknown RiskLevel = "unknown"
)

// ParseRiskLevel maps free-form model output to a RiskLevel, falling back to
// RiskUnknown for anything outside the enum.
func ParseRiskLevel(s string) RiskLevel {
	switch RiskLevel(strings.ToLower(strings.TrimSpace(s))) {
	case RiskLow:
		return RiskLow
	case RiskMedium:
		return RiskMedium
	case RiskHigh:
		return RiskHigh
	default:
		return RiskUnknown
	}
}

// RiskBrief is the narrative generator's output.
type RiskBrief struct {
	Level RiskLevel `json:"riskLevel"`
	Text  string    `json:"text"`
}

// Report is the terminal value returned to the caller. It is never
// persisted.
type Report struct {
	Summary string     `json:"summary"`
	Risk    RiskBrief  `json:"riskBrief"`
	Facts   TokenFacts `json:"rawFacts"`
}
