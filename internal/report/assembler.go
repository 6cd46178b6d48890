// Package report renders assembled token facts and a risk brief into a
// stable human-readable summary and a JSON envelope. Rendering is pure:
// identical inputs always produce byte-identical output.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yourorg/token-risk-api/internal/model"
)

// Placeholders for absent fields. A labeled line is never omitted.
const (
	placeholderNumber = "?"
	placeholderLink   = "not listed"
	placeholderText   = "not provided"
)

// Assembler renders reports under a configured persona name.
type Assembler struct {
	Persona string
}

// Summary renders the fixed-order multi-line report text.
func (a Assembler) Summary(facts model.TokenFacts, brief model.RiskBrief) string {
	var b strings.Builder

	header := fmt.Sprintf("%s — Token Report", a.Persona)
	b.WriteString(header + "\n")
	b.WriteString(strings.Repeat("=", len([]rune(header))) + "\n")

	b.WriteString("\nToken\n")
	writeLine(&b, "Name", orText(facts.Name, placeholderNumber))
	writeLine(&b, "Symbol", orText(facts.Symbol, placeholderNumber))
	writeLine(&b, "Chain", facts.ChainID)
	writeLine(&b, "Address", facts.Address)

	b.WriteString("\nMarket\n")
	writeLine(&b, "Price (USD)", money(facts.PriceUsd))
	writeLine(&b, "24h Volume", money(facts.Volume24h))
	writeLine(&b, "Liquidity (USD)", money(facts.LiquidityUsd))
	writeLine(&b, "Market Cap", money(facts.MarketCap))
	writeLine(&b, "FDV", money(facts.Fdv))
	writeLine(&b, "Holders", count(facts.Holders))

	b.WriteString("\nLinks\n")
	writeLine(&b, "Website", orText(facts.PrimaryWebsite, placeholderLink))
	writeLine(&b, "Telegram", orText(facts.TelegramURL, placeholderLink))
	writeLine(&b, "X", orText(facts.XURL, placeholderLink))
	writeLine(&b, "DexScreener", orText(facts.DexscreenerURL, placeholderLink))

	b.WriteString("\nDescription\n")
	writeLine(&b, "Text", orText(facts.Description, placeholderText))

	b.WriteString("\nRisk\n")
	writeLine(&b, "Level", string(brief.Level))

	return b.String()
}

// Envelope is the JSON response for machine consumers: the summary and risk
// brief plus the raw facts flattened alongside.
type Envelope struct {
	OK          bool   `json:"ok"`
	Summary     string `json:"summary"`
	AIRisk      string `json:"aiRisk,omitempty"`
	AIRiskLevel string `json:"aiRiskLevel,omitempty"`
	Links       *Links `json:"links,omitempty"`
	model.TokenFacts

	// Populated only when report signing is enabled.
	Signature string `json:"signature,omitempty"`
	PublicKey string `json:"publicKey,omitempty"`
}

// Links groups the resolved token links.
type Links struct {
	Website     string `json:"website,omitempty"`
	Telegram    string `json:"telegram,omitempty"`
	X           string `json:"x,omitempty"`
	DexScreener string `json:"dexscreener,omitempty"`
}

// NewEnvelope wraps a finished report for the HTTP response.
func NewEnvelope(rep model.Report) Envelope {
	env := Envelope{
		OK:          true,
		Summary:     rep.Summary,
		AIRisk:      rep.Risk.Text,
		AIRiskLevel: string(rep.Risk.Level),
		TokenFacts:  rep.Facts,
	}

	links := Links{
		Website:     rep.Facts.PrimaryWebsite,
		Telegram:    rep.Facts.TelegramURL,
		X:           rep.Facts.XURL,
		DexScreener: rep.Facts.DexscreenerURL,
	}
	if links != (Links{}) {
		env.Links = &links
	}

	return env
}

func writeLine(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %-16s %s\n", label+":", value)
}

func orText(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}

func money(v *float64) string {
	if v == nil {
		return placeholderNumber
	}
	return "$" + strconv.FormatFloat(*v, 'f', -1, 64)
}

func count(v *int64) string {
	if v == nil {
		return placeholderNumber
	}
	return strconv.FormatInt(*v, 10)
}
