package market

import (
	"strconv"
	"strings"

	"github.com/yourorg/token-risk-api/internal/model"
)

// Canonical base URLs used when a social entry only carries a handle.
const (
	telegramBaseURL = "https://t.me/"
	xBaseURL        = "https://x.com/"
)

// Facts distills the selected pair into the TokenFacts record for the given
// (chain, address). Every absent upstream field stays nil or empty.
func Facts(pair Pair, chainID, address string) model.TokenFacts {
	facts := model.TokenFacts{
		Name:           "Unknown",
		Symbol:         "?",
		ChainID:        chainID,
		Address:        address,
		DexscreenerURL: pair.URL,
	}

	if pair.BaseToken.Name != "" {
		facts.Name = pair.BaseToken.Name
	}
	if pair.BaseToken.Symbol != "" {
		facts.Symbol = pair.BaseToken.Symbol
	}

	if price, err := strconv.ParseFloat(pair.PriceUsd, 64); err == nil {
		facts.PriceUsd = &price
	}
	facts.Volume24h = pair.Volume.H24
	if pair.Liquidity != nil {
		liquidity := pair.Liquidity.Usd
		facts.LiquidityUsd = &liquidity
	}
	facts.MarketCap = pair.MarketCap
	facts.Fdv = pair.Fdv

	if pair.Info != nil {
		if len(pair.Info.Websites) > 0 {
			facts.PrimaryWebsite = pair.Info.Websites[0].URL
		}
		facts.TelegramURL = socialURL(pair.Info.Socials, telegramBaseURL, "telegram")
		facts.XURL = socialURL(pair.Info.Socials, xBaseURL, "twitter", "x")
	}

	return facts
}

// socialURL finds the first social entry whose platform name contains one of
// the given needles and resolves it to a URL, preferring an explicit URL
// field over constructing one from the handle.
func socialURL(socials []Social, baseURL string, needles ...string) string {
	for _, s := range socials {
		name := strings.ToLower(s.platformName())
		for _, needle := range needles {
			if !strings.Contains(name, needle) {
				continue
			}
			if s.URL != "" {
				return s.URL
			}
			if s.Handle != "" {
				return baseURL + strings.TrimPrefix(s.Handle, "@")
			}
		}
	}
	return ""
}
