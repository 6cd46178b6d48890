package market

// Wire types for the DEX Screener "pairs for token" endpoint. Only the
// fields the pipeline reads are declared.

// Pair is a single trading-pair record.
type Pair struct {
	ChainID     string     `json:"chainId"`
	DexID       string     `json:"dexId"`
	URL         string     `json:"url"`
	PairAddress string     `json:"pairAddress"`
	BaseToken   Token      `json:"baseToken"`
	QuoteToken  Token      `json:"quoteToken"`
	PriceUsd    string     `json:"priceUsd"`
	Volume      Volume     `json:"volume"`
	Liquidity   *Liquidity `json:"liquidity"`
	Fdv         *float64   `json:"fdv"`
	MarketCap   *float64   `json:"marketCap"`
	Info        *PairInfo  `json:"info"`
}

// Token identifies one side of a pair.
type Token struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

// Volume carries trading volume over standard windows.
type Volume struct {
	H24 *float64 `json:"h24"`
	H6  *float64 `json:"h6"`
	H1  *float64 `json:"h1"`
}

// Liquidity is the pooled liquidity of a pair. Absent in some responses,
// hence the pointer on Pair.
type Liquidity struct {
	Usd   float64 `json:"usd"`
	Base  float64 `json:"base"`
	Quote float64 `json:"quote"`
}

// PairInfo carries optional token metadata.
type PairInfo struct {
	Websites []Website `json:"websites"`
	Socials  []Social  `json:"socials"`
}

// Website is a labeled website link.
type Website struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Social is a social-platform link. Newer responses carry type+url, older
// ones platform+handle.
type Social struct {
	Type     string `json:"type"`
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Handle   string `json:"handle"`
}

// platformName returns whichever platform identifier is populated.
func (s Social) platformName() string {
	if s.Type != "" {
		return s.Type
	}
	return s.Platform
}

// liquidityUsd treats missing liquidity as zero for selection purposes.
func (p Pair) liquidityUsd() float64 {
	if p.Liquidity == nil {
		return 0
	}
	return p.Liquidity.Usd
}
