// Package extract locates token addresses and descriptions in free-form text
// or raw HTML using pure string matching.
package extract

import (
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mr-tron/base58"

	"github.com/yourorg/token-risk-api/internal/model"
)

// Character-class grammar for the two supported address shapes.
// EVM: "0x" followed by exactly 40 hex characters.
// Base58: 32-44 characters from the Bitcoin alphabet (no 0, O, I, l).
// Matching works on maximal runs so an address glued to further hex or
// Base58 characters is not truncated into a false positive.
var (
	evmRunPattern    = regexp.MustCompile(`0x[0-9a-fA-F]+`)
	base58RunPattern = regexp.MustCompile(`[1-9A-HJ-NP-Za-km-z]+`)
)

const evmHexLen = 40

// Extractor finds the first qualifying address candidate in a text blob.
// AllowedSuffixes, when non-empty, acts as a vanity gate: the first match is
// discarded unless it ends with one of the suffixes, compared
// case-insensitively.
type Extractor struct {
	AllowedSuffixes []string
}

// Find returns the first address candidate in text, EVM shapes checked
// before Base58 shapes, or nil when no qualifying match exists.
func (e Extractor) Find(text string) *model.AddressCandidate {
	if addr, ok := e.firstEVM(text); ok {
		if e.suffixAllowed(addr) {
			return &model.AddressCandidate{Address: addr, Chain: model.ChainEthereum}
		}
		// First EVM match failed the vanity gate; fall through to Base58.
	}

	if addr, ok := e.firstBase58(text); ok && e.suffixAllowed(addr) {
		return &model.AddressCandidate{Address: addr, Chain: model.ChainSolana}
	}

	return nil
}

// firstEVM returns the first maximal hex run that is exactly an EVM address.
func (e Extractor) firstEVM(text string) (string, bool) {
	for _, run := range evmRunPattern.FindAllString(text, -1) {
		if len(run) != 2+evmHexLen {
			continue
		}
		if !common.IsHexAddress(run) {
			continue
		}
		return run, true
	}
	return "", false
}

// firstBase58 returns the first maximal Base58 run of plausible key length.
// Runs of 31 or fewer and 45 or more characters never match.
func (e Extractor) firstBase58(text string) (string, bool) {
	for _, run := range base58RunPattern.FindAllString(text, -1) {
		if len(run) < 32 || len(run) > 44 {
			continue
		}
		if _, err := base58.Decode(run); err != nil {
			continue
		}
		return run, true
	}
	return "", false
}

// suffixAllowed reports whether addr passes the vanity gate. An empty suffix
// list disables enforcement.
func (e Extractor) suffixAllowed(addr string) bool {
	if len(e.AllowedSuffixes) == 0 {
		return true
	}
	lower := strings.ToLower(addr)
	for _, suffix := range e.AllowedSuffixes {
		if strings.HasSuffix(lower, strings.ToLower(suffix)) {
			return true
		}
	}
	return false
}
