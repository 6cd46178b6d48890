package extract

import (
	"html"
	"regexp"
	"strings"
)

// Best-effort description scraping over raw HTML. Each pattern is heuristic;
// the scraper never fails, it just returns "" when nothing matches.
var (
	metaDescPattern = regexp.MustCompile(`(?is)<meta[^>]*name\s*=\s*["']description["'][^>]*content\s*=\s*["']([^"']+)["']`)
	ogDescPattern   = regexp.MustCompile(`(?is)<meta[^>]*property\s*=\s*["']og:description["'][^>]*content\s*=\s*["']([^"']+)["']`)
	labelPattern    = regexp.MustCompile(`(?i)Description\s*[:\-]?\s*([^<>{}"\n]{1,300})`)
)

// Description scans HTML for a token description, trying the meta description
// tag, then the Open Graph description tag, then a bounded run of text after
// a literal "Description" label. Returns "" when none apply.
func Description(htmlBody string) string {
	if m := metaDescPattern.FindStringSubmatch(htmlBody); m != nil {
		return cleanDescription(m[1])
	}
	if m := ogDescPattern.FindStringSubmatch(htmlBody); m != nil {
		return cleanDescription(m[1])
	}
	if m := labelPattern.FindStringSubmatch(htmlBody); m != nil {
		return cleanDescription(m[1])
	}
	return ""
}

func cleanDescription(s string) string {
	return strings.TrimSpace(html.UnescapeString(s))
}
