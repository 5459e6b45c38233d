package payload

import (
	"regexp"
	"strings"
)

// Text-fallback extraction: plain URLs and markdown links lifted straight
// from the response body. Used only when no structured citations exist.

var (
	markdownLinkRe = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\s)]+)\)`)
	bareURLRe      = regexp.MustCompile(`https?://[^\s<>")\]]+`)
)

// ExtractFromText pulls markdown links and bare URLs out of response text.
// Markdown titles are preserved; duplicates (by exact URL) are dropped.
func ExtractFromText(text string) []Source {
	if text == "" {
		return nil
	}

	var out []Source
	seen := make(map[string]bool)

	for _, m := range markdownLinkRe.FindAllStringSubmatch(text, -1) {
		url := trimTrailingPunct(m[2])
		if url == "" || seen[url] {
			continue
		}
		seen[url] = true
		out = append(out, Source{URL: url, Title: strings.TrimSpace(m[1])})
	}

	for _, raw := range bareURLRe.FindAllString(text, -1) {
		url := trimTrailingPunct(raw)
		if url == "" || seen[url] {
			continue
		}
		seen[url] = true
		out = append(out, Source{URL: url})
	}

	return out
}

// trimTrailingPunct strips sentence punctuation that the URL regex drags in
func trimTrailingPunct(url string) string {
	return strings.TrimRight(url, ".,;:!?")
}
