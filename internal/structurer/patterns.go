package structurer

import (
	"regexp"
	"strings"

	"github.com/TheKunal21/Detailed-diagnosis-Report-DDR/internal/report"
)

// Chain is an ordered list of candidate patterns for one named field. Source
// documents phrase the same section many different ways ("Impacted Area 3",
// "Affected Area 3", "Zone 3"), so each field carries a priority-ordered
// fallback chain: patterns are tried in order and the first capture wins,
// keeping the most specific phrasing authoritative when several could fire.
type Chain []*regexp.Regexp

// NewChain compiles the given expressions into a chain. Every expression must
// contain exactly one capture group.
func NewChain(exprs ...string) Chain {
	c := make(Chain, 0, len(exprs))
	for _, e := range exprs {
		c = append(c, regexp.MustCompile(e))
	}
	return c
}

// Find returns the trimmed first capture of the first matching pattern.
func (c Chain) Find(text string) (string, bool) {
	for _, re := range c {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}
	return "", false
}

// First is Find with the NotAvailable sentinel as the miss value.
func (c Chain) First(text string) string {
	if v, ok := c.Find(text); ok {
		return v
	}
	return report.NotAvailable
}

// Truncate bounds a captured value to max bytes. Truncation is a silent,
// lossy operation, never an error; max <= 0 means unbounded.
func Truncate(s string, max int) string {
	if max > 0 && len(s) > max {
		return s[:max]
	}
	return s
}

// splitCaptured splits text on every match of re, which must carry one
// capture group (the area label). It returns the captured labels and the
// content spans between one match and the next. Unlike a plain split, the
// labels survive.
func splitCaptured(re *regexp.Regexp, text string) (labels, contents []string) {
	locs := re.FindAllStringSubmatchIndex(text, -1)
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		labels = append(labels, text[loc[2]:loc[3]])
		contents = append(contents, text[loc[1]:end])
	}
	return labels, contents
}
