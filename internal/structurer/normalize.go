package structurer

import (
	"regexp"
	"strings"
)

var (
	spaceRunRe   = regexp.MustCompile(`[ \t]+`)
	hyphenWrapRe = regexp.MustCompile(`-\s*\n\s*`)
	newlineRunRe = regexp.MustCompile(`\n{3,}`)
)

// Normalize cleans raw page-marked text: runs of spaces and tabs collapse to
// one space, words hyphen-broken across a line wrap are rejoined, every line
// is trimmed and runs of three or more newlines collapse to two. Pure and
// idempotent; there is no failure mode.
func Normalize(raw string) string {
	text := spaceRunRe.ReplaceAllString(raw, " ")
	text = hyphenWrapRe.ReplaceAllString(text, "")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")

	// Newlines collapse after the per-line trim so that whitespace-only lines
	// cannot survive a pass and break idempotence.
	text = newlineRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
