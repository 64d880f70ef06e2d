// Package textproc implements text normalization, chunking, language
// detection, and entity extraction for Vietnamese aquaculture articles.
package textproc

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// The rule order below is load-bearing: the ellipsis glyph must be expanded
// before period runs collapse, and digit-group commas are rewritten to a
// fixpoint, so that a second Normalize pass is always a no-op.
var (
	periodRun          = regexp.MustCompile(`\.{2,}`)
	digitComma         = regexp.MustCompile(`(\d+),(\d+)`)
	horizontalSpace    = regexp.MustCompile(`[ \t\x{00a0}]+`)
	spaceAroundNewline = regexp.MustCompile(` *\n *`)
	blankLineRun       = regexp.MustCompile(`\n{3,}`)
)

// Normalize canonicalizes article text: Unicode NFC composition, ellipsis and
// period-run collapse, decimal comma rewriting, whitespace tightening within
// lines, and blank-line runs reduced to a single paragraph break. Paragraph
// boundaries (double newlines) are preserved. Normalize is idempotent.
func Normalize(text string) string {
	text = norm.NFC.String(text)

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\u200b", "")
	text = strings.ReplaceAll(text, "…", "...")
	text = periodRun.ReplaceAllString(text, ".")

	// "1,234,567" needs two passes: each rewrite consumes one comma.
	for {
		replaced := digitComma.ReplaceAllString(text, "$1.$2")
		if replaced == text {
			break
		}
		text = replaced
	}

	text = horizontalSpace.ReplaceAllString(text, " ")
	text = spaceAroundNewline.ReplaceAllString(text, "\n")
	text = blankLineRun.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
