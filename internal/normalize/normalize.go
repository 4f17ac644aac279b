// Package normalize cleans raw court-filing text before extraction.
// PDF-to-text output is full of page markers, footnote numbers, hard
// hyphenation, and typographic quotes; the scanner and classifier both
// assume the flattened form this package produces.
package normalize

import (
	"regexp"
	"strings"
)

var (
	pageMarker     = regexp.MustCompile(`(?m)^(?:Page \d+ of \d+)\s*$`)
	boilerplate    = regexp.MustCompile(`(?m)^\s*(Id\.|Federal Trade Commission).*\n`)
	footnoteMarker = regexp.MustCompile(`\s*\[\d+\]`)
	bareNumberLine = regexp.MustCompile(`(?m)^\s*\[?\d+\]?\s*$`)
	hyphenBreak    = regexp.MustCompile(`(\w+)-\s*\n\s*(\w+)`)
	softNewline    = regexp.MustCompile(`([^\n])\n([^\n])`)
	leadingIndent  = regexp.MustCompile(`(?m)^[ \t]+`)
	blankRun       = regexp.MustCompile(`\n{3,}`)
	spaceRun       = regexp.MustCompile(`[ \t]{2,}`)
)

// typographic characters folded to their ASCII equivalents.
var charFolds = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	"–", "-",
	"—", "-",
	" ", " ",
)

// Clean normalizes filing text: strips page and footnote markers, folds
// typographic quotes and dashes, repairs hyphenation across line breaks,
// collapses single newlines into spaces (paragraph breaks survive), and
// squeezes whitespace runs.
func Clean(text string) string {
	text = pageMarker.ReplaceAllString(text, "")
	text = boilerplate.ReplaceAllString(text, "")
	text = footnoteMarker.ReplaceAllString(text, "")
	text = charFolds.Replace(text)
	text = spaceRun.ReplaceAllString(text, " ")
	text = bareNumberLine.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "-\n", "")
	text = hyphenBreak.ReplaceAllString(text, "$1$2")

	// Collapse single line breaks into spaces but keep paragraph breaks.
	// regexp has no lookarounds, so apply until fixed point: each pass
	// consumes the character after the newline, which can hide an
	// adjacent soft newline from the same pass.
	for {
		collapsed := softNewline.ReplaceAllString(text, "$1 $2")
		if collapsed == text {
			break
		}
		text = collapsed
	}

	text = leadingIndent.ReplaceAllString(text, "")
	text = blankRun.ReplaceAllString(text, "\n\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	text = strings.TrimSpace(strings.Join(lines, "\n"))
	return spaceRun.ReplaceAllString(text, " ")
}
