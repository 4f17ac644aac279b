// Package cashscan finds candidate monetary values in document text.
//
// A candidate is a literal dollar token pulled verbatim from the text,
// scored by keyword votes over its surrounding context. The scanner never
// synthesizes or rounds values: whatever it reports is exactly what the
// document says, which is what lets the assignment engine promise
// no-fabrication downstream.
package cashscan

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// amountPattern matches dollar tokens: $ plus digits with optional
// thousands separators and optional cents.
var amountPattern = regexp.MustCompile(`\$\d[\d,]*(?:\.\d{2})?`)

// sigPrefixChars is how much leading context participates in the
// dedup signature. Two candidates are duplicates only when both value
// and this prefix match exactly.
const sigPrefixChars = 60

// Candidate is one monetary mention. Value is parsed literally from
// RawText; FeatureVotes scores the legal-context vocabulary around it.
type Candidate struct {
	DocID        string  `json:"doc_id,omitempty"`
	CaseID       string  `json:"case_id,omitempty"`
	Value        float64 `json:"value"`
	RawText      string  `json:"raw_text"`
	Context      string  `json:"context"`
	FeatureVotes int     `json:"feature_votes"`
}

// Scanner scans text for cash-amount candidates under a fixed policy.
type Scanner struct {
	cfg Config
}

// NewScanner returns a Scanner with the given policy.
func NewScanner(cfg Config) *Scanner {
	return &Scanner{cfg: cfg}
}

// Scan returns all deduplicated candidates in text at or above the
// configured minimum, sorted by feature votes descending then value
// descending. Empty or matchless text yields an empty slice.
func (s *Scanner) Scan(text string) []Candidate {
	seen := make(map[string]bool)
	var out []Candidate

	for _, span := range amountPattern.FindAllStringIndex(text, -1) {
		raw := text[span[0]:span[1]]
		value, err := parseAmount(raw)
		if err != nil {
			continue
		}
		if value < s.cfg.MinAmount {
			continue
		}

		ctx := window(text, span[0], span[1], s.cfg.ContextChars)
		sig := fmt.Sprintf("%v:%s", value, prefix(ctx, sigPrefixChars))
		if seen[sig] {
			continue
		}
		seen[sig] = true

		out = append(out, Candidate{
			Value:        value,
			RawText:      raw,
			Context:      ctx,
			FeatureVotes: s.votes(ctx),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FeatureVotes != out[j].FeatureVotes {
			return out[i].FeatureVotes > out[j].FeatureVotes
		}
		return out[i].Value > out[j].Value
	})
	return out
}

// votes scores the context window against the configured keywords.
func (s *Scanner) votes(ctx string) int {
	lower := strings.ToLower(ctx)
	total := 0
	for _, kw := range s.cfg.VoteKeywords {
		if strings.Contains(lower, kw.Keyword) {
			total += kw.Votes
		}
	}
	return total
}

// parseAmount converts a matched dollar token to its numeric value.
func parseAmount(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimPrefix(raw, "$"), ",", "")
	return strconv.ParseFloat(cleaned, 64)
}

// window extracts a symmetric context window around [start,end), clipped
// to the text bounds and snapped to rune boundaries, with newlines
// flattened to spaces.
func window(text string, start, end, chars int) string {
	lo := start - chars
	if lo < 0 {
		lo = 0
	}
	hi := end + chars
	if hi > len(text) {
		hi = len(text)
	}
	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}
	return strings.ReplaceAll(text[lo:hi], "\n", " ")
}

// prefix returns at most n leading bytes of s, snapped back to a rune
// boundary.
func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
