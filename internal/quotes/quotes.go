// Package quotes pulls direct quotations out of filing text and attaches
// a best-effort speaker via attribution cues.
//
// This is the first-pass layer only: quoted spans, keyword filtering, and
// a rule-based cue regex for attribution. Anything smarter (NER,
// reranking) lives outside this pipeline.
package quotes

import (
	"regexp"
	"strings"
)

// quotedSpan matches a double-quoted span. Normalization has already
// folded typographic quotes to ASCII.
var quotedSpan = regexp.MustCompile(`"([^"]+)"`)

// attributionCue matches reporting verbs near a quote.
var attributionCue = regexp.MustCompile(
	`(?i)\b(?:said|stated|noted|wrote|posted|testified|according to|announced|submitted)\b`)

// speakerBefore captures "X said ..." style attributions: a capitalized
// name run directly before a cue verb.
var speakerBefore = regexp.MustCompile(
	`((?:[A-Z][\w.&'-]*\s+){0,4}[A-Z][\w.&'-]*)\s+(?i:said|stated|noted|wrote|announced|testified)\b`)

// speakerAfter captures "... ," said X. style attributions following the
// closing quote.
var speakerAfter = regexp.MustCompile(
	`^[\s,.]*(?i:said|stated|noted|wrote|announced|testified|according to)\s+((?:[A-Z][\w.&'-]*[ \t]*){1,5})`)

// Candidate is one extracted quotation.
type Candidate struct {
	DocID   string `json:"doc_id"`
	CaseID  string `json:"case_id,omitempty"`
	Text    string `json:"text"`
	Speaker string `json:"speaker"`
	Context string `json:"context,omitempty"`
}

// Config controls the first-pass filter. A span must have at least
// MinWords words and contain one of Keywords (case-insensitive) to
// survive; an empty keyword list disables the keyword filter.
type Config struct {
	MinWords       int      `yaml:"min_words"`
	Keywords       []string `yaml:"keywords"`
	AttributionWin int      `yaml:"attribution_window"`
}

// DefaultConfig is tuned for corporate-speech corpora: statements about
// resolving government actions.
func DefaultConfig() Config {
	return Config{
		MinWords: 5,
		Keywords: []string{
			"settle", "judgment", "consent", "resolve", "comply", "compliance",
			"allegation", "privacy", "penalty", "pay", "committed", "pleased",
		},
		AttributionWin: 160,
	}
}

// Extractor finds quote candidates in normalized text.
type Extractor struct {
	cfg Config
}

// NewExtractor returns an Extractor with the given config.
func NewExtractor(cfg Config) *Extractor {
	return &Extractor{cfg: cfg}
}

// Extract returns every quoted span that passes the word-count and
// keyword filters, with a speaker when an attribution cue resolves one.
// Speaker is empty, never fabricated, when no cue matches.
func (e *Extractor) Extract(text string) []Candidate {
	var out []Candidate
	for _, span := range quotedSpan.FindAllStringSubmatchIndex(text, -1) {
		body := text[span[2]:span[3]]
		if !e.passes(body) {
			continue
		}
		out = append(out, Candidate{
			Text:    body,
			Speaker: e.attribute(text, span[0], span[1]),
		})
	}
	return out
}

func (e *Extractor) passes(body string) bool {
	if len(strings.Fields(body)) < e.cfg.MinWords {
		return false
	}
	if len(e.cfg.Keywords) == 0 {
		return true
	}
	lower := strings.ToLower(body)
	for _, kw := range e.cfg.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// attribute looks for a cue verb around the quote at [start,end) and
// resolves the adjacent name run. Text after the quote wins over text
// before it, matching how filings and press releases order attribution.
func (e *Extractor) attribute(text string, start, end int) string {
	win := e.cfg.AttributionWin
	if win <= 0 {
		win = 160
	}

	hi := end + win
	if hi > len(text) {
		hi = len(text)
	}
	after := text[end:hi]
	if m := speakerAfter.FindStringSubmatch(after); m != nil {
		return strings.Trim(m[1], " \t.,")
	}

	lo := start - win
	if lo < 0 {
		lo = 0
	}
	before := text[lo:start]
	if attributionCue.MatchString(before) {
		ms := speakerBefore.FindAllStringSubmatch(before, -1)
		if len(ms) > 0 {
			return strings.Trim(ms[len(ms)-1][1], " \t.,")
		}
	}
	return ""
}
