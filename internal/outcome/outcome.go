// Package outcome classifies a document's legal disposition and extracts
// court metadata from raw text.
//
// Classification is pure keyword heuristics over lower-cased text. The
// outcome-type rules live in rules.yaml in strict priority order because
// dispositions share vocabulary; exactly one outcome type is assigned
// per document, and absence of every keyword is a valid result, not an
// error.
package outcome

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var rulesYAML []byte

// Rule matches when every clause has at least one phrase present.
type Rule struct {
	Type  string     `yaml:"type"`
	Match [][]string `yaml:"match"`
}

// RuleSet is the full classification policy: ordered outcome-type rules
// and independent court-type rules.
type RuleSet struct {
	OutcomeTypes []Rule `yaml:"outcome_types"`
	CourtTypes   []Rule `yaml:"court_types"`
}

// Classification is the disposition read off one document. Empty strings
// mean no rule matched; the flags default to false.
type Classification struct {
	OutcomeType    string `json:"outcome_type"`
	CourtType      string `json:"court_type"`
	IsDismissed    bool   `json:"is_dismissed"`
	HasFeeShifting bool   `json:"has_fee_shifting"`
}

// Record is one extracted outcome for a document, ready for the
// assignment engine. Amount is nil when the document yields no usable
// monetary figure; nil and zero are both disqualifying downstream.
type Record struct {
	DocID          string   `json:"doc_id"`
	CaseID         string   `json:"case_id,omitempty"`
	OutcomeType    string   `json:"outcome_type"`
	Amount         *float64 `json:"amount"`
	CourtType      string   `json:"court_type,omitempty"`
	IsDismissed    bool     `json:"is_dismissed"`
	HasFeeShifting bool     `json:"has_fee_shifting"`
}

// Classifier evaluates a RuleSet against document text.
type Classifier struct {
	rules RuleSet
}

// NewClassifier returns a Classifier using the embedded default rules.
func NewClassifier() *Classifier {
	rs, err := ParseRules(rulesYAML)
	if err != nil {
		panic(fmt.Sprintf("outcome: embedded rules.yaml: %v", err))
	}
	return &Classifier{rules: rs}
}

// NewClassifierWith returns a Classifier with an explicit rule set.
func NewClassifierWith(rs RuleSet) *Classifier {
	return &Classifier{rules: rs}
}

// ParseRules parses a classification rule set from YAML bytes.
func ParseRules(data []byte) (RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return RuleSet{}, fmt.Errorf("outcome: parse rules: %w", err)
	}
	return rs, nil
}

// Classify reads the disposition off text. Total: any input yields a
// Classification, possibly all-defaults.
func (c *Classifier) Classify(text string) Classification {
	lower := strings.ToLower(text)
	return Classification{
		OutcomeType:    firstMatch(c.rules.OutcomeTypes, lower),
		CourtType:      firstMatch(c.rules.CourtTypes, lower),
		IsDismissed:    isDismissed(lower),
		HasFeeShifting: hasFeeShifting(lower),
	}
}

func firstMatch(rules []Rule, lower string) string {
	for _, r := range rules {
		if matches(r, lower) {
			return r.Type
		}
	}
	return ""
}

func matches(r Rule, lower string) bool {
	for _, clause := range r.Match {
		hit := false
		for _, phrase := range clause {
			if strings.Contains(lower, phrase) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return len(r.Match) > 0
}

// isDismissed requires an explicit prejudice qualifier alongside
// "dismissed"; a bare mention of dismissal motions does not count.
func isDismissed(lower string) bool {
	return strings.Contains(lower, "dismissed") &&
		(strings.Contains(lower, "with prejudice") || strings.Contains(lower, "without prejudice"))
}

func hasFeeShifting(lower string) bool {
	if strings.Contains(lower, "attorney") && strings.Contains(lower, "fee") {
		return true
	}
	return strings.Contains(lower, "fee shifting") || strings.Contains(lower, "prevailing party")
}
