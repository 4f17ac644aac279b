// Package extract runs the per-document extraction stage: normalize the
// raw text, scan it for cash-amount candidates, classify the legal
// disposition, and pull quote candidates, stamping every record with its
// doc and case IDs.
//
// Documents are independent, so the stage fans out across a bounded
// worker pool; per-document work itself is pure and the output
// concatenation preserves input document order regardless of worker
// scheduling.
package extract

import (
	"context"

	"golang.org/x/sync/errgroup"

	"docket/internal/caseid"
	"docket/internal/cashscan"
	"docket/internal/logging"
	"docket/internal/normalize"
	"docket/internal/outcome"
	"docket/internal/quotes"
)

// Document is one input record. RawText is the only field extraction
// reads; CaseID is derived from DocID when absent.
type Document struct {
	DocID   string `json:"doc_id"`
	CaseID  string `json:"case_id,omitempty"`
	RawText string `json:"raw_text"`
}

// Output collects the three extraction streams across all documents, in
// input document order.
type Output struct {
	Quotes   []quotes.Candidate
	Outcomes []outcome.Record
	Cash     []cashscan.Candidate

	// Unresolved counts documents whose case ID could not be derived.
	Unresolved int
}

// Pipeline bundles the per-document extractors under one policy.
type Pipeline struct {
	scanner    *cashscan.Scanner
	classifier *outcome.Classifier
	extractor  *quotes.Extractor
}

// New builds a Pipeline from explicit configs with the embedded
// classification rules.
func New(scanCfg cashscan.Config, quoteCfg quotes.Config) *Pipeline {
	return &Pipeline{
		scanner:    cashscan.NewScanner(scanCfg),
		classifier: outcome.NewClassifier(),
		extractor:  quotes.NewExtractor(quoteCfg),
	}
}

// NewWithRules is New with an explicit classification rule set.
func NewWithRules(scanCfg cashscan.Config, quoteCfg quotes.Config, rs outcome.RuleSet) *Pipeline {
	p := New(scanCfg, quoteCfg)
	p.classifier = outcome.NewClassifierWith(rs)
	return p
}

// Default returns a Pipeline with the embedded default policies.
func Default() *Pipeline {
	return New(cashscan.DefaultConfig(), quotes.DefaultConfig())
}

// Document extracts everything from one document. Pure: no shared state,
// no I/O.
func (p *Pipeline) Document(doc Document) Output {
	var res Output

	id := doc.CaseID
	if id == "" {
		var ok bool
		if id, ok = caseid.Resolve(doc.DocID); !ok {
			res.Unresolved = 1
		}
	}

	text := normalize.Clean(doc.RawText)
	if text == "" {
		return res
	}

	cands := p.scanner.Scan(text)
	for i := range cands {
		cands[i].DocID = doc.DocID
		cands[i].CaseID = id
	}
	res.Cash = cands

	cls := p.classifier.Classify(text)
	var amount *float64
	if len(cands) > 0 {
		// Candidates arrive sorted by votes then value; the leader is
		// the document-level amount.
		amount = &cands[0].Value
	}
	if cls.OutcomeType != "" || amount != nil {
		res.Outcomes = append(res.Outcomes, outcome.Record{
			DocID:          doc.DocID,
			CaseID:         id,
			OutcomeType:    cls.OutcomeType,
			Amount:         amount,
			CourtType:      cls.CourtType,
			IsDismissed:    cls.IsDismissed,
			HasFeeShifting: cls.HasFeeShifting,
		})
	}

	qs := p.extractor.Extract(text)
	for i := range qs {
		qs[i].DocID = doc.DocID
		qs[i].CaseID = id
	}
	res.Quotes = qs

	return res
}

// Run extracts every document using up to parallel workers and returns
// the concatenated streams in input order.
func (p *Pipeline) Run(ctx context.Context, docs []Document, parallel int) (*Output, error) {
	log := logging.New("extract")
	if parallel < 1 {
		parallel = 1
	}

	results := make([]Output, len(docs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = p.Document(doc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out Output
	for _, r := range results {
		out.Quotes = append(out.Quotes, r.Quotes...)
		out.Outcomes = append(out.Outcomes, r.Outcomes...)
		out.Cash = append(out.Cash, r.Cash...)
		out.Unresolved += r.Unresolved
	}
	log.Info("extraction complete",
		"documents", len(docs),
		"quotes", len(out.Quotes),
		"outcomes", len(out.Outcomes),
		"cash_amounts", len(out.Cash),
		"unresolved_case_ids", out.Unresolved,
	)
	return &out, nil
}
