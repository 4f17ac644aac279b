package quotes

import (
	"testing"
)

func TestExtract_KeywordFilter(t *testing.T) {
	e := NewExtractor(DefaultConfig())
	text := `The order states "defendants shall pay the judgment in full within thirty days" and ` +
		`the clerk noted "the hearing begins at nine tomorrow morning sharp" on the docket.`

	got := e.Extract(text)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	if got[0].Text != "defendants shall pay the judgment in full within thirty days" {
		t.Errorf("Text = %q", got[0].Text)
	}
}

func TestExtract_MinWords(t *testing.T) {
	e := NewExtractor(DefaultConfig())
	got := e.Extract(`He called it a "fair settlement" at the time.`)
	if len(got) != 0 {
		t.Errorf("got %d candidates, want 0 for a two-word span", len(got))
	}
}

func TestExtract_SpeakerAfterQuote(t *testing.T) {
	e := NewExtractor(DefaultConfig())
	text := `"We are pleased to resolve these allegations," said Jane Porter, chief legal officer.`
	got := e.Extract(text)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	if got[0].Speaker != "Jane Porter" {
		t.Errorf("Speaker = %q, want Jane Porter", got[0].Speaker)
	}
}

func TestExtract_SpeakerBeforeQuote(t *testing.T) {
	e := NewExtractor(DefaultConfig())
	text := `Chairman Daniel Ross stated "the company is committed to full compliance going forward" during the hearing.`
	got := e.Extract(text)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	if got[0].Speaker != "Chairman Daniel Ross" {
		t.Errorf("Speaker = %q, want Chairman Daniel Ross", got[0].Speaker)
	}
}

func TestExtract_NoCueNoSpeaker(t *testing.T) {
	e := NewExtractor(DefaultConfig())
	text := `The filing includes "a schedule to settle every outstanding claim this year" as Exhibit A.`
	got := e.Extract(text)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	if got[0].Speaker != "" {
		t.Errorf("Speaker = %q, want empty when no attribution cue exists", got[0].Speaker)
	}
}

func TestExtract_Empty(t *testing.T) {
	e := NewExtractor(DefaultConfig())
	if got := e.Extract(""); len(got) != 0 {
		t.Errorf("got %d candidates from empty text", len(got))
	}
}
