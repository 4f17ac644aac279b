package caseid

import "testing"

func TestResolve(t *testing.T) {
	cases := []struct {
		docID  string
		want   string
		wantOK bool
	}{
		{"1:13-cv-00002_dcd_entry_2930836", "1:13-cv-00002", true},
		{"1:13-cv-00002", "1:13-cv-00002", true},
		{"X_1", "X", true},
		{"", "", false},
		{"_leading", "", false},
		{"__", "", false},
	}
	for _, tc := range cases {
		got, ok := Resolve(tc.docID)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", tc.docID, got, ok, tc.want, tc.wantOK)
		}
	}
}
