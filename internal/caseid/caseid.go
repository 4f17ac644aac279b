// Package caseid derives stable case identifiers from document identifiers.
//
// Document IDs encode the case docket number as a prefix before the first
// underscore (e.g. "1:13-cv-00002_dcd_entry_2930836" belongs to case
// "1:13-cv-00002"). Every record source applies the same derivation before
// aggregation so cross-source joins on case_id line up.
package caseid

import "strings"

// Resolve extracts the case ID from a doc ID. It returns the prefix before
// the first underscore and true, or "" and false when docID is empty or
// starts with an underscore. Resolve is total: it never fails, it only
// reports that no case ID could be derived.
func Resolve(docID string) (string, bool) {
	if docID == "" {
		return "", false
	}
	prefix, _, _ := strings.Cut(docID, "_")
	if prefix == "" {
		return "", false
	}
	return prefix, true
}
