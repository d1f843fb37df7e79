package plays

import (
	"slices"
	"strings"
)

// Reconcile keeps the entries that relate to targetID, preserving their order.
// An entry relates to the target when it is the target itself, one of the base
// games in family, an expansion of the target, or a sibling expansion of a
// base game in family.
func Reconcile(entries []Entry, targetID string, family []string) []Entry {
	result := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if relates(entry, targetID, family) {
			result = append(result, entry)
		}
	}
	return result
}

func relates(entry Entry, targetID string, family []string) bool {
	if entry.GameID == targetID {
		return true
	}
	if slices.Contains(family, entry.GameID) {
		return true
	}
	if slices.Contains(entry.ExpansionFor, targetID) {
		return true
	}
	for _, base := range entry.ExpansionFor {
		if slices.Contains(family, base) {
			return true
		}
	}
	return false
}

// FilterByLists keeps entries posted in one of the known community lists.
func FilterByLists(entries []Entry, lists []string) []Entry {
	result := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.InList(lists) {
			result = append(result, entry)
		}
	}
	return result
}

// SortByDateDesc returns the entries newest first. Ties keep their input order.
func SortByDateDesc(entries []Entry) []Entry {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		ta, errA := parseDate(a.Date)
		tb, errB := parseDate(b.Date)
		if errA != nil || errB != nil {
			return strings.Compare(b.Date, a.Date)
		}
		return tb.Compare(ta)
	})
	return sorted
}
