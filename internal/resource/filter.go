package resource

import "strings"

// Filter returns the items matching a case-insensitive substring search
// across each entity's search fields, intersected with equality checks
// on the given enum filter dimensions. A filter value of "" or "all"
// (any case) leaves that dimension unconstrained.
//
// Filter is a pure function of its inputs: it never mutates items and
// recomputing it with the same arguments yields the same result.
func Filter[T Entity](items []T, term string, filters map[string]string) []T {
	term = strings.ToLower(strings.TrimSpace(term))

	out := make([]T, 0, len(items))
	for _, item := range items {
		if !matchesTerm(item, term) {
			continue
		}
		if !matchesFilters(item, filters) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesTerm[T Entity](item T, term string) bool {
	if term == "" {
		return true
	}
	for _, field := range item.SearchFields() {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func matchesFilters[T Entity](item T, filters map[string]string) bool {
	for dim, want := range filters {
		if want == "" || strings.EqualFold(want, "all") {
			continue
		}
		if !strings.EqualFold(item.FilterValue(dim), want) {
			return false
		}
	}
	return true
}
