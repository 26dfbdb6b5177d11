package portfolio

import "strings"

const FilterAll = "all"

// Filter returns the projects shown for a filter button. "all" shows every
// project; any other value shows projects whose categories contain it.
func Filter(projects []Project, filter string) []Project {
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if Matches(p, filter) {
			out = append(out, p)
		}
	}
	return out
}

func Matches(p Project, filter string) bool {
	if filter == FilterAll {
		return true
	}
	return p.Categories != "" && strings.Contains(p.Categories, filter)
}

// NextFilter returns the filter after current, wrapping around. An unknown
// current value restarts at the first filter.
func NextFilter(filters []string, current string) string {
	if len(filters) == 0 {
		return FilterAll
	}
	for i, f := range filters {
		if f == current {
			return filters[(i+1)%len(filters)]
		}
	}
	return filters[0]
}
