package state

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/sysctl-control/internal/sysctl"
)

// SetFilter narrows the list to parameters matching query. Starting a filter
// remembers the cursor; clearing it keeps the selected parameter when it is
// still visible and otherwise restores the remembered position.
func (l *List) SetFilter(query string) {
	trimmed := strings.TrimSpace(query)
	prevTrimmed := strings.TrimSpace(l.Filter)
	selected := ""
	if current, ok := l.Current(); ok {
		selected = current.Name
	}
	l.Filter = query
	if trimmed != "" && prevTrimmed == "" {
		l.LastCursor = l.Cursor
	}
	l.applyFilter()
	if trimmed != "" {
		if idx := BestMatchIndex(l.Items, trimmed); idx >= 0 {
			l.Cursor = idx
		}
		return
	}
	if prevTrimmed == "" {
		return
	}
	if idx := l.IndexOf(selected); idx >= 0 {
		l.Cursor = idx
	} else if l.LastCursor >= 0 && l.LastCursor < len(l.Items) {
		l.Cursor = l.LastCursor
	}
	l.LastCursor = -1
}

func (l *List) applyFilter() {
	l.Items = FilterParameters(l.Full, l.Filter)
	if len(l.Items) == 0 {
		l.Cursor = -1
		l.ViewportOffset = 0
		return
	}
	if l.Cursor < 0 {
		l.Cursor = 0
		return
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	if l.ViewportOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
	}
}

// FilterParameters returns the parameters whose name matches query, fuzzily
// first and by substring when nothing matches fuzzily.
func FilterParameters(parameters []*sysctl.Parameter, query string) []*sysctl.Parameter {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return CloneParameters(parameters)
	}
	names := make([]string, len(parameters))
	for i, p := range parameters {
		names[i] = p.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, names)
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]*sysctl.Parameter, 0, len(matches))
		for idx, p := range parameters {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, p)
			}
		}
		if len(filtered) > 0 {
			return filtered
		}
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]*sysctl.Parameter, 0, len(parameters))
	for _, p := range parameters {
		if strings.Contains(strings.ToLower(p.Name), lower) || strings.Contains(strings.ToLower(p.Value), lower) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// BestMatchIndex returns the best index for the query among the provided
// parameters: exact name, then last-component prefix, then name substring,
// then the closest fuzzy match.
func BestMatchIndex(parameters []*sysctl.Parameter, query string) int {
	trimmed := strings.TrimSpace(query)
	if len(parameters) == 0 {
		return -1
	}
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	for i, p := range parameters {
		if strings.EqualFold(p.Name, trimmed) {
			return i
		}
	}
	for i, p := range parameters {
		if strings.HasPrefix(strings.ToLower(p.AbsoluteName()), lower) {
			return i
		}
	}
	for i, p := range parameters {
		if strings.Contains(strings.ToLower(p.Name), lower) {
			return i
		}
	}
	names := make([]string, len(parameters))
	for i, p := range parameters {
		names[i] = p.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, names)
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance {
			best = rank
			continue
		}
		if rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex {
			best = rank
		}
	}
	if best.OriginalIndex < 0 || best.OriginalIndex >= len(parameters) {
		return 0
	}
	return best.OriginalIndex
}
