package state

import (
	"fmt"
	"strings"

	"github.com/atomicstack/tmux-popup-compose/internal/candidate"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// MatchMode selects how a query is matched against candidate labels.
type MatchMode int

const (
	// MatchSubstring keeps labels containing the query, ignoring case.
	MatchSubstring MatchMode = iota
	// MatchFuzzy keeps labels containing the query's runes in order.
	MatchFuzzy
)

func (m MatchMode) String() string {
	switch m {
	case MatchFuzzy:
		return "fuzzy"
	default:
		return "substring"
	}
}

// ParseMatchMode converts a config value into a MatchMode.
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "substring":
		return MatchSubstring, nil
	case "fuzzy":
		return MatchFuzzy, nil
	}
	return MatchSubstring, fmt.Errorf("unknown match mode %q", s)
}

// FilterCandidates returns the candidates whose label matches query, in their
// original order. An empty query returns a copy of every candidate.
func FilterCandidates(items []candidate.Candidate, query string, mode MatchMode) []candidate.Candidate {
	if query == "" {
		return candidate.Clone(items)
	}
	filtered := make([]candidate.Candidate, 0, len(items))
	switch mode {
	case MatchFuzzy:
		for _, item := range items {
			if fuzzy.MatchNormalizedFold(query, item.Label) {
				filtered = append(filtered, item)
			}
		}
	default:
		lower := strings.ToLower(query)
		for _, item := range items {
			if strings.Contains(strings.ToLower(item.Label), lower) {
				filtered = append(filtered, item)
			}
		}
	}
	return filtered
}
