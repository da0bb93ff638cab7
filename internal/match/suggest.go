package match

import (
	"sort"
)

const (
	// DefaultMinScore is the minimum similarity for a name to be suggested.
	DefaultMinScore = 0.6
	// DefaultLimit caps the number of suggestions reported for one name.
	DefaultLimit = 3
)

// Candidate is one declared name scored against a requested name.
type Candidate struct {
	Name  string
	Score float64
}

// CandidateList is a ranked list of candidates.
type CandidateList []Candidate

// RankCandidates scores every declared name against target.
// Returns candidates sorted by score (descending), then by name.
func RankCandidates(target string, declared []string) CandidateList {
	candidates := make(CandidateList, 0, len(declared))
	seen := make(map[string]struct{}, len(declared))

	for _, name := range declared {
		if _, dup := seen[name]; dup || name == "" {
			continue
		}

		seen[name] = struct{}{}
		candidates = append(candidates, Candidate{Name: name, Score: NameSimilarity(target, name)})
	}

	sort.Sort(candidates)

	return candidates
}

// Suggest returns up to DefaultLimit declared names close enough to target.
func Suggest(target string, declared []string) []string {
	return RankCandidates(target, declared).AboveThreshold(DefaultMinScore).Top(DefaultLimit).Names()
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil if there are none.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// AboveThreshold returns candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}

	return result
}

// Names returns the candidate names in rank order.
func (c CandidateList) Names() []string {
	if len(c) == 0 {
		return nil
	}

	names := make([]string, len(c))
	for i, cand := range c {
		names[i] = cand.Name
	}

	return names
}
