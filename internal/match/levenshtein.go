package match

// Levenshtein computes the edit distance between two strings, counted in runes.
func Levenshtein(a, b string) int {
	return levenshteinRunes([]rune(a), []rune(b))
}

func levenshteinRunes(a, b []rune) int {
	if len(a) > len(b) {
		a, b = b, a
	}

	if len(a) == 0 {
		return len(b)
	}

	// two rows of the DP matrix, a being the shorter side
	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// Similarity returns 1 - distance/maxLen, in [0, 1]. Two empty strings are identical.
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)

	maxLen := max(len(ra), len(rb))
	if maxLen == 0 {
		return 1
	}

	return 1 - float64(levenshteinRunes(ra, rb))/float64(maxLen)
}

// NameSimilarity compares two identifiers after normalization. The better of
// the plain and suffix-stripped comparisons wins.
func NameSimilarity(a, b string) float64 {
	return max(
		Similarity(NormalizeIdent(a), NormalizeIdent(b)),
		Similarity(NormalizeIdentStripped(a), NormalizeIdentStripped(b)),
	)
}
