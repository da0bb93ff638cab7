// Package match provides identifier normalization, edit distance and
// "did you mean" ranking for field names that failed to resolve.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers for fuzzy matching
//   - Levenshtein: computes rune-wise edit distance between strings
//   - RankCandidates: ranks declared names against a misspelled one
//   - Suggest: returns the closest declared names worth reporting
package match
