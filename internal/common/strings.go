package common

import (
	"golang.org/x/text/cases"
)

// UnknownStr is the String() result for out-of-range enum values.
const UnknownStr = "unknown"

// FoldKey returns the Unicode case-folded form of s for case-insensitive lookups.
func FoldKey(s string) string {
	return cases.Fold().String(s)
}
