package match

import (
	"strings"
	"unicode"

	"projmeta/internal/common"
)

// strippedSuffixes are dropped by NormalizeIdentStripped, longest first.
var strippedSuffixes = []string{"timestamp", "ids", "id", "at"}

// NormalizeIdent normalizes an identifier for fuzzy matching:
// CamelCase and separators are collapsed and the result is case-folded.
//
//	"orderID", "order_id" and "Order-Id" all normalize to "orderid".
func NormalizeIdent(s string) string {
	return common.FoldKey(strings.Join(tokenizeCamelCase(s), ""))
}

// NormalizeIdentStripped normalizes s and drops one common suffix token.
func NormalizeIdentStripped(s string) string {
	normalized := NormalizeIdent(s)

	for _, suffix := range strippedSuffixes {
		if strings.HasSuffix(normalized, suffix) && len(normalized) > len(suffix) {
			return strings.TrimSuffix(normalized, suffix)
		}
	}

	return normalized
}

// TokenizeIdent splits an identifier into case-folded tokens.
//
//	"getHTTPResponse" -> ["get", "http", "response"]
func TokenizeIdent(s string) []string {
	tokens := tokenizeCamelCase(s)
	for i, t := range tokens {
		tokens[i] = common.FoldKey(t)
	}

	return tokens
}

// tokenizeCamelCase splits a CamelCase, camelCase or snake_case identifier into tokens.
func tokenizeCamelCase(s string) []string {
	var (
		tokens  []string
		current []rune
	)

	flush := func() {
		if len(current) > 0 {
			tokens = append(tokens, string(current))
			current = current[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()

			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current = append(current, r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '$'
}

// startsToken reports whether runes[i] begins a new CamelCase token.
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	// lower -> Upper: "orderID" splits before 'I'
	if !unicode.IsUpper(prev) {
		return true
	}

	// end of an acronym: "XMLParser" splits before 'P'
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
