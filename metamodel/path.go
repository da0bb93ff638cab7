package metamodel

import (
	"fmt"
	"strings"
	"unicode"
)

// PathSeparator separates segments of a dotted field path.
const PathSeparator = "."

// SplitHead splits a dotted path into its first segment and the remaining tail.
// "address.city" -> ("address", "city"); "email" -> ("email", "").
func SplitHead(path string) (head, tail string) {
	head, tail, _ = strings.Cut(path, PathSeparator)
	return head, tail
}

// JoinPath joins non-empty parts with the path separator.
func JoinPath(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))

	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}

	return strings.Join(nonEmpty, PathSeparator)
}

// Segments returns the segments of a dotted path.
func Segments(path string) []string {
	if path == "" {
		return nil
	}

	return strings.Split(path, PathSeparator)
}

// IsNestedPath returns true if the path traverses at least one relation hop.
func IsNestedPath(path string) bool {
	return strings.Contains(path, PathSeparator)
}

// ValidatePath checks that path is a non-empty dotted sequence of identifiers.
// Supports: "email", "address.city", "department.manager.address.city".
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	for _, seg := range Segments(path) {
		if seg == "" {
			return fmt.Errorf("%w %q: empty segment", ErrInvalidPath, path)
		}

		if !isValidIdent(seg) {
			return fmt.Errorf("%w %q: invalid identifier %q", ErrInvalidPath, path, seg)
		}
	}

	return nil
}

// isValidIdent checks if a string is a valid field identifier.
func isValidIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			// First character must be letter, underscore or dollar
			if !unicode.IsLetter(r) && r != '_' && r != '$' {
				return false
			}

			continue
		}

		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '$' {
			return false
		}
	}

	return true
}
