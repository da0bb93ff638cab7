// Package diagnostic provides structured errors, warnings and notes
// produced while checking projection and persistence metadata.
//
// Key capabilities:
//   - Stable diagnostic codes for each well-formedness rule
//   - Subject (type) and field path for every finding
//   - "Did you mean" suggestions for unknown names
//   - A combined error for callers that only need pass/fail
package diagnostic
