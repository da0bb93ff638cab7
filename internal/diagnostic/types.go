package diagnostic

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"projmeta/internal/common"
)

// Diagnostic codes reported by manifest and registry validation.
const (
	CodeDuplicateType        = "duplicate_type"
	CodeDuplicateField       = "duplicate_field"
	CodeBlankName            = "blank_name"
	CodeInvalidType          = "invalid_type"
	CodeInvalidPath          = "invalid_path"
	CodeInvalidComputed      = "invalid_computed_field"
	CodeInvalidMethod        = "invalid_method_reference"
	CodeInvalidCollection    = "invalid_collection_kind"
	CodeEntityNotFound       = "entity_not_found"
	CodeProjectionNotFound   = "nested_projection_not_found"
	CodeSourcePathNotFound   = "source_path_not_found"
	CodeProjectionCycle      = "projection_cycle"
	CodeMissingReducer       = "missing_reducer"
	CodeUnexpectedReducer    = "reducer_on_scalar_dependency"
	CodeUnknownReducer       = "unknown_reducer"
	CodeIDNotFound           = "id_field_not_found"
	CodeComputedShadowsField = "computed_shadows_field"
	CodeFoldedNameCollision  = "case_insensitive_name_collision"
	CodeAmbiguousDependency  = "ambiguous_dependency"
	CodeInvalidTag           = "invalid_tag"
)

// Diagnostics holds all diagnostic information from a validation pass.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Subject identifies the type this relates to (if any).
	Subject string
	// FieldPath identifies which field this relates to (if any).
	FieldPath string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, subject, fieldPath string, suggestions ...string) {
	d.Errors = append(d.Errors, newDiagnostic(SeverityError, code, message, subject, fieldPath, suggestions))
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, subject, fieldPath string, suggestions ...string) {
	d.Warnings = append(d.Warnings, newDiagnostic(SeverityWarning, code, message, subject, fieldPath, suggestions))
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, subject, fieldPath string) {
	d.Infos = append(d.Infos, newDiagnostic(SeverityInfo, code, message, subject, fieldPath, nil))
}

func newDiagnostic(sev Severity, code, message, subject, fieldPath string, suggestions []string) Diagnostic {
	return Diagnostic{
		Severity:    sev,
		Code:        code,
		Message:     message,
		Subject:     subject,
		FieldPath:   fieldPath,
		Suggestions: suggestions,
	}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// All returns every diagnostic, errors first, each group sorted by subject, field path and code.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))

	for _, group := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		sorted := append([]Diagnostic(nil), group...)
		sort.SliceStable(sorted, func(i, j int) bool {
			a, b := sorted[i], sorted[j]
			if a.Subject != b.Subject {
				return a.Subject < b.Subject
			}

			if a.FieldPath != b.FieldPath {
				return a.FieldPath < b.FieldPath
			}

			return a.Code < b.Code
		})
		all = append(all, sorted...)
	}

	return all
}

// HasCode returns true if any diagnostic carries code.
func (d *Diagnostics) HasCode(code string) bool {
	for _, diag := range d.All() {
		if diag.Code == code {
			return true
		}
	}

	return false
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	errs := make([]error, 0, len(d.Errors))
	for _, e := range d.Errors {
		errs = append(errs, errors.New(e.String()))
	}

	return errors.Join(errs...)
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Subject != "" {
		prefix = append(prefix, "["+d.Subject+"]")
	}

	if d.FieldPath != "" {
		prefix = append(prefix, d.FieldPath)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
