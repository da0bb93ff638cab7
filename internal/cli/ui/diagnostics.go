package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"projmeta/internal/diagnostic"
)

// PrintDiagnostics writes one block per diagnostic, errors first, followed by
// a summary line.
func PrintDiagnostics(w io.Writer, diags *diagnostic.Diagnostics, noColor bool) {
	for _, d := range diags.All() {
		header := severityColor(d.Severity)
		if noColor {
			header.DisableColor()
		}

		location := d.Subject
		if d.FieldPath != "" {
			location += " " + d.FieldPath
		}

		header.Fprintf(w, "%s [%s]", strings.ToUpper(d.Severity.String()), d.Code)
		fmt.Fprintf(w, " %s: %s\n", location, d.Message)

		if len(d.Suggestions) > 0 {
			fmt.Fprintf(w, "   Did you mean: %s?\n", strings.Join(d.Suggestions, ", "))
		}
	}

	summary := color.New(color.FgGreen, color.Bold)
	if diags.HasErrors() {
		summary = color.New(color.FgRed, color.Bold)
	}

	if noColor {
		summary.DisableColor()
	}

	summary.Fprintf(w, "%d error(s), %d warning(s), %d info\n",
		len(diags.Errors), len(diags.Warnings), len(diags.Infos))
}

func severityColor(s diagnostic.Severity) *color.Color {
	switch s {
	case diagnostic.SeverityError:
		return color.New(color.FgRed, color.Bold)
	case diagnostic.SeverityWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan, color.Bold)
	}
}
