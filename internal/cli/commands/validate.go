package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"projmeta/internal/cli/ui"
	"projmeta/internal/diagnostic"
	"projmeta/internal/manifest"
)

type diagnosticView struct {
	Severity    string   `json:"severity" yaml:"severity"`
	Code        string   `json:"code" yaml:"code"`
	Subject     string   `json:"subject,omitempty" yaml:"subject,omitempty"`
	Field       string   `json:"field,omitempty" yaml:"field,omitempty"`
	Message     string   `json:"message" yaml:"message"`
	Suggestions []string `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

func newValidateCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [manifest]",
		Short: "Check a manifest for structural and graph errors",
		Long: `Check a manifest: names, paths, collection kinds, method references and
reducers first, then the metadata graph (registered entities, resolvable
source paths, nested projections, cycles). With --strict warnings fail too.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := s.manifestPath(args)

			doc, err := s.loadManifest(path)
			if err != nil {
				return err
			}

			diags := manifest.Validate(doc)
			if !diags.HasErrors() {
				r, err := s.registry(doc, false)
				if err != nil {
					return err
				}

				diags.Merge(*r.Validate())
			}

			views := make([]diagnosticView, 0, len(diags.Errors)+len(diags.Warnings)+len(diags.Infos))
			for _, d := range diags.All() {
				views = append(views, newDiagnosticView(d))
			}

			err = s.emit(cmd, views, func(w io.Writer, noColor bool) {
				ui.PrintDiagnostics(w, diags, noColor)
			})
			if err != nil {
				return err
			}

			switch {
			case diags.HasErrors():
				return fmt.Errorf("%s: %d error(s)", path, len(diags.Errors))
			case s.cfg.Strict && len(diags.Warnings) > 0:
				return fmt.Errorf("%s: %d warning(s) in strict mode", path, len(diags.Warnings))
			default:
				return nil
			}
		},
	}
}

func newDiagnosticView(d diagnostic.Diagnostic) diagnosticView {
	return diagnosticView{
		Severity:    d.Severity.String(),
		Code:        d.Code,
		Subject:     d.Subject,
		Field:       d.FieldPath,
		Message:     d.Message,
		Suggestions: d.Suggestions,
	}
}
