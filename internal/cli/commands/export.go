package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"projmeta/internal/cli/config"
	"projmeta/internal/manifest"
	"projmeta/metamodel"
)

func newExportCommand(s *state) *cobra.Command {
	var (
		qualified bool
		output    string
	)

	cmd := &cobra.Command{
		Use:   "export [manifest]",
		Short: "Print the registered metadata as a normalized manifest",
		Long: `Load a manifest into a registry and write the registered metadata back as a
manifest: inferred collections, relations and ids are spelled out, and
types are sorted. --qualified writes every type with its package path.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := s.loadManifest(s.manifestPath(args))
			if err != nil {
				return err
			}

			r, err := s.registry(doc, s.cfg.Strict)
			if err != nil {
				return err
			}

			var persistence []metamodel.PersistenceMetadata

			for _, t := range managedTypes(r) {
				pm, err := r.Entity(t)
				if err != nil {
					return err
				}

				persistence = append(persistence, pm)
			}

			var projections []metamodel.ProjectionMetadata

			for _, t := range r.Projections() {
				pm, err := r.Projection(t)
				if err != nil {
					return err
				}

				projections = append(projections, pm)
			}

			pkg := doc.Package
			if qualified {
				pkg = ""
			}

			out := manifest.FromMetadata(pkg, persistence, projections)

			if output != "" {
				return manifest.WriteFile(out, output)
			}

			format := manifest.FormatYAML
			if s.cfg.Format == config.FormatJSON {
				format = manifest.FormatJSON
			}

			data, err := manifest.Encode(out, format)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))

			return err
		},
	}

	cmd.Flags().BoolVar(&qualified, "qualified", false, "qualify every type with its package path")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the manifest to a file")

	return cmd
}
