package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"projmeta/internal/analyze"
	"projmeta/internal/cli/config"
	"projmeta/internal/manifest"
)

func newScanCommand(s *state) *cobra.Command {
	var (
		dir    string
		output string
	)

	cmd := &cobra.Command{
		Use:   "scan [packages...]",
		Short: "Extract a manifest from marked Go types",
		Long: `Load Go packages and extract entities, embeddables and projections from
//projmeta: markers and struct tags. The manifest is printed as YAML (JSON with
--format json) or written to --output, whose extension picks the format.`,
		Example: `  projmeta scan ./model
  projmeta scan -o shop.yaml projmeta/examples/shop`,
		RunE: func(cmd *cobra.Command, args []string) error {
			patterns := args
			if len(patterns) == 0 {
				patterns = []string{"."}
			}

			s.logger.Debug("scanning packages", zap.Strings("patterns", patterns), zap.String("dir", dir))

			doc, err := analyze.Scan(dir, patterns...)
			if err != nil {
				return err
			}

			if output != "" {
				if err := manifest.WriteFile(doc, output); err != nil {
					return err
				}

				color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(),
					"Wrote %s: %d entities, %d embeddables, %d projections\n",
					output, len(doc.Entities), len(doc.Embeddables), len(doc.Projections))

				return nil
			}

			format := manifest.FormatYAML
			if s.cfg.Format == config.FormatJSON {
				format = manifest.FormatJSON
			}

			data, err := manifest.Encode(doc, format)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))

			return err
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory to load packages from")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the manifest to a file")

	return cmd
}
