package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"projmeta/internal/gen"
)

func newGenCommand(s *state) *cobra.Command {
	var noComments bool

	cmd := &cobra.Command{
		Use:   "gen [manifest]",
		Short: "Generate registry providers from a manifest",
		Long: `Render a manifest into a Go file that declares the persistence and projection
providers and registers them with the default registry from init().`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := s.loadManifest(s.manifestPath(args))
			if err != nil {
				return err
			}

			cfg := gen.DefaultGeneratorConfig()
			cfg.PackageName = s.cfg.Gen.Package
			cfg.OutputDir = s.cfg.Gen.OutputDir
			cfg.Filename = s.cfg.Gen.Filename
			cfg.GenerateComments = !noComments

			file, err := gen.NewGenerator(cfg).Generate(doc)
			if err != nil {
				return err
			}

			paths, err := gen.WriteFiles(cfg.OutputDir, file)
			if err != nil {
				return err
			}

			s.logger.Debug("generated providers", zap.Strings("files", paths))

			for _, path := range paths {
				color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Generated %s\n", path)
			}

			return nil
		},
	}

	cmd.Flags().String("out", "", "output directory (default .)")
	cmd.Flags().String("package", "", "package name of the generated file")
	cmd.Flags().String("filename", "", "generated file name (default "+gen.DefaultFilename+")")
	cmd.Flags().BoolVar(&noComments, "no-comments", false, "omit comments on metadata entries")

	return cmd
}
