// Package commands implements the projmeta command tree.
package commands

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"projmeta/internal/cli/config"
)

var (
	// Version information, set at build time.
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// state is shared by every command of one invocation.
type state struct {
	configFile string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

// rootFlags maps persistent flags onto configuration keys.
var rootFlags = map[string]string{
	"manifest":    "manifest",
	"format":      "format",
	"ignore-case": "ignore_case",
	"strict":      "strict",
	"no-color":    "no_color",
}

// genFlags maps gen command flags onto configuration keys.
var genFlags = map[string]string{
	"out":      "gen.output_dir",
	"package":  "gen.package",
	"filename": "gen.filename",
}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	s := &state{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "projmeta",
		Short: "Projection and entity metadata tooling",
		Long: color.CyanString(`projmeta - projection and entity metadata

Scan Go packages for entity and projection markers, keep the result in a
manifest, generate registry providers from it, and query the metadata graph:
path resolution, required fields, computed fields, ids and attribute types.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = s.logger.Sync()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&s.configFile, "config", "", "config file (default ./projmeta.yaml)")
	flags.BoolVarP(&s.verbose, "verbose", "v", false, "enable development logging")
	flags.StringP("manifest", "m", "", "manifest file (yaml or json)")
	flags.StringP("format", "f", "", "output format: table, json, yaml")
	flags.Bool("no-color", false, "disable colored output")
	flags.Bool("ignore-case", false, "match field names case-insensitively")
	flags.Bool("strict", false, "treat validation findings as failures")

	rootCmd.AddCommand(
		NewVersionCommand(),
		newScanCommand(s),
		newGenCommand(s),
		newValidateCommand(s),
		newExportCommand(s),
		newResolveCommand(s),
		newRequiredCommand(s),
		newComputedCommand(s),
		newIDsCommand(s),
		newFieldsCommand(s),
		newTypeCommand(s),
	)

	return rootCmd
}

// setup loads configuration and builds the logger.
func (s *state) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(s.configFile, func(v *viper.Viper) error {
		if err := bindFlags(cmd, v, rootFlags); err != nil {
			return err
		}

		if cmd.Name() == "gen" {
			return bindFlags(cmd, v, genFlags)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.cfg = cfg

	if cfg.NoColor {
		color.NoColor = true
	}

	if s.verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			logger = zap.NewNop()
		}

		s.logger = logger
	}

	s.logger.Debug("configuration loaded",
		zap.String("command", cmd.Name()),
		zap.String("manifest", cfg.Manifest),
		zap.String("format", cfg.Format))

	return nil
}

func bindFlags(cmd *cobra.Command, v *viper.Viper, keys map[string]string) error {
	for name, key := range keys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}

		if err := v.BindPFlag(key, flag); err != nil {
			return err
		}
	}

	return nil
}

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			title := color.New(color.FgCyan, color.Bold)

			for _, row := range [][2]string{
				{"projmeta version: ", Version},
				{"Git commit: ", GitCommit},
				{"Build date: ", BuildDate},
				{"Go version: ", runtime.Version()},
			} {
				title.Fprint(w, row[0])
				fmt.Fprintln(w, row[1])
			}
		},
	}
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)

		return err
	}

	return nil
}
