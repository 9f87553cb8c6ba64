package cli

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/oakwood/internal/configloader"
	"github.com/yaklabco/oakwood/internal/logging"
	"github.com/yaklabco/oakwood/pkg/config"
	"github.com/yaklabco/oakwood/pkg/fsutil"
)

// ErrConfigExists is returned by config init when the target file exists
// and --force was not given.
var ErrConfigExists = errors.New("config file already exists")

type configInitFlags struct {
	format string
	output string
	force  bool
}

func newConfigCommand(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create and inspect configuration",
		Long: `Configuration is read from, in increasing precedence:

  $XDG_CONFIG_HOME/oakwood/config.yaml   user settings
  .oakwood.yml / .oakwood.toml           project settings, searched upward
  --config FILE                          an explicit file
  OAKWOOD_* environment variables
  command-line flags`,
	}

	cmd.AddCommand(newConfigInitCommand(app))
	cmd.AddCommand(newConfigShowCommand(app))
	cmd.AddCommand(newConfigEnvCommand())

	return cmd
}

func newConfigInitCommand(app *app) *cobra.Command {
	flags := &configInitFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter project configuration",
		Long: `Write a commented .oakwood.yml (or .oakwood.toml with --format toml) to
the current directory. An existing file is only replaced with --force.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, app, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "yaml", "file format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "path to write (default .oakwood.yml or .oakwood.toml)")
	cmd.Flags().BoolVar(&flags.force, "force", false, "overwrite an existing file")

	return cmd
}

func runConfigInit(cmd *cobra.Command, app *app, flags *configInitFlags) error {
	logger := logging.FromContext(cmd.Context())

	var (
		format config.FileFormat
		path   string
	)
	switch flags.format {
	case "yaml", "yml":
		format, path = config.FileYAML, ".oakwood.yml"
	case "toml":
		format, path = config.FileTOML, ".oakwood.toml"
	default:
		return fmt.Errorf("invalid format %q: must be yaml or toml", flags.format)
	}
	if flags.output != "" {
		path = flags.output
	}

	if _, err := os.Stat(path); err == nil && !flags.force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
	}

	data, err := config.GenerateTemplate(format, app.registry.Names())
	if err != nil {
		return err
	}

	if err := fsutil.WriteAtomic(cmd.Context(), path, data, 0); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, path, err)
	}

	logger.Debug("wrote config", logging.FieldConfig, path)
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)

	return nil
}

func newConfigShowCommand(app *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fileFormat := config.FileYAML
			switch format {
			case "yaml", "yml":
			case "toml":
				fileFormat = config.FileTOML
			default:
				return fmt.Errorf("invalid format %q: must be yaml or toml", format)
			}

			data, err := app.cfg.Encode(fileFormat)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or toml")

	return cmd
}

func newConfigEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the supported environment variables",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			vars := configloader.ListEnvVars()

			names := make([]string, 0, len(vars))
			for name := range vars {
				names = append(names, name)
			}
			slices.Sort(names)

			out := cmd.OutOrStdout()
			for _, name := range names {
				fmt.Fprintf(out, "%-22s %s\n", name, vars[name])
			}
		},
	}
}
