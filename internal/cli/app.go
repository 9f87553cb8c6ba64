package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/oakwood/internal/configloader"
	"github.com/yaklabco/oakwood/internal/logging"
	"github.com/yaklabco/oakwood/internal/ui/pretty"
	"github.com/yaklabco/oakwood/pkg/config"
	"github.com/yaklabco/oakwood/pkg/lang"
	"github.com/yaklabco/oakwood/pkg/lang/json"
	"github.com/yaklabco/oakwood/pkg/lang/mini"
	"github.com/yaklabco/oakwood/pkg/langdetect"
	"github.com/yaklabco/oakwood/pkg/source"
)

// persistentFlags are shared by every subcommand.
type persistentFlags struct {
	debug      bool
	configPath string
	color      string
	language   string
}

// app is the state shared by the commands of one invocation.
type app struct {
	flags    persistentFlags
	registry *lang.Registry
	detector *langdetect.Detector

	cfg     *config.Config
	logger  *log.Logger
	version string
}

func newApp() *app {
	registry := NewRegistry()

	return &app{
		registry: registry,
		detector: langdetect.New(registry),
		cfg:      config.NewConfig(),
		logger:   logging.Default(),
	}
}

// NewRegistry returns a registry holding the built-in plugins.
func NewRegistry() *lang.Registry {
	registry := lang.NewRegistry(mini.New(), json.New())
	registry.Alias("jsonc", json.Name)
	registry.Alias("json5", json.Name)

	return registry
}

func (a *app) addPersistentFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.BoolVar(&a.flags.debug, "debug", false, "enable debug logging")
	flags.StringVar(&a.flags.configPath, "config", "", "path to config file")
	flags.StringVar(&a.flags.color, "color", "auto", "colorize output: auto, always, never")
	flags.StringVarP(&a.flags.language, "language", "l", "", "force a language plugin instead of detecting it")
}

// setup resolves the configuration and the logger before any subcommand
// runs. Flags given on the command line override every config source.
func (a *app) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cliCfg := &config.Config{Language: a.flags.language}
	if cmd.Flags().Changed("color") {
		cliCfg.Color = config.ColorMode(a.flags.color)
	}
	if a.flags.debug {
		cliCfg.LogLevel = "debug"
	}

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		ExplicitPath: a.flags.configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	a.cfg = loaded.Config
	a.logger = logging.NewWriter(cmd.ErrOrStderr(), a.cfg.LogLevel)

	if len(loaded.LoadedFrom) > 0 {
		a.logger.Debug("loaded configuration", logging.FieldFiles, loaded.LoadedFrom)
	}

	cmd.SetContext(logging.WithLogger(ctx, a.logger))

	return nil
}

// styles returns output styles for w honoring the color setting.
func (a *app) styles(w io.Writer) *pretty.Styles {
	return pretty.NewStyles(pretty.IsColorEnabled(string(a.cfg.Color), w))
}

// readInput reads path, or standard input when path is "-".
func readInput(cmd *cobra.Command, path string) (*source.Buffer, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("%w: read stdin: %w", ErrIO, err)
		}
		return source.NewBuffer("<stdin>", data), nil
	}

	buf, err := source.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	return buf, nil
}

// language picks the plugin for buf: the configured language if any,
// otherwise detection from the path and content.
func (a *app) language(buf *source.Buffer) (lang.Language, error) {
	if a.cfg.Language != "" {
		return a.registry.Lookup(a.cfg.Language)
	}

	if buf.Path() == "<stdin>" {
		return a.detector.ForContent(buf.Bytes())
	}

	return a.detector.ForFile(buf.Path(), buf.Bytes())
}
