// Package cli provides the Cobra command structure for oakwood.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root oakwood command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	app := newApp()
	app.version = info.Version

	rootCmd := &cobra.Command{
		Use:   "oakwood",
		Short: "An incremental, error-tolerant parsing engine",
		Long: `oakwood parses source text into lossless syntax trees and keeps them
up to date as the text is edited.

Every byte of the input ends up in the tree, syntax errors become
diagnostics next to a tree that is still complete, and after an edit only
the affected tokens and subtrees are rebuilt. Language front ends plug in
through a small interface; json and mini ship as built-in plugins.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	app.addPersistentFlags(rootCmd)

	rootCmd.AddCommand(newLexCommand(app))
	rootCmd.AddCommand(newParseCommand(app))
	rootCmd.AddCommand(newCheckCommand(app))
	rootCmd.AddCommand(newReparseCommand(app))
	rootCmd.AddCommand(newWatchCommand(app))
	rootCmd.AddCommand(newReplCommand(app))
	rootCmd.AddCommand(newLanguagesCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(app.flags.color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
