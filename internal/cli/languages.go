package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type languagesFlags struct {
	json bool
}

type languageInfo struct {
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
}

func newLanguagesCommand(app *app) *cobra.Command {
	flags := &languagesFlags{}

	cmd := &cobra.Command{
		Use:     "languages",
		Aliases: []string{"langs"},
		Short:   "List the registered language plugins",
		Long: `List every registered language plugin with the file extensions it claims.
Files with other extensions are matched by content detection.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLanguages(cmd, app, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.json, "json", false, "output as JSON")

	return cmd
}

func runLanguages(cmd *cobra.Command, app *app, flags *languagesFlags) error {
	infos := make([]languageInfo, 0, len(app.registry.Names()))
	for _, name := range app.registry.Names() {
		language, err := app.registry.Lookup(name)
		if err != nil {
			return err
		}

		infos = append(infos, languageInfo{
			Name:       language.Name(),
			Extensions: language.Extensions(),
		})
	}

	out := cmd.OutOrStdout()

	if flags.json {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(infos); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}

	styles := app.styles(out)
	fmt.Fprintf(out, "%-10s %s\n", styles.Bold.Render("NAME"), styles.Bold.Render("EXTENSIONS"))
	for _, info := range infos {
		fmt.Fprintf(out, "%-10s %s\n", styles.NodeKind.Render(info.Name), strings.Join(info.Extensions, ", "))
	}

	return nil
}
