package cmd

import (
	"encoding/json"
	"fmt"

	sessionrender "github.com/bnema/collab-cli/internal/adapters/render/session"
	"github.com/spf13/cobra"
)

func newListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List locally mirrored sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			summaries, err := app.sessions.List(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summaries)
			}

			rendered, err := app.listRenderer(summaries, sessionrender.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render session list: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
