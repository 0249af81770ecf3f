package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	sessionrender "github.com/bnema/collab-cli/internal/adapters/render/session"
	"github.com/bnema/collab-cli/internal/application"
	"github.com/bnema/collab-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status <session>",
		Short: "Refresh a session from the collaborator and show its state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ParseSessionID(args[0])
			if err != nil {
				return err
			}

			var result application.RefreshResult
			fetch := func(ctx context.Context) error {
				var fetchErr error
				result, fetchErr = app.refresh.Refresh(ctx, id)
				return fetchErr
			}

			if asJSON {
				if err := fetch(cmd.Context()); err != nil {
					return err
				}
			} else {
				if err := runRemoteFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), "Syncing with the collaborator...", fetch); err != nil {
					return err
				}
			}

			return writeRefreshOutput(cmd, app, result, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func writeRefreshOutput(cmd *cobra.Command, app *app, result application.RefreshResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	rendered, err := app.statusRenderer(result, sessionrender.RenderOptions{Now: app.now()})
	if err != nil {
		return fmt.Errorf("render session status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
