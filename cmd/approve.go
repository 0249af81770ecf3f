package cmd

import (
	"fmt"

	"github.com/bnema/collab-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newApproveCmd(app *app) *cobra.Command {
	var planID string

	cmd := &cobra.Command{
		Use:   "approve <session>",
		Short: "Approve a session's plan (latest by default)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ParseSessionID(args[0])
			if err != nil {
				return err
			}

			approved, err := app.sessions.ApprovePlan(cmd.Context(), id, planID)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Approved plan %s for session %s\n", approved, id.Token())
			return err
		},
	}

	cmd.Flags().StringVar(&planID, "plan", "", "Plan ID (default: the latest plan in the mirrored log)")

	return cmd
}
