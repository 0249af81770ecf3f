package cmd

import (
	"fmt"

	"github.com/bnema/collab-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newForgetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forget <session>",
		Short: "Delete a session's local mirror",
		Long:  "Delete a session's local mirror directory. The remote session is untouched; a later `collab status` rebuilds the mirror from scratch.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ParseSessionID(args[0])
			if err != nil {
				return err
			}

			if err := app.sessions.Forget(cmd.Context(), id); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Forgot session %s\n", id.Token())
			return err
		},
	}
}
