package cmd

import (
	"fmt"

	"github.com/bnema/collab-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newMessageCmd(app *app) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "message <session>",
		Short: "Send a message to the remote session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ParseSessionID(args[0])
			if err != nil {
				return err
			}

			if err := app.sessions.SendMessage(cmd.Context(), id, text); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Message sent to session %s\n", id.Token())
			return err
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Message text to send")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}
