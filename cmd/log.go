package cmd

import (
	"encoding/json"
	"fmt"

	sessionrender "github.com/bnema/collab-cli/internal/adapters/render/session"
	"github.com/bnema/collab-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newLogCmd(app *app) *cobra.Command {
	var showAll bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "log <session>",
		Short: "Show a session's mirrored activity history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ParseSessionID(args[0])
			if err != nil {
				return err
			}

			session, err := app.sessions.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			if !showAll {
				session = significantOnly(session)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(session.Log)
			}

			rendered, err := app.logRenderer(session, sessionrender.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render session log: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&showAll, "all", false, "Include routine progress entries")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func significantOnly(session *domain.Session) *domain.Session {
	filtered := *session
	filtered.Log = nil
	for _, activity := range session.Log {
		if activity.Significant() {
			filtered.Log = append(filtered.Log, activity)
		}
	}
	return &filtered
}
