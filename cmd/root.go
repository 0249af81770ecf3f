package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "collab",
		Short:         "Collab CLI: mirror remote coding-agent sessions locally",
		Long:          "collab keeps a durable local mirror of sessions running on a remote coding agent. Refresh a session's status, browse its activity history, approve plans and send messages, even when the remote service is intermittently reachable.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newStatusCmd(app),
		newListCmd(app),
		newLogCmd(app),
		newMessageCmd(app),
		newApproveCmd(app),
		newForgetCmd(app),
		newConfigCmd(),
	)

	return rootCmd
}
