package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// newRootCmd builds the logchecker command around run.
func newRootCmd(run func(cmd *cobra.Command) error) *cobra.Command {
	return &cobra.Command{
		Use:   "logchecker",
		Short: "Terminal dashboard for fleet host logs",
		Long: `Browse the hosts reporting into the fleet log store and read their logs.

Hosts, their details and log entries come from the SQLite store named in
.logchecker.yaml (or ~/.config/logchecker/config.yaml). Static JSON-lines log
files under files.dir can be browsed from the Files view.

Press ? inside the dashboard for keyboard shortcuts.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd)
		},
	}
}

// Execute runs the root command. The error has already been printed to
// stderr when non-nil.
func Execute() error {
	cmd := newRootCmd(func(cmd *cobra.Command) error {
		return runDashboard(os.Stdout)
	})
	if err := cmd.Execute(); err != nil {
		cmd.PrintErrln(err.Error())
		return err
	}
	return nil
}
