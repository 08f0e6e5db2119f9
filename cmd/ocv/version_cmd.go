package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/updater"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/version"
)

func newVersionCmd() *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		// no config needed
		PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
		PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ocv version %s\n", version.Version)
			if !check {
				return nil
			}
			tag, url, err := updater.CheckForUpdates(cmd.Context(), updater.ReleaseURL, version.Version)
			if err != nil {
				return fmt.Errorf("update check failed: %w", err)
			}
			if tag == "" {
				fmt.Fprintln(out, "You are on the latest release.")
				return nil
			}
			fmt.Fprintf(out, "New release %s available: %s\n", tag, url)
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "Check GitHub for a newer release")
	return cmd
}
