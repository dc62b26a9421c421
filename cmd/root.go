package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewCmdRoot creates a new root command
func NewCmdRoot(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kestrel",
		Short: "Kestrel, the fleet health reporting tool",
		Long: "Kestrel checks the servers of a fleet for operational risks and renders\n" +
			"the results into a single HTML report with at-risk rows highlighted.",
		Version: version,
	}
	return rootCmd
}

// Execute adds all child commands to the root command
// and executes the cmd tree
func Execute(version string) {
	cmd := NewCmdRoot(version)
	cmd.AddCommand(NewCmdReport())
	cmd.AddCommand(NewCmdServe())
	cmd.AddCommand(NewCmdGenDocs(cmd))

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
