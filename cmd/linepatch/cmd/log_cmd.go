package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"linepatch/internal/journal"
)

var logLimit int

// logCmd prints the journal of applied patches.
var logCmd = &cobra.Command{
	Use:   "log",
	Short: "List applied patches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := journal.NewFileStore(journalFile).Load()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No patches recorded.")
			return nil
		}
		if logLimit > 0 && len(entries) > logLimit {
			entries = entries[len(entries)-logLimit:]
		}
		for _, e := range entries {
			fmt.Fprintln(cmd.OutOrStdout(), e.String())
		}
		return nil
	},
}

func init() {
	logCmd.Flags().IntVarP(&logLimit, "limit", "n", 0, "show only the most recent entries")
	rootCmd.AddCommand(logCmd)
}
