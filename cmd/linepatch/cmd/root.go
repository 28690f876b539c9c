package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"linepatch/internal/journal"
)

var (
	logLevel    string
	journalFile string
	noJournal   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "linepatch",
	Short: "Replace a range of lines in a file in one shot",
	Long: `linepatch reads a file as lines, replaces the half-open range [start, end)
with new content and writes the file back atomically. The range either fits
the file or nothing is written.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&journalFile, "journal", journal.DefaultFile, "file recording applied patches")
	rootCmd.PersistentFlags().BoolVar(&noJournal, "no-journal", false, "do not record applied patches")
}
