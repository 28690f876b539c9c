package cmd

import (
	"github.com/spf13/cobra"

	"linepatch/internal/parser"
)

var applyFlags patchFlags

// applyCmd applies a YAML or Markdown patch file.
var applyCmd = &cobra.Command{
	Use:   "apply [patch_file]",
	Short: "Apply a YAML or Markdown patch file",
	Long: `apply loads a patch file (.yaml, .yml, .md or .markdown) naming the target,
the line range and the new content, and applies it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := parser.Load(args[0])
		if err != nil {
			return err
		}
		return runPatch(cmd, f, applyFlags)
	},
}

func init() {
	applyFlags.register(applyCmd)
	rootCmd.AddCommand(applyCmd)
}
