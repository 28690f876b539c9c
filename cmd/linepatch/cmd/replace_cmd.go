package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"linepatch/internal/parser"
	"linepatch/pkg/patch"
)

var (
	replaceFlags patchFlags
	replaceOpts  struct {
		start       int
		end         int
		lines       string
		content     string
		contentFile string
		expectFile  string
	}
)

// replaceCmd patches a file from command line flags.
var replaceCmd = &cobra.Command{
	Use:   "replace [file]",
	Short: "Replace a line range given on the command line",
	Long: `replace swaps lines [start, end) of file for new content. Bounds are
zero-based and end-exclusive; --lines takes a 1-based inclusive range such as
"4-6" instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := replaceFile(cmd, args[0])
		if err != nil {
			return err
		}
		return runPatch(cmd, f, replaceFlags)
	},
}

func replaceFile(cmd *cobra.Command, path string) (patch.File, error) {
	start, end := replaceOpts.start, replaceOpts.end
	switch {
	case cmd.Flags().Changed("lines"):
		var err error
		if start, end, err = parser.ParseLines(replaceOpts.lines); err != nil {
			return patch.File{}, err
		}
	case !cmd.Flags().Changed("start") || !cmd.Flags().Changed("end"):
		return patch.File{}, errors.New("either --lines or both --start and --end are required")
	}

	var content string
	if cmd.Flags().Changed("content-file") {
		data, err := readInput(cmd, replaceOpts.contentFile)
		if err != nil {
			return patch.File{}, err
		}
		content = data
	} else {
		content = replaceOpts.content
		if content != "" && !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
	}

	spec := patch.NewSpec(start, end, content)
	if replaceOpts.expectFile != "" {
		data, err := readInput(cmd, replaceOpts.expectFile)
		if err != nil {
			return patch.File{}, err
		}
		spec.Expect = patch.AnchorLines(data)
	}
	return patch.File{Path: path, Spec: spec}, nil
}

// readInput reads name, or stdin when name is "-".
func readInput(cmd *cobra.Command, name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return string(data), nil
}

func init() {
	replaceFlags.register(replaceCmd)
	replaceCmd.Flags().IntVar(&replaceOpts.start, "start", 0, "first line to replace (zero-based)")
	replaceCmd.Flags().IntVar(&replaceOpts.end, "end", 0, "line after the last one to replace (zero-based, exclusive)")
	replaceCmd.Flags().StringVar(&replaceOpts.lines, "lines", "", `1-based inclusive range, e.g. "4-6"`)
	replaceCmd.Flags().StringVar(&replaceOpts.content, "content", "", "replacement text; a final newline is added when missing")
	replaceCmd.Flags().StringVar(&replaceOpts.contentFile, "content-file", "", `file holding the replacement text verbatim ("-" for stdin)`)
	replaceCmd.Flags().StringVar(&replaceOpts.expectFile, "expect-file", "", "file holding the lines the range must currently contain")
	replaceCmd.MarkFlagsMutuallyExclusive("content", "content-file")
	replaceCmd.MarkFlagsOneRequired("content", "content-file")
	replaceCmd.MarkFlagsMutuallyExclusive("lines", "start")
	replaceCmd.MarkFlagsMutuallyExclusive("lines", "end")
	rootCmd.AddCommand(replaceCmd)
}
