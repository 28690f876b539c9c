package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"linepatch/internal/diff"
	"linepatch/internal/journal"
	"linepatch/internal/logging"
	"linepatch/internal/patcher"
	"linepatch/internal/tui"
	"linepatch/pkg/patch"
)

// patchFlags are shared by every command that writes a file.
type patchFlags struct {
	dryRun      bool
	interactive bool
	matchEOL    bool
}

func (f *patchFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "print the diff without writing")
	cmd.Flags().BoolVarP(&f.interactive, "interactive", "i", false, "review the diff and confirm before writing")
	cmd.Flags().BoolVar(&f.matchEOL, "match-eol", false, "convert the new content to the file's line endings")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "interactive")
}

func newPatcher(cmd *cobra.Command, flags patchFlags) (*patcher.Patcher, error) {
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}
	opts := []patcher.Option{
		patcher.WithLogger(logging.New(cmd.ErrOrStderr(), level)),
		patcher.WithPreview(diff.Options{Context: 3, Color: true}),
	}
	if !noJournal {
		opts = append(opts, patcher.WithJournal(journal.NewFileStore(journalFile)))
	}
	if flags.dryRun {
		opts = append(opts, patcher.WithDryRun())
	}
	if flags.interactive {
		opts = append(opts, patcher.WithConfirm(confirm))
	}
	if flags.matchEOL {
		opts = append(opts, patcher.WithMatchLineEnding())
	}
	return patcher.New(opts...), nil
}

func confirm(path, preview string) (bool, error) {
	if preview == "" {
		preview = "(no changes)"
	}
	return tui.Confirm("Apply patch to "+path+"?", preview)
}

// runPatch applies f and reports the outcome on stdout.
func runPatch(cmd *cobra.Command, f patch.File, flags patchFlags) error {
	p, err := newPatcher(cmd, flags)
	if err != nil {
		return err
	}
	res, err := p.Apply(cmd.Context(), f)
	if err != nil {
		return err
	}
	report(cmd.OutOrStdout(), res)
	return nil
}

func report(w io.Writer, res *patcher.Result) {
	changed := diff.Summary(strings.Join(res.Removed, ""), strings.Join(res.Spec.Content, ""))
	summary := fmt.Sprintf("%s %s: %s, %d -> %d lines",
		res.Path, res.Spec.HumanRange(), changed, res.LinesBefore, res.LinesAfter)
	if res.DryRun {
		fmt.Fprint(w, res.Preview)
		fmt.Fprintln(w, "dry run:", summary)
		return
	}
	fmt.Fprintln(w, "patched", summary)
}
