package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"featsync/internal/diag"
	"featsync/internal/diagfmt"
	"featsync/internal/format"
	"featsync/internal/observ"
	"featsync/internal/parser"
	"featsync/internal/source"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [flags] <file.toml>",
		Short: "Parse and re-render a TOML file, checking the round trip is exact",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	cmd.Flags().Bool("stdout", false, "print the rendered document")
	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	toStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	quiet, timings, err := outputFlags(cmd)
	if err != nil {
		return err
	}
	colored, err := useColor(cmd)
	if err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	path := args[0]
	var timer *observ.Timer
	if timings {
		timer = observ.NewTimer()
	}
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return fmt.Errorf("render: read %s: %w", path, err)
	}
	file := fs.Get(id)

	done := timer.Track("parse")
	bag := diag.NewBag(parser.DefaultMaxErrors)
	doc := parser.Parse(file, parser.Options{MaxErrors: parser.DefaultMaxErrors, Reporter: diag.BagReporter{Bag: bag}})
	done(fmt.Sprintf("%d diagnostics", bag.Len()))
	if bag.HasErrors() {
		bag.Sort()
		diagfmt.Pretty(cmd.ErrOrStderr(), bag, file, diagfmt.PrettyOpts{Color: colored, ShowNotes: true})
		return fmt.Errorf("render: %s: %d syntax errors", path, bag.Len())
	}

	done = timer.Track("render")
	out := doc.File.Restore(format.Render(doc))
	done("")

	// #nosec G304 -- path comes from the command line
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("render: read %s: %w", path, err)
	}
	if timings {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	if toStdout {
		if _, err := cmd.OutOrStdout().Write(out); err != nil {
			return err
		}
	}
	if off := firstDiff(raw, out); off >= 0 {
		return fmt.Errorf("render: %s: output differs from input at byte %d", path, off)
	}
	if !quiet && !toStdout {
		st := newStyles(colored)
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", st.ok.Render("ok"), st.path.Render(path),
			st.faint.Render(fmt.Sprintf("(%d tables, %d bytes)", len(doc.Tables), len(out))))
	}
	return nil
}

// firstDiff returns the first offset where a and b differ, or -1.
func firstDiff(a, b []byte) int {
	if bytes.Equal(a, b) {
		return -1
	}
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
