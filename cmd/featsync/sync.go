package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"featsync/internal/config"
	"featsync/internal/manifest"
	"featsync/internal/observ"
	"featsync/internal/trace"
)

// errOutOfDate is returned by sync --check when the manifest would change.
var errOutOfDate = errors.New("manifest is out of date")

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync [flags] <Cargo.toml>",
		Short: "Rewrite the tauri features of a manifest",
		Args:  cobra.ExactArgs(1),
		RunE:  runSync,
	}
	cmd.Flags().String("config", "", "application config (default: Tauri.toml next to the manifest)")
	cmd.Flags().Bool("check", false, "fail if the manifest is not in sync, without rewriting it")
	cmd.Flags().Bool("stdout", false, "print the synced manifest instead of rewriting it")
	cmd.Flags().Bool("legacy-normalize", false, "apply the spacing substitutions to the whole manifest")
	return cmd
}

func runSync(cmd *cobra.Command, args []string) error {
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	toStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	if check && toStdout {
		return fmt.Errorf("sync: --stdout cannot be used with --check")
	}
	legacy, err := cmd.Flags().GetBool("legacy-normalize")
	if err != nil {
		return err
	}
	configPath, err := cmd.Flags().GetString("config")
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
	if configPath == "" {
		configPath = filepath.Join(filepath.Dir(path), "Tauri.toml")
	}

	span := trace.Begin(trace.FromContext(cmd.Context()), trace.ScopeCommand, "sync", 0).WithExtra("config", configPath)
	defer span.End("")
	ctx := trace.WithSpan(cmd.Context(), span)

	cfg, err := config.Load(configPath)
	if err != nil {
		span.Fail(err)
		return err
	}

	opts := manifest.RewriteOptions{DryRun: check || toStdout}
	if legacy {
		opts.Normalize = manifest.NormalizeDocument
	}
	if timings {
		opts.Timer = observ.NewTimer()
	}

	res, err := manifest.Rewrite(ctx, path, config.NewHandle(cfg), opts)
	if err != nil {
		span.Fail(err)
		return err
	}

	if timings {
		fmt.Fprint(cmd.ErrOrStderr(), opts.Timer.Summary())
	}
	if toStdout {
		if res.Output != nil {
			_, err = cmd.OutOrStdout().Write(res.Output)
		}
		return err
	}
	if !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), syncSummary(newStyles(colored), res, check))
	}
	if check && res.Changed {
		return fmt.Errorf("%s: %w", path, errOutOfDate)
	}
	return nil
}

func syncSummary(st styles, res *manifest.RewriteResult, check bool) string {
	var status string
	switch {
	case res.Output == nil:
		status = st.same.Render("skipped")
	case !res.Changed:
		status = st.same.Render("up to date")
	case check:
		status = st.warn.Render("out of date")
	default:
		status = st.ok.Render("synced")
	}
	line := fmt.Sprintf("%s %s", status, st.path.Render(res.Path))
	if res.Output == nil {
		return line + " " + st.faint.Render("(no dependencies table)")
	}
	list := "[]"
	if len(res.Features) > 0 {
		list = strings.Join(res.Features, ", ")
	}
	return fmt.Sprintf("%s %s\n  features: %s", line, st.faint.Render("("+res.Shape.String()+")"), list)
}
