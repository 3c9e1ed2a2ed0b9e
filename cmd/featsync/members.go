package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"featsync/internal/manifest"
)

func newMembersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members [flags] <Cargo.toml>",
		Short: "List workspace members of a manifest",
		Args:  cobra.ExactArgs(1),
		RunE:  runMembers,
	}
	cmd.Flags().String("format", "text", "output format (text|json)")
	return cmd
}

func runMembers(cmd *cobra.Command, args []string) error {
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("members: unsupported format %q (must be text or json)", outputFormat)
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	members, err := manifest.ReadWorkspaceMembers(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(members)
	}
	for _, m := range members {
		fmt.Fprintln(out, m)
	}
	return nil
}
