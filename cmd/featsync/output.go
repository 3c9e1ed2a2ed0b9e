package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// writerOnly hides Close so the tracer never closes the stream it was given.
type writerOnly struct{ io.Writer }

type styles struct {
	ok    lipgloss.Style
	same  lipgloss.Style
	warn  lipgloss.Style
	path  lipgloss.Style
	faint lipgloss.Style
}

func newStyles(enabled bool) styles {
	if !enabled {
		plain := lipgloss.NewStyle()
		return styles{ok: plain, same: plain, warn: plain, path: plain, faint: plain}
	}
	return styles{
		ok:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		same:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		warn:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		path:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		faint: lipgloss.NewStyle().Faint(true),
	}
}

// useColor resolves the --color flag and syncs fatih/color with it.
func useColor(cmd *cobra.Command) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	var enabled bool
	switch colorFlag {
	case "on":
		enabled = true
	case "off":
	case "auto":
		enabled = isTerminal(os.Stdout)
	default:
		return false, fmt.Errorf("unsupported color mode %q (must be auto, on or off)", colorFlag)
	}
	color.NoColor = !enabled
	return enabled, nil
}

// outputFlags reads the persistent flags shared by every command.
func outputFlags(cmd *cobra.Command) (quiet, timings bool, err error) {
	if quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return false, false, err
	}
	if timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return false, false, err
	}
	return quiet, timings, nil
}

var errorColor = color.New(color.FgRed, color.Bold)

func reportError(out io.Writer, err error) {
	fmt.Fprintf(out, "%s %v\n", errorColor.Sprint("error:"), err)
}
