package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"

	"featsync/internal/diag"
	"featsync/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	gutterColor  = color.New(color.FgBlue)
	caretColor   = color.New(color.FgGreen, color.Bold)
)

// Pretty форматирует диагностики файла в человекочитаемый вид:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//	  12 | name = "app
//	     |        ^~~~
//
// Ожидается bag.Sort() заранее.
func Pretty(w io.Writer, bag *diag.Bag, file *source.File, opts PrettyOpts) {
	paint := func(c *color.Color, s string) string {
		if !opts.Color {
			return s
		}
		return c.Sprint(s)
	}
	path := displayPath(file.Path, opts.PathMode)

	for i, d := range bag.Items() {
		if opts.Max > 0 && i >= opts.Max {
			fmt.Fprintf(w, "... and %d more\n", bag.Len()-i)
			return
		}
		pos := file.Position(d.Primary.Start)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, pos.Line, pos.Col,
			paint(severityColor(d.Severity), d.Severity.String()), d.Code.ID(), d.Message)
		writeSnippet(w, file, d.Primary, paint)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			np := file.Position(n.Span.Start)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", paint(infoColor, "note:"), path, np.Line, np.Col, n.Msg)
		}
	}
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	}
	return infoColor
}

func displayPath(path string, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	case PathModeBasename:
		return filepath.Base(path)
	}
	return path
}

// writeSnippet prints the first line of span with a caret underline.
func writeSnippet(w io.Writer, file *source.File, span source.Span, paint func(*color.Color, string) string) {
	pos := file.Position(span.Start)
	start := lineStartOffset(file, pos.Line)
	end := lineEndOffset(file, pos.Line)
	if start > end || span.Start < start {
		return
	}
	line := strings.TrimRight(string(file.Content[start:end]), "\r")

	underline := max(1, int(min(span.End, end)-span.Start))
	prefix := []byte(line[:min(int(span.Start-start), len(line))])
	for i, b := range prefix {
		if b != '\t' {
			prefix[i] = ' '
		}
	}

	num := fmt.Sprintf("%d", pos.Line)
	gutter := strings.Repeat(" ", len(num))
	fmt.Fprintf(w, "  %s %s %s\n", paint(gutterColor, num), paint(gutterColor, "|"), line)
	fmt.Fprintf(w, "  %s %s %s%s\n", gutter, paint(gutterColor, "|"), prefix,
		paint(caretColor, "^"+strings.Repeat("~", underline-1)))
}

// lineStartOffset returns the offset of the first byte of line (1-based).
func lineStartOffset(f *source.File, line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	idx := line - 2
	if int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return contentLen(f)
}

// lineEndOffset returns the offset of the newline ending line, or the end
// of the file.
func lineEndOffset(f *source.File, line uint32) uint32 {
	if line == 0 {
		return 0
	}
	idx := line - 1
	if int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx]
	}
	return contentLen(f)
}

func contentLen(f *source.File) uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return n
}
