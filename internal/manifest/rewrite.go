package manifest

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"featsync/internal/ast"
	"featsync/internal/config"
	"featsync/internal/features"
	"featsync/internal/format"
	"featsync/internal/observ"
	"featsync/internal/trace"
)

// NormalizeMode selects where the legacy spacing substitutions apply.
type NormalizeMode uint8

const (
	// NormalizeEdits applies them to generated fragments only.
	NormalizeEdits NormalizeMode = iota
	// NormalizeDocument applies them to the whole rendered manifest.
	NormalizeDocument
	// NormalizeOff skips them.
	NormalizeOff
)

type RewriteOptions struct {
	DryRun    bool
	Normalize NormalizeMode
	Timer     *observ.Timer
}

type RewriteResult struct {
	Path     string
	Features features.Set
	Shape    Shape
	// Changed reports whether Output differs from the file on disk.
	Changed bool
	Written bool
	// Output is the full new file content, BOM included. Nil when the
	// manifest has no dependencies table.
	Output []byte
}

// RewriteFeatureDependency syncs the tauri features of the manifest at path
// with the config held by h and returns the features that were written.
func RewriteFeatureDependency(ctx context.Context, path string, h *config.Handle) (features.Set, error) {
	res, err := Rewrite(ctx, path, h, RewriteOptions{})
	if err != nil {
		return nil, err
	}
	return res.Features, nil
}

// Rewrite is RewriteFeatureDependency with options.
func Rewrite(ctx context.Context, path string, h *config.Handle, opts RewriteOptions) (res *RewriteResult, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeCommand, "rewrite", trace.SpanID(ctx)).WithExtra("path", path)
	defer func() {
		span.Fail(err)
		if res != nil {
			span.WithExtra("shape", res.Shape.String())
		}
		span.End("")
	}()
	ctx = trace.WithSpan(ctx, span)

	doc, err := Load(ctx, path, opts.Timer)
	if err != nil {
		return nil, err
	}

	done := stage(ctx, opts.Timer, "features")
	set, err := features.FromHandle(h)
	if err != nil {
		done("failed")
		return nil, fmt.Errorf("manifest: %s: %w", path, err)
	}
	done(strings.Join(set, ","))

	res = &RewriteResult{Path: path, Features: set}
	if !doc.HasTable(dependenciesPath...) {
		trace.Point(tr, trace.ScopeEntry, "skip", span.ID(), "no dependencies table")
		return res, nil
	}

	done = stage(ctx, opts.Timer, "resolve")
	entry := Resolve(doc, DependencyName)
	res.Shape = entry.Shape
	trace.Point(tr, trace.ScopeEntry, "shape", span.ID(), entry.Shape.String(), "dependency", entry.Name, "found", entry.Found)
	if entry.Shape == ShapeUnsupported {
		done("unsupported")
		return nil, fmt.Errorf("%s: %w: %s is declared as %s", path, ErrUnsupportedFormat, entry.Name, entry.Found)
	}
	if entry.HasMarker() {
		trace.Point(tr, trace.ScopeEntry, "marker", span.ID(), "carried over", "feature", features.Marker)
	}
	if res.Features, err = entry.Merge(set); err != nil {
		done("failed")
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	done(entry.Shape.String())

	done = stage(ctx, opts.Timer, "render")
	out := render(doc, opts.Normalize)
	res.Changed = !bytes.Equal(out, doc.File.Content)
	res.Output = doc.File.Restore(out)
	done(fmt.Sprintf("changed=%v", res.Changed))

	if !res.Changed || opts.DryRun {
		return res, nil
	}
	done = stage(ctx, opts.Timer, "write")
	if err := writeFile(path, res.Output); err != nil {
		done("failed")
		return nil, err
	}
	res.Written = true
	done(fmt.Sprintf("%d bytes", len(res.Output)))
	return res, nil
}

func render(doc *ast.Document, mode NormalizeMode) []byte {
	switch mode {
	case NormalizeEdits:
		return format.RenderWith(doc, format.Options{Fragment: format.NormalizeSpacingBytes})
	case NormalizeDocument:
		return format.NormalizeSpacingBytes(format.Render(doc))
	}
	return format.Render(doc)
}
