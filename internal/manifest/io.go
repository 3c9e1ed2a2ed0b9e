package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"featsync/internal/ast"
	"featsync/internal/observ"
	"featsync/internal/parser"
	"featsync/internal/source"
	"featsync/internal/trace"
)

// stage opens a trace span and a timer phase for one pipeline step.
func stage(ctx context.Context, timer *observ.Timer, name string) func(note string) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeStage, name, trace.SpanID(ctx))
	end := timer.Track(name)
	return func(note string) {
		end(note)
		span.End(note)
	}
}

// Load reads and parses the manifest at path.
func Load(ctx context.Context, path string, timer *observ.Timer) (*ast.Document, error) {
	done := stage(ctx, timer, "load")
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		done("failed")
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	file := fs.Get(id)
	done(fmt.Sprintf("%d bytes", len(file.Content)))

	done = stage(ctx, timer, "parse")
	doc, err := parser.ParseFile(file)
	if err != nil {
		done("failed")
		return nil, err
	}
	done(fmt.Sprintf("%d tables", len(doc.Tables)))
	return doc, nil
}

// writeFile replaces path with data through a synced temp file in the same
// directory. The original permission bits are kept; symlinks are followed.
func writeFile(path string, data []byte) (err error) {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("manifest: stat %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("manifest: create temp for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("manifest: write %s: %w", path, err)
	}
	if err = tmp.Chmod(info.Mode().Perm()); err != nil {
		return fmt.Errorf("manifest: chmod %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("manifest: flush %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("manifest: close %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("manifest: rename %s: %w", path, err)
	}
	return nil
}
