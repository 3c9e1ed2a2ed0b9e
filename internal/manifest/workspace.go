package manifest

import (
	"context"
	"fmt"

	"featsync/internal/ast"
	"featsync/internal/trace"
)

// ReadWorkspaceMembers returns [workspace].members in document order, or an
// empty slice when the manifest has no workspace table.
func ReadWorkspaceMembers(ctx context.Context, path string) (members []string, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeCommand, "workspace-members", trace.SpanID(ctx)).WithExtra("path", path)
	defer func() {
		span.Fail(err)
		span.End(fmt.Sprintf("%d members", len(members)))
	}()
	ctx = trace.WithSpan(ctx, span)

	doc, err := Load(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	members, err = WorkspaceMembers(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return members, nil
}

// WorkspaceMembers reads members from a parsed document.
func WorkspaceMembers(doc *ast.Document) ([]string, error) {
	if !doc.HasTable("workspace") {
		return []string{}, nil
	}
	ws := doc.Table("workspace")
	if ws == nil {
		return nil, fmt.Errorf("%w: [workspace] has no members", ErrInvalidWorkspace)
	}
	kv := ws.Get("members")
	if kv == nil {
		return nil, fmt.Errorf("%w: [workspace] has no members", ErrInvalidWorkspace)
	}
	arr, ok := kv.Value.(*ast.Array)
	if !ok {
		return nil, fmt.Errorf("%w: members is %s, not an array", ErrInvalidWorkspace, ast.Describe(kv.Value))
	}
	out := make([]string, 0, len(arr.Elems))
	for i, e := range arr.Elems {
		s, ok := e.(*ast.String)
		if !ok {
			return nil, fmt.Errorf("%w: members[%d] is %s, not a string", ErrInvalidWorkspace, i, ast.Describe(e))
		}
		out = append(out, s.Value)
	}
	return out, nil
}
