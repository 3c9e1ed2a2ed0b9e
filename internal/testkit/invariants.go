package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"featsync/internal/ast"
	"featsync/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed document:
// 1) every parsed span is non-empty, points to the document file and lies within content bounds
// 2) headers and entries appear in strictly increasing, non-overlapping order
// 3) value spans are covered by their entry span; nested values by their container
// 4) LineEnd offsets are not before the value they close
func CheckSpanInvariants(doc *ast.Document) error {
	if doc == nil || doc.File == nil {
		return fmt.Errorf("nil document or file")
	}
	size, err := safecast.Conv[uint32](len(doc.File.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	c := checker{file: doc.File.ID, size: size}

	if err := c.table(doc.Root); err != nil {
		return err
	}
	for _, t := range doc.Tables {
		if err := c.span("header "+t.Header.String(), t.HeaderSpan); err != nil {
			return err
		}
		if err := c.advance(t.HeaderSpan); err != nil {
			return err
		}
		if t.HeaderLineEnd < t.HeaderSpan.End || t.HeaderLineEnd > size {
			return fmt.Errorf("header %s: line end %d outside %d..%d", t.Header, t.HeaderLineEnd, t.HeaderSpan.End, size)
		}
		if err := c.table(t); err != nil {
			return err
		}
	}
	return nil
}

type checker struct {
	file source.FileID
	size uint32
	pos  uint32 // конец последнего проверенного узла верхнего уровня
}

func (c *checker) span(what string, sp source.Span) error {
	if sp.End <= sp.Start {
		return fmt.Errorf("%s: empty span %v", what, sp)
	}
	if sp.File != c.file {
		return fmt.Errorf("%s: span file mismatch: got=%d want=%d", what, sp.File, c.file)
	}
	if sp.End > c.size {
		return fmt.Errorf("%s: span end beyond content: %d > %d", what, sp.End, c.size)
	}
	return nil
}

func (c *checker) advance(sp source.Span) error {
	if sp.Start < c.pos {
		return fmt.Errorf("span %v overlaps previous node ending at %d", sp, c.pos)
	}
	c.pos = sp.End
	return nil
}

func (c *checker) table(t *ast.Table) error {
	for _, kv := range t.Entries {
		if kv.Synthetic() {
			continue
		}
		if err := c.entry(kv, source.Span{}); err != nil {
			return err
		}
		if err := c.advance(kv.Span); err != nil {
			return err
		}
		if kv.LineEnd < kv.ValueSpan.End || kv.LineEnd > c.size {
			return fmt.Errorf("entry %s: line end %d outside %d..%d", kv.Key, kv.LineEnd, kv.ValueSpan.End, c.size)
		}
	}
	return nil
}

func (c *checker) entry(kv *ast.KeyValue, parent source.Span) error {
	what := "entry " + kv.Key.String()
	if err := c.span(what, kv.Span); err != nil {
		return err
	}
	if !parent.Empty() && !parent.Contains(kv.Span) {
		return fmt.Errorf("%s: span %v is outside container %v", what, kv.Span, parent)
	}
	if !kv.Span.Contains(kv.ValueSpan) || kv.ValueSpan.End != kv.Span.End {
		return fmt.Errorf("%s: value span %v does not end entry span %v", what, kv.ValueSpan, kv.Span)
	}
	if kv.Replaced() {
		return nil
	}
	return c.value(what, kv.Value, kv.ValueSpan)
}

func (c *checker) value(what string, v ast.Value, outer source.Span) error {
	if ast.Synthetic(v) {
		return nil
	}
	sp := v.Span()
	if err := c.span(what, sp); err != nil {
		return err
	}
	if !outer.Contains(sp) {
		return fmt.Errorf("%s: value span %v is outside %v", what, sp, outer)
	}
	switch v := v.(type) {
	case *ast.Array:
		var prev uint32
		for _, e := range v.Elems {
			if ast.Synthetic(e) {
				continue
			}
			if e.Span().Start < prev {
				return fmt.Errorf("%s: array elements out of order at %v", what, e.Span())
			}
			prev = e.Span().End
			if err := c.value(what, e, sp); err != nil {
				return err
			}
		}
	case *ast.InlineTable:
		for _, kv := range v.Entries {
			if kv.Synthetic() {
				continue
			}
			if err := c.entry(kv, sp); err != nil {
				return err
			}
		}
	}
	return nil
}
