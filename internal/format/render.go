package format

import (
	"sort"

	"featsync/internal/ast"
)

// Options tune Render.
type Options struct {
	// Fragment, if set, post-processes every generated fragment before it is
	// spliced into the output. Copied source bytes are never passed to it.
	Fragment func([]byte) []byte
}

type edit struct {
	start int
	end   int
	data  []byte
}

// Render returns the document text: source bytes verbatim, edited regions
// canonical.
func Render(doc *ast.Document) []byte {
	return RenderWith(doc, Options{})
}

// RenderWith is Render with options.
func RenderWith(doc *ast.Document, opt Options) []byte {
	if doc == nil || doc.File == nil {
		return nil
	}
	r := renderer{nl: doc.File.Newline(), opt: opt}
	r.table(doc.Root)
	for _, t := range doc.Tables {
		r.table(t)
	}

	sort.SliceStable(r.edits, func(i, j int) bool {
		if r.edits[i].start != r.edits[j].start {
			return r.edits[i].start < r.edits[j].start
		}
		return r.edits[i].end < r.edits[j].end
	})

	w := NewWriter(doc.File)
	prev := 0
	for _, e := range r.edits {
		if e.start < prev {
			continue
		}
		w.CopyRange(prev, e.start)
		_, _ = w.Write(e.data)
		prev = e.end
	}
	w.CopyRange(prev, len(doc.File.Content))
	return w.Bytes()
}

type renderer struct {
	nl    string
	opt   Options
	edits []edit
}

func (r *renderer) add(start, end int, w *Writer) {
	data := w.Bytes()
	if r.opt.Fragment != nil {
		data = r.opt.Fragment(data)
	}
	r.edits = append(r.edits, edit{start: start, end: end, data: data})
}

func (r *renderer) table(t *ast.Table) {
	var inserted []*ast.KeyValue
	for _, kv := range t.Entries {
		if kv.Synthetic() {
			inserted = append(inserted, kv)
			continue
		}
		r.entry(kv)
	}
	if len(inserted) == 0 {
		return
	}

	w := NewWriter(nil)
	off, ok := t.InsertOffset()
	if !ok {
		// корневая таблица без entries: вставляем в начало файла
		for _, kv := range inserted {
			writeEntry(w, kv)
			w.WriteString(r.nl)
		}
		r.add(0, 0, w)
		return
	}
	for _, kv := range inserted {
		w.WriteString(r.nl)
		writeEntry(w, kv)
	}
	r.add(int(off), int(off), w)
}

// entry emits edits for a parsed entry: a replaced value, or changes nested
// in a parsed inline table.
func (r *renderer) entry(kv *ast.KeyValue) {
	if kv.Replaced() {
		w := NewWriter(nil)
		writeValue(w, kv.Value)
		r.add(int(kv.ValueSpan.Start), int(kv.ValueSpan.End), w)
		return
	}
	if it, ok := kv.Value.(*ast.InlineTable); ok {
		r.inline(it)
	}
}

func (r *renderer) inline(it *ast.InlineTable) {
	var inserted []*ast.KeyValue
	parsed := 0
	for _, kv := range it.Entries {
		if kv.Synthetic() {
			inserted = append(inserted, kv)
			continue
		}
		parsed++
		r.entry(kv)
	}
	if len(inserted) == 0 {
		return
	}

	w := NewWriter(nil)
	if parsed == 0 {
		// {} или { }: таблица выводится заново целиком
		w.WriteString("{ ")
		for i, kv := range inserted {
			if i > 0 {
				w.WriteString(", ")
			}
			writeEntry(w, kv)
		}
		w.WriteString(" }")
		r.add(int(it.Src.Start), int(it.Src.End), w)
		return
	}
	for _, kv := range inserted {
		w.WriteString(", ")
		writeEntry(w, kv)
	}
	off := int(it.InsertOffset())
	r.add(off, off, w)
}
