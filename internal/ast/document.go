package ast

import "featsync/internal/source"

// Document is a parsed manifest. Tables are kept in source order; Root holds
// the entries before the first header.
type Document struct {
	File   *source.File
	Root   *Table
	Tables []*Table
}

// NewDocument returns an empty document bound to file.
func NewDocument(file *source.File) *Document {
	return &Document{File: file, Root: &Table{Kind: TableRoot}}
}

// Table returns the [path] table, or Root for an empty path.
func (d *Document) Table(path ...string) *Table {
	if len(path) == 0 {
		return d.Root
	}
	for _, t := range d.Tables {
		if t.Kind == TableStd && t.Header.Is(path...) {
			return t
		}
	}
	return nil
}

// ArrayTables returns every [[path]] section in order.
func (d *Document) ArrayTables(path ...string) []*Table {
	var out []*Table
	for _, t := range d.Tables {
		if t.Kind == TableArray && t.Header.Is(path...) {
			out = append(out, t)
		}
	}
	return out
}

// HasTable reports whether path names a table, either by its own [path]
// header or implicitly through a sub-table header such as [path.child].
func (d *Document) HasTable(path ...string) bool {
	if len(path) == 0 || d.Table(path...) != nil {
		return true
	}
	for _, t := range d.Tables {
		if t.Header.HasPrefix(path...) {
			return true
		}
	}
	return false
}

// ItemKind classifies what a key resolves to.
type ItemKind uint8

const (
	ItemNone ItemKind = iota
	ItemTable
	ItemArrayOfTables
	ItemValue
	ItemDotted
)

func (k ItemKind) String() string {
	switch k {
	case ItemNone:
		return "none"
	case ItemTable:
		return "table"
	case ItemArrayOfTables:
		return "array of tables"
	case ItemValue:
		return "value"
	case ItemDotted:
		return "dotted keys"
	}
	return "unknown"
}

// Item is the result of a lookup.
type Item struct {
	Kind   ItemKind
	Table  *Table    // ItemTable
	Tables []*Table  // ItemArrayOfTables
	Entry  *KeyValue // ItemValue
	Parent *Table    // table holding Entry or the dotted keys
}

// Item resolves key inside the table at parent.
func (d *Document) Item(parent []string, key string) Item {
	full := append(append(make([]string, 0, len(parent)+1), parent...), key)
	if t := d.Table(full...); t != nil {
		return Item{Kind: ItemTable, Table: t}
	}
	if ts := d.ArrayTables(full...); len(ts) > 0 {
		return Item{Kind: ItemArrayOfTables, Tables: ts}
	}
	pt := d.Table(parent...)
	if pt == nil {
		return Item{Kind: ItemNone}
	}
	if kv := pt.Get(key); kv != nil {
		return Item{Kind: ItemValue, Entry: kv, Parent: pt}
	}
	if pt.Dotted(key) {
		return Item{Kind: ItemDotted, Parent: pt}
	}
	return Item{Kind: ItemNone}
}
