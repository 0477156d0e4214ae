// Package router maps exact request paths to statically defined panels.
package router

import (
	"strings"

	"github.com/a-h/templ"
)

// Entry binds a path, relative to the base path, to the panel it renders.
type Entry struct {
	Path  string
	Panel templ.Component
}

// Table is an immutable route table. The first entry for a path wins.
type Table struct {
	base    string
	entries []Entry
	index   map[string]templ.Component
}

// New builds a table whose paths are all served under base.
func New(base string, entries ...Entry) *Table {
	t := &Table{
		base:  NormalizeBase(base),
		index: make(map[string]templ.Component, len(entries)),
	}
	for _, e := range entries {
		full := Join(t.base, e.Path)
		if _, dup := t.index[full]; dup {
			continue
		}
		t.index[full] = e.Panel
		t.entries = append(t.entries, Entry{Path: full, Panel: e.Panel})
	}
	return t
}

// NormalizeBase turns a configured deployment sub-path into "" or "/name".
func NormalizeBase(base string) string {
	base = strings.Trim(strings.TrimSpace(base), "/")
	if base == "" {
		return ""
	}
	return "/" + base
}

// Join prefixes path with an already normalised base. The root path under a
// base is the base itself.
func Join(base, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if base == "" {
		return path
	}
	if path == "/" {
		return base
	}
	return base + path
}

// Base returns the normalised base path.
func (t *Table) Base() string {
	return t.base
}

// Lookup returns the panel registered for the exact path.
func (t *Table) Lookup(path string) (templ.Component, bool) {
	if t.base != "" && path == t.base+"/" {
		path = t.base
	}
	p, ok := t.index[path]
	return p, ok
}

// Paths lists every served path in table order.
func (t *Table) Paths() []string {
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Path
	}
	return out
}

// Entries returns a copy of the resolved entries.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

func (t *Table) Len() int {
	return len(t.entries)
}
