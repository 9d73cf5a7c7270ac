// Package dict implements a word dictionary: a name-to-definition map with
// stable identity for interned names, mirroring the string-interning shape
// of a symbol table.
package dict

import "github.com/cellforth/cellforth/interp"

// Dictionary is a concrete, map-backed interp.Dictionary. Later definitions
// shadow earlier ones of the same name, matching ordinary Forth-family
// redefinition semantics: `Lookup` always returns the most recent binding.
type Dictionary struct {
	entries map[string]interp.Entry
	order   []string // insertion order, for diagnostics/listing
}

// New returns an empty Dictionary.
func New() *Dictionary {
	return &Dictionary{entries: make(map[string]interp.Entry)}
}

func (d *Dictionary) Lookup(name string) (interp.Entry, bool) {
	e, ok := d.entries[name]
	return e, ok
}

func (d *Dictionary) Define(e interp.Entry) {
	if _, exists := d.entries[e.Name]; !exists {
		d.order = append(d.order, e.Name)
	}
	d.entries[e.Name] = e
}

// Names returns every defined word name in the order it was first defined.
func (d *Dictionary) Names() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// MakeNop defines name as a word whose body does nothing, useful for
// reserving a name (e.g. a forward reference) before its real definition is
// compiled.
func (d *Dictionary) MakeNop(name string) {
	d.Define(interp.Entry{Name: name})
}
