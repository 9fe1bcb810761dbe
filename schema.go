package godos

import "sort"

// Entry is one named slot of a Schema.
type Entry struct {
	Name string
	Slot Slot
}

// Field pairs a name with a slot for SchemaOf.
func Field(name string, slot Slot) Entry { return Entry{Name: name, Slot: slot} }

// Schema is an immutable, ordered mapping from field name to slot.
// The zero value is an empty schema.
type Schema struct {
	entries []Entry
	index   map[string]int
}

// SchemaOf builds a Schema in the given order. A repeated name replaces the
// earlier slot but keeps its position. Entries with a nil slot are skipped.
func SchemaOf(entries ...Entry) Schema {
	s := Schema{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		if e.Slot == nil {
			continue
		}
		if i, ok := s.index[e.Name]; ok {
			s.entries[i].Slot = e.Slot
			continue
		}
		s.index[e.Name] = len(s.entries)
		s.entries = append(s.entries, e)
	}
	return s
}

// Len returns the number of fields.
func (s Schema) Len() int { return len(s.entries) }

// Get returns the slot registered under name.
func (s Schema) Get(name string) (Slot, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.entries[i].Slot, true
}

// Has reports whether name is declared.
func (s Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Names returns the field names in declaration order.
func (s Schema) Names() []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Name
	}
	return out
}

// Entries returns the fields in declaration order.
func (s Schema) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// OutputSchema maps HTTP status codes to the schema of the response body.
type OutputSchema map[int]Schema

// Statuses returns the declared status codes in ascending order.
func (o OutputSchema) Statuses() []int {
	out := make([]int, 0, len(o))
	for code := range o {
		out = append(out, code)
	}
	sort.Ints(out)
	return out
}

// Fields is a reusable collection of field descriptors from which endpoint
// schemas are derived.
type Fields struct {
	base Schema
}

// NewFields wraps a base schema.
func NewFields(base Schema) Fields { return Fields{base: base} }

// All returns every field of the base schema.
func (f Fields) All() Schema { return f.base }

// Specialize returns the subset of fields named in only, in base order.
// Unknown names are ignored. The descriptors are shared, not copied.
func (f Fields) Specialize(only ...string) Schema {
	keep := make(map[string]struct{}, len(only))
	for _, n := range only {
		keep[n] = struct{}{}
	}
	entries := make([]Entry, 0, len(only))
	for _, e := range f.base.entries {
		if _, ok := keep[e.Name]; ok {
			entries = append(entries, e)
		}
	}
	return SchemaOf(entries...)
}
