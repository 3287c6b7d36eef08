// Package table builds and serializes resource tables from value
// declaration files.
package table

import (
	"fmt"

	"github.com/kunalshah912/resc/internal/config"
)

// Value kinds stored in a table. The zero value is an untyped item.
const (
	KindItem byte = iota
	KindString
	KindPlural
	KindStringArray
	KindIntegerArray
	KindColor
	KindBool
	KindInteger
	KindDimen
	KindID
)

// PluralItem is one quantity-keyed variant of a plural.
type PluralItem struct {
	Quantity string
	Value    string
}

// Value is one configuration-specific value of an entry.
type Value struct {
	Config config.Config
	Kind   byte
	// Data is the collapsed value text. Raw preserves the uncollapsed
	// source form.
	Data string
	Raw  string
	// Weak values may be replaced by later strong definitions and never
	// displace existing ones. Pseudo-localized values are weak.
	Weak         bool
	Translatable bool
	Items        []PluralItem
}

// Entry is one named resource of a type.
type Entry struct {
	Name   string
	ID     uint16
	HasID  bool
	Values []*Value
}

// TypeGroup holds the entries of one resource type within a package.
type TypeGroup struct {
	Name    string
	Entries []*Entry
}

// Package is one named package. Packages without an explicit ID get one
// assigned after parsing.
type Package struct {
	Name  string
	ID    uint8
	HasID bool
	Types []*TypeGroup
}

// Table is a set of packages in insertion order.
type Table struct {
	Packages []*Package
}

// CreatePackage returns the package with the given name, creating it if
// needed. Creation order is preserved.
func (t *Table) CreatePackage(name string) *Package {
	for _, p := range t.Packages {
		if p.Name == name {
			return p
		}
	}
	p := &Package{Name: name}
	t.Packages = append(t.Packages, p)
	return p
}

// FindType returns the type group with the given name, creating it if needed.
func (p *Package) FindType(name string) *TypeGroup {
	for _, tg := range p.Types {
		if tg.Name == name {
			return tg
		}
	}
	tg := &TypeGroup{Name: name}
	p.Types = append(p.Types, tg)
	return tg
}

// FindEntry returns the entry with the given name, creating it if needed.
func (tg *TypeGroup) FindEntry(name string) *Entry {
	for _, e := range tg.Entries {
		if e.Name == name {
			return e
		}
	}
	e := &Entry{Name: name}
	tg.Entries = append(tg.Entries, e)
	return e
}

// AddValue inserts v for its configuration. Strong values replace weak ones;
// weak values never displace an existing value; two strong values for the
// same configuration conflict.
func (e *Entry) AddValue(v *Value) error {
	for i, old := range e.Values {
		if old.Config != v.Config {
			continue
		}
		switch {
		case v.Weak:
			return nil
		case old.Weak:
			e.Values[i] = v
			return nil
		default:
			return fmt.Errorf("duplicate value for resource %q in config %q", e.Name, v.Config.String())
		}
	}
	e.Values = append(e.Values, v)
	return nil
}

// FindValue returns the value for the exact configuration, or nil.
func (e *Entry) FindValue(c config.Config) *Value {
	for _, v := range e.Values {
		if v.Config == c {
			return v
		}
	}
	return nil
}

// IDAllocator hands out package IDs in call order. Allocation is
// deterministic: re-running over unchanged input yields identical IDs.
type IDAllocator struct {
	next uint8
}

// NewIDAllocator returns an allocator starting at the first non-system ID.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{next: 0x02}
}

// Next returns the next free package ID.
func (a *IDAllocator) Next() uint8 {
	id := a.next
	a.next++
	return id
}

// AssignIDs gives every package lacking an explicit ID the next allocator
// ID, in package-list order.
func AssignIDs(t *Table, alloc *IDAllocator) {
	for _, p := range t.Packages {
		if !p.HasID {
			p.ID = alloc.Next()
			p.HasID = true
		}
	}
}
