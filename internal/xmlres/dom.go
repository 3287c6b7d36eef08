// Package xmlres inflates markup resources into attributed trees and
// flattens them into a compact, randomly-traversable binary form.
package xmlres

import (
	"github.com/kunalshah912/resc/internal/config"
)

// Attr is one attribute of an element node.
type Attr struct {
	Namespace string
	Name      string
	Value     string
}

// Node is an element or text node. Text nodes have an empty Name and carry
// their content in Text.
type Node struct {
	Namespace string
	Name      string
	Attrs     []Attr
	Children  []*Node
	Text      string
	Line      int
}

// IsElement reports whether n is an element node.
func (n *Node) IsElement() bool { return n.Name != "" }

// Attr returns the value of the named attribute and whether it is present.
func (n *Node) Attr(namespace, name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Namespace == namespace && a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr adds or replaces an attribute.
func (n *Node) SetAttr(namespace, name, value string) {
	for i, a := range n.Attrs {
		if a.Namespace == namespace && a.Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Namespace: namespace, Name: name, Value: value})
}

// Elements iterates over the element children of n.
func (n *Node) Elements(fn func(*Node) bool) {
	for _, c := range n.Children {
		if c.IsElement() && !fn(c) {
			return
		}
	}
}

// Document is a parsed markup resource with its compiled identity.
type Document struct {
	Root *Node

	// Identity stamped by the compiler after inflation.
	Type      string
	Name      string
	Package   string
	ConfigStr string
	Config    config.Config
	Source    string

	// DefinedIDs collects identifiers declared in this document via the
	// "@+id/" syntax, in document order.
	DefinedIDs []string
}

// Walk visits every node of the tree in depth-first document order. The
// walk stops when fn returns false.
func (d *Document) Walk(fn func(*Node) bool) {
	if d.Root != nil {
		walk(d.Root, fn)
	}
}

func walk(n *Node, fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}
