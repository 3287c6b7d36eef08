package xmlres

import (
	"fmt"
)

// InlineNamespace is the reserved namespace for inline sub-document markers.
// An element <inline:attr name="pfx:attrname"> hoists its single element
// child into an independent document and leaves a reference attribute on
// the marker's parent.
const InlineNamespace = "urn:resc:inline"

// inlineMarker is the marker element name within InlineNamespace.
const inlineMarker = "attr"

// ExtractInline hoists every inline sub-document block out of doc,
// transitively: hoisted documents are themselves scanned for further inline
// blocks. Returned documents are in extraction order. Each hoist strictly
// reduces the remaining embedded-block depth, so the worklist terminates.
func ExtractInline(doc *Document) ([]*Document, error) {
	var extracted []*Document
	serial := 0

	work := []*Document{doc}
	for len(work) > 0 {
		current := work[0]
		work = work[1:]

		found, err := hoistBlocks(current, doc, &serial)
		if err != nil {
			return nil, err
		}
		extracted = append(extracted, found...)
		work = append(work, found...)
	}
	return extracted, nil
}

// hoistBlocks removes every direct inline block from current, returning the
// hoisted documents. Identity fields derive from the root document.
func hoistBlocks(current, root *Document, serial *int) ([]*Document, error) {
	type match struct {
		parent *Node
		marker *Node
	}
	var matches []match
	current.Walk(func(n *Node) bool {
		for _, c := range n.Children {
			if c.IsElement() && c.Namespace == InlineNamespace && c.Name == inlineMarker {
				matches = append(matches, match{parent: n, marker: c})
			}
		}
		return true
	})

	var docs []*Document
	for _, m := range matches {
		attrName, ok := m.marker.Attr("", "name")
		if !ok || attrName == "" {
			return nil, fmt.Errorf("inline block at line %d is missing the name attribute", m.marker.Line)
		}

		var child *Node
		for _, c := range m.marker.Children {
			if !c.IsElement() {
				continue
			}
			if child != nil {
				return nil, fmt.Errorf("inline block at line %d must contain exactly one element", m.marker.Line)
			}
			child = c
		}
		if child == nil {
			return nil, fmt.Errorf("inline block at line %d must contain exactly one element", m.marker.Line)
		}

		*serial++
		sub := &Document{
			Root:      child,
			Type:      root.Type,
			Name:      fmt.Sprintf("%s__%d", root.Name, *serial),
			Package:   root.Package,
			ConfigStr: root.ConfigStr,
			Config:    root.Config,
			Source:    root.Source,
		}

		// Replace the block with a reference to the hoisted document.
		removeChild(m.parent, m.marker)
		m.parent.SetAttr(attrNamespace(attrName), attrLocal(attrName), "@"+sub.Type+"/"+sub.Name)

		docs = append(docs, sub)
	}
	return docs, nil
}

func removeChild(parent, child *Node) {
	for i, c := range parent.Children {
		if c == child {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			return
		}
	}
}

// attrNamespace and attrLocal split a "prefix:name" marker target. The
// prefix is kept verbatim as the namespace; markers do not resolve prefix
// bindings of the enclosing document.
func attrNamespace(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return s[:i]
		}
	}
	return ""
}

func attrLocal(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return s[i+1:]
		}
	}
	return s
}
