package xmlres

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Inflate parses source bytes into a Document. Whitespace-only text between
// elements is dropped; mixed content is preserved.
func Inflate(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)

	var root *Node
	var stack []*Node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}
		line, _ := dec.InputPos()

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{
				Namespace: t.Name.Space,
				Name:      t.Name.Local,
				Line:      line,
			}
			for _, a := range t.Attr {
				// xmlns declarations are resolved by the decoder;
				// keep them out of the attribute list.
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				n.Attrs = append(n.Attrs, Attr{
					Namespace: a.Name.Space,
					Name:      a.Name.Local,
					Value:     a.Value,
				})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("parse xml: multiple root elements")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, errors.New("parse xml: unbalanced end element")
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			text := string(t)
			if strings.TrimSpace(text) == "" {
				continue
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, &Node{Text: text, Line: line})
		}
	}

	if root == nil {
		return nil, errors.New("parse xml: no root element")
	}
	if len(stack) != 0 {
		return nil, errors.New("parse xml: unexpected end of input")
	}
	return &Document{Root: root}, nil
}

// idPrefix marks attribute values that declare a new identifier.
const idPrefix = "@+id/"

// CollectIDs records every identifier declared in the document into
// DefinedIDs, in document order without duplicates.
func CollectIDs(doc *Document) {
	seen := make(map[string]struct{})
	doc.Walk(func(n *Node) bool {
		for _, a := range n.Attrs {
			name, ok := strings.CutPrefix(a.Value, idPrefix)
			if !ok || name == "" {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			doc.DefinedIDs = append(doc.DefinedIDs, name)
		}
		return true
	})
}
