package table

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kunalshah912/resc/internal/config"
)

// ParseOptions controls values-file parsing.
type ParseOptions struct {
	// Config is the configuration the parsed values belong to.
	Config config.Config
	// Source is the originating path, used in error messages.
	Source string
	// Translatable is the default for string and plural entries. Files
	// named with "donottranslate" parse with this set to false.
	Translatable bool
	// Legacy downgrades positional-argument errors to warnings.
	Legacy bool

	Logger *zap.Logger
}

var elementKinds = map[string]byte{
	"string":        KindString,
	"plurals":       KindPlural,
	"string-array":  KindStringArray,
	"integer-array": KindIntegerArray,
	"color":         KindColor,
	"bool":          KindBool,
	"integer":       KindInteger,
	"dimen":         KindDimen,
}

var itemKinds = map[string]byte{
	"id":      KindID,
	"string":  KindString,
	"color":   KindColor,
	"bool":    KindBool,
	"integer": KindInteger,
	"dimen":   KindDimen,
}

// Parse reads a values declaration file into t. All entries land in the
// unnamed package; public declarations may pin entry and package IDs.
func Parse(r io.Reader, t *Table, opts ParseOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	dec := xml.NewDecoder(r)
	root, err := nextStartElement(dec)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.Source, err)
	}
	if root.Name.Local != "resources" {
		return fmt.Errorf("%s: root element must be <resources>, got <%s>", opts.Source, root.Name.Local)
	}

	p := &parser{t: t, opts: opts, logger: logger}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return fmt.Errorf("%s: unexpected end of file", opts.Source)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", opts.Source, err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if err := p.parseDeclaration(dec, el); err != nil {
				return fmt.Errorf("%s: %w", opts.Source, err)
			}
		case xml.EndElement:
			return nil
		}
	}
}

type parser struct {
	t      *Table
	opts   ParseOptions
	logger *zap.Logger
}

func (p *parser) parseDeclaration(dec *xml.Decoder, el xml.StartElement) error {
	switch el.Name.Local {
	case "public":
		return p.parsePublic(dec, el)
	case "item":
		return p.parseItem(dec, el)
	}

	kind, ok := elementKinds[el.Name.Local]
	if !ok {
		return fmt.Errorf("unknown element <%s>", el.Name.Local)
	}

	name := attr(el, "name")
	if name == "" {
		return fmt.Errorf("<%s> is missing the name attribute", el.Name.Local)
	}

	v := &Value{
		Config:       p.opts.Config,
		Kind:         kind,
		Translatable: p.translatable(el),
	}

	switch kind {
	case KindPlural, KindStringArray, KindIntegerArray:
		items, err := p.parseItems(dec, el.Name.Local, kind == KindPlural)
		if err != nil {
			return err
		}
		v.Items = items
	default:
		collapsed, raw, err := readText(dec)
		if err != nil {
			return err
		}
		v.Data = collapsed
		v.Raw = raw
		if kind == KindString {
			if err := p.checkPositional(name, collapsed); err != nil {
				return err
			}
		}
	}

	entry := p.t.CreatePackage("").FindType(typeName(kind)).FindEntry(name)
	return entry.AddValue(v)
}

// parseItem handles <item type="..." name="..."/> declarations.
func (p *parser) parseItem(dec *xml.Decoder, el xml.StartElement) error {
	name := attr(el, "name")
	typ := attr(el, "type")
	if name == "" || typ == "" {
		return fmt.Errorf("<item> requires name and type attributes")
	}
	kind, ok := itemKinds[typ]
	if !ok {
		return fmt.Errorf("<item> has unknown type %q", typ)
	}
	collapsed, raw, err := readText(dec)
	if err != nil {
		return err
	}
	v := &Value{
		Config:       p.opts.Config,
		Kind:         kind,
		Data:         collapsed,
		Raw:          raw,
		Translatable: true,
	}
	entry := p.t.CreatePackage("").FindType(typ).FindEntry(name)
	return entry.AddValue(v)
}

// parsePublic handles <public type="..." name="..." id="0x..."/>, pinning
// the entry ID and the owning package ID byte.
func (p *parser) parsePublic(dec *xml.Decoder, el xml.StartElement) error {
	name := attr(el, "name")
	typ := attr(el, "type")
	idStr := attr(el, "id")
	if name == "" || typ == "" || idStr == "" {
		return fmt.Errorf("<public> requires name, type and id attributes")
	}
	id, err := strconv.ParseUint(strings.TrimPrefix(idStr, "0x"), 16, 32)
	if err != nil {
		return fmt.Errorf("<public> has invalid id %q", idStr)
	}
	if err := dec.Skip(); err != nil {
		return err
	}

	pkg := p.t.CreatePackage("")
	if pkgID := uint8(id >> 24); pkgID != 0 {
		if pkg.HasID && pkg.ID != pkgID {
			return fmt.Errorf("<public> id %q conflicts with package id 0x%02x", idStr, pkg.ID)
		}
		pkg.ID = pkgID
		pkg.HasID = true
	}
	entry := pkg.FindType(typ).FindEntry(name)
	entry.ID = uint16(id & 0xffff)
	entry.HasID = true
	return nil
}

func (p *parser) parseItems(dec *xml.Decoder, parent string, plural bool) ([]PluralItem, error) {
	var items []PluralItem
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local != "item" {
				return nil, fmt.Errorf("<%s> may only contain <item> elements, got <%s>", parent, el.Name.Local)
			}
			item := PluralItem{}
			if plural {
				item.Quantity = attr(el, "quantity")
				if item.Quantity == "" {
					return nil, fmt.Errorf("<item> in <%s> requires a quantity attribute", parent)
				}
			}
			item.Value, _, err = readText(dec)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		case xml.EndElement:
			return items, nil
		}
	}
}

// checkPositional rejects strings with multiple non-positional format
// arguments. Legacy mode downgrades this to a warning.
func (p *parser) checkPositional(name, s string) error {
	total, positional := countFormatArgs(s)
	if total <= 1 || positional == total {
		return nil
	}
	if p.opts.Legacy {
		p.logger.Warn("multiple substitutions without positional arguments",
			zap.String("source", p.opts.Source),
			zap.String("resource", name))
		return nil
	}
	return fmt.Errorf("string %q has multiple substitutions but specifies no positional arguments", name)
}

// countFormatArgs counts printf-style substitutions in s and how many of
// them carry an explicit N$ position.
func countFormatArgs(s string) (total, positional int) {
	for i := 0; i < len(s); i++ {
		if s[i] != '%' || i+1 >= len(s) {
			continue
		}
		i++
		if s[i] == '%' {
			continue
		}
		total++
		j := i
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		if j > i && j < len(s) && s[j] == '$' {
			positional++
			i = j
		}
	}
	return total, positional
}

// translatable resolves the per-element translatable attribute against the
// file default.
func (p *parser) translatable(el xml.StartElement) bool {
	switch attr(el, "translatable") {
	case "true":
		return true
	case "false":
		return false
	}
	return p.opts.Translatable
}

// typeName maps a value kind to its resource type directory name.
func typeName(kind byte) string {
	switch kind {
	case KindString:
		return "string"
	case KindPlural:
		return "plurals"
	case KindStringArray, KindIntegerArray:
		return "array"
	case KindColor:
		return "color"
	case KindBool:
		return "bool"
	case KindInteger:
		return "integer"
	case KindDimen:
		return "dimen"
	case KindID:
		return "id"
	}
	return "item"
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func nextStartElement(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return xml.StartElement{}, err
		}
		if el, ok := tok.(xml.StartElement); ok {
			return el, nil
		}
	}
}

// readText consumes the content of the current element up to its end tag.
// The collapsed form flattens nested markup to its character data; the raw
// form keeps nested tags as written.
func readText(dec *xml.Decoder) (collapsed, raw string, err error) {
	var flat, orig strings.Builder
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			flat.Write(t)
			orig.Write(t)
		case xml.StartElement:
			depth++
			orig.WriteByte('<')
			orig.WriteString(t.Name.Local)
			for _, a := range t.Attr {
				fmt.Fprintf(&orig, " %s=%q", a.Name.Local, a.Value)
			}
			orig.WriteByte('>')
		case xml.EndElement:
			if depth == 0 {
				return strings.TrimSpace(flat.String()), strings.TrimSpace(orig.String()), nil
			}
			depth--
			orig.WriteString("</" + t.Name.Local + ">")
		}
	}
}
