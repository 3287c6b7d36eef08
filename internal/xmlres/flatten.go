package xmlres

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"strconv"
	"strings"
)

// Flattened binary layout: an 8-byte header ("RESX", version, flags)
// followed by chunks. Every chunk opens with a 2-byte type and a 4-byte
// payload size, so readers can skip chunks they do not understand and seek
// across the node stream without decoding it.
const (
	magic          = "RESX"
	formatVersion  = 1
	flagKeepRaw    = 0x0001
	chunkPool      = 0x0001
	chunkElemStart = 0x0102
	chunkElemEnd   = 0x0103
	chunkText      = 0x0104
)

// Typed attribute values. The raw string index is always stored alongside,
// so downstream consumers can recover the original source form.
const (
	ValNull  byte = 0
	ValRef   byte = 1
	ValStr   byte = 2
	ValInt   byte = 3
	ValFloat byte = 4
	ValBool  byte = 5
	ValColor byte = 6
)

// nilIndex marks an absent string-pool reference.
const nilIndex = ^uint32(0)

// Flatten serializes the document tree into its binary form.
func Flatten(doc *Document) ([]byte, error) {
	if doc.Root == nil {
		return nil, errors.New("flatten: document has no root")
	}

	pool := newStringPool()
	var nodes bytes.Buffer
	flattenNode(&nodes, pool, doc.Root)

	var out bytes.Buffer
	out.WriteString(magic)
	writeU16(&out, formatVersion)
	writeU16(&out, flagKeepRaw)
	pool.writeChunk(&out)
	out.Write(nodes.Bytes())
	return out.Bytes(), nil
}

func flattenNode(buf *bytes.Buffer, pool *stringPool, n *Node) {
	if !n.IsElement() {
		writeChunkHeader(buf, chunkText, 8)
		writeU32(buf, uint32(n.Line))
		writeU32(buf, pool.index(n.Text))
		return
	}

	// line + ns + name + attr count + attrs.
	size := 4 + 4 + 4 + 2 + len(n.Attrs)*17
	writeChunkHeader(buf, chunkElemStart, size)
	writeU32(buf, uint32(n.Line))
	writeU32(buf, pool.indexOrNil(n.Namespace))
	writeU32(buf, pool.index(n.Name))
	writeU16(buf, uint16(len(n.Attrs)))
	for _, a := range n.Attrs {
		writeU32(buf, pool.indexOrNil(a.Namespace))
		writeU32(buf, pool.index(a.Name))
		writeU32(buf, pool.index(a.Value))
		typ, data := typeValue(pool, a.Value)
		buf.WriteByte(typ)
		writeU32(buf, data)
	}

	for _, c := range n.Children {
		flattenNode(buf, pool, c)
	}

	writeChunkHeader(buf, chunkElemEnd, 8)
	writeU32(buf, pool.indexOrNil(n.Namespace))
	writeU32(buf, pool.index(n.Name))
}

// typeValue derives the typed form of an attribute value. The raw string
// stays in the pool regardless of the result.
func typeValue(pool *stringPool, s string) (byte, uint32) {
	switch {
	case s == "":
		return ValNull, 0
	case s == "true":
		return ValBool, 1
	case s == "false":
		return ValBool, 0
	case s[0] == '@' || s[0] == '?':
		return ValRef, pool.index(s)
	case s[0] == '#':
		if c, ok := parseColor(s[1:]); ok {
			return ValColor, c
		}
	}
	if v, err := strconv.ParseInt(s, 10, 32); err == nil {
		return ValInt, uint32(int32(v))
	}
	if strings.HasPrefix(s, "0x") {
		if v, err := strconv.ParseUint(s[2:], 16, 32); err == nil {
			return ValInt, uint32(v)
		}
	}
	if v, err := strconv.ParseFloat(s, 32); err == nil {
		return ValFloat, math.Float32bits(float32(v))
	}
	return ValStr, pool.index(s)
}

// parseColor decodes #rgb, #argb, #rrggbb and #aarrggbb into ARGB.
func parseColor(hex string) (uint32, bool) {
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, false
	}
	switch len(hex) {
	case 3:
		r := (v >> 8) & 0xf
		g := (v >> 4) & 0xf
		b := v & 0xf
		return uint32(0xff000000 | r<<20 | r<<16 | g<<12 | g<<8 | b<<4 | b), true
	case 4:
		a := (v >> 12) & 0xf
		r := (v >> 8) & 0xf
		g := (v >> 4) & 0xf
		b := v & 0xf
		return uint32(a<<28 | a<<24 | r<<20 | r<<16 | g<<12 | g<<8 | b<<4 | b), true
	case 6:
		return uint32(0xff000000 | v), true
	case 8:
		return uint32(v), true
	}
	return 0, false
}

// stringPool interns strings in first-use order.
type stringPool struct {
	byValue map[string]uint32
	values  []string
}

func newStringPool() *stringPool {
	return &stringPool{byValue: make(map[string]uint32)}
}

func (p *stringPool) index(s string) uint32 {
	if i, ok := p.byValue[s]; ok {
		return i
	}
	i := uint32(len(p.values))
	p.byValue[s] = i
	p.values = append(p.values, s)
	return i
}

// indexOrNil interns s, mapping the empty string to the nil index.
func (p *stringPool) indexOrNil(s string) uint32 {
	if s == "" {
		return nilIndex
	}
	return p.index(s)
}

func (p *stringPool) writeChunk(buf *bytes.Buffer) {
	size := 4
	for _, s := range p.values {
		size += 4 + len(s)
	}
	writeChunkHeader(buf, chunkPool, size)
	writeU32(buf, uint32(len(p.values)))
	for _, s := range p.values {
		// 4-byte lengths: text nodes and attribute values are unbounded.
		writeU32(buf, uint32(len(s)))
		buf.WriteString(s)
	}
}

func writeChunkHeader(buf *bytes.Buffer, typ uint16, size int) {
	writeU16(buf, typ)
	writeU32(buf, uint32(size))
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}
