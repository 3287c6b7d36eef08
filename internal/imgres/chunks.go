// Package imgres compiles image resources: ancillary-chunk filtering,
// nine-patch border extraction, and size-selected re-encoding.
package imgres

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// ErrNotPNG is returned for streams without a PNG signature.
var ErrNotPNG = errors.New("not a png file")

// metaChunk is the private ancillary chunk holding serialized nine-patch
// metadata in re-encoded images.
const metaChunk = "npTc"

// retainedChunks is the whitelist applied by FilterChunks: the critical
// chunks, transparency, and previously compiled nine-patch metadata.
var retainedChunks = map[string]bool{
	"IHDR":    true,
	"PLTE":    true,
	"tRNS":    true,
	"IDAT":    true,
	"IEND":    true,
	metaChunk: true,
}

// chunk is one raw PNG chunk.
type chunk struct {
	typ  string
	data []byte // payload only
	raw  []byte // length + type + payload + crc
}

// iterChunks decodes the chunk sequence of a PNG stream. It is a pure
// transform over the byte stream; no pixel decoding happens here.
func iterChunks(src []byte) ([]chunk, error) {
	if len(src) < len(pngSignature) || string(src[:len(pngSignature)]) != string(pngSignature) {
		return nil, ErrNotPNG
	}

	var chunks []chunk
	off := len(pngSignature)
	for off < len(src) {
		if len(src)-off < 12 {
			return nil, fmt.Errorf("truncated chunk at offset %d", off)
		}
		length := binary.BigEndian.Uint32(src[off:])
		total := 12 + int(length)
		if len(src)-off < total {
			return nil, fmt.Errorf("truncated chunk at offset %d", off)
		}
		typ := string(src[off+4 : off+8])
		chunks = append(chunks, chunk{
			typ:  typ,
			data: src[off+8 : off+8+int(length)],
			raw:  src[off : off+total],
		})
		off += total
		if typ == "IEND" {
			break
		}
	}
	if len(chunks) == 0 || chunks[len(chunks)-1].typ != "IEND" {
		return nil, errors.New("missing IEND chunk")
	}
	return chunks, nil
}

// FilterChunks strips every chunk outside the retained whitelist, returning
// a valid PNG stream. Both the filtered-original fallback and the decode
// path consume this output.
func FilterChunks(src []byte) ([]byte, error) {
	chunks, err := iterChunks(src)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(src))
	out = append(out, pngSignature...)
	for _, c := range chunks {
		if retainedChunks[c.typ] {
			out = append(out, c.raw...)
		}
	}
	return out, nil
}

// spliceChunk inserts a chunk with the given type and payload immediately
// before the first IDAT chunk of png.
func spliceChunk(png []byte, typ string, payload []byte) ([]byte, error) {
	chunks, err := iterChunks(png)
	if err != nil {
		return nil, err
	}

	encoded := encodeChunk(typ, payload)
	out := make([]byte, 0, len(png)+len(encoded))
	out = append(out, pngSignature...)
	inserted := false
	for _, c := range chunks {
		if !inserted && c.typ == "IDAT" {
			out = append(out, encoded...)
			inserted = true
		}
		out = append(out, c.raw...)
	}
	if !inserted {
		return nil, errors.New("missing IDAT chunk")
	}
	return out, nil
}

func encodeChunk(typ string, payload []byte) []byte {
	buf := make([]byte, 0, 12+len(payload))
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(payload)))
	buf = append(buf, typ...)
	buf = append(buf, payload...)

	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(payload)
	return binary.BigEndian.AppendUint32(buf, crc.Sum32())
}
