package xmlres

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodePool reads the header and string pool chunk, returning the pool and
// the offset of the first node chunk.
func decodePool(t *testing.T, b []byte) ([]string, int) {
	t.Helper()
	require.GreaterOrEqual(t, len(b), 14)
	require.Equal(t, magic, string(b[:4]))
	assert.EqualValues(t, formatVersion, binary.LittleEndian.Uint16(b[4:]))
	assert.EqualValues(t, flagKeepRaw, binary.LittleEndian.Uint16(b[6:]))

	require.EqualValues(t, chunkPool, binary.LittleEndian.Uint16(b[8:]))
	size := binary.LittleEndian.Uint32(b[10:])
	off := 14
	count := binary.LittleEndian.Uint32(b[off:])
	off += 4
	pool := make([]string, 0, count)
	for i := uint32(0); i < count; i++ {
		n := int(binary.LittleEndian.Uint32(b[off:]))
		off += 4
		pool = append(pool, string(b[off:off+n]))
		off += n
	}
	assert.EqualValues(t, size, off-14)
	return pool, off
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	doc := inflate(t, `<view a="hello">text</view>`)
	b, err := Flatten(doc)
	require.NoError(t, err)

	pool, off := decodePool(t, b)
	assert.Equal(t, []string{"view", "a", "hello", "text"}, pool)

	// Element start: line, namespace, name, one attribute.
	require.EqualValues(t, chunkElemStart, binary.LittleEndian.Uint16(b[off:]))
	assert.EqualValues(t, 4+4+4+2+17, binary.LittleEndian.Uint32(b[off+2:]))
	off += 6
	assert.EqualValues(t, 1, binary.LittleEndian.Uint32(b[off:]))          // line
	assert.Equal(t, nilIndex, binary.LittleEndian.Uint32(b[off+4:]))       // no namespace
	assert.Equal(t, "view", pool[binary.LittleEndian.Uint32(b[off+8:])])   // name
	require.EqualValues(t, 1, binary.LittleEndian.Uint16(b[off+12:]))      // attr count
	assert.Equal(t, nilIndex, binary.LittleEndian.Uint32(b[off+14:]))      // attr namespace
	assert.Equal(t, "a", pool[binary.LittleEndian.Uint32(b[off+18:])])     // attr name
	assert.Equal(t, "hello", pool[binary.LittleEndian.Uint32(b[off+22:])]) // raw value
	assert.Equal(t, ValStr, b[off+26])
	assert.Equal(t, "hello", pool[binary.LittleEndian.Uint32(b[off+27:])])
	off += 31

	// Text node.
	require.EqualValues(t, chunkText, binary.LittleEndian.Uint16(b[off:]))
	assert.Equal(t, "text", pool[binary.LittleEndian.Uint32(b[off+10:])])
	off += 14

	// Element end closes the stream.
	require.EqualValues(t, chunkElemEnd, binary.LittleEndian.Uint16(b[off:]))
	assert.Equal(t, "view", pool[binary.LittleEndian.Uint32(b[off+10:])])
	assert.Len(t, b, off+14)
}

func TestFlattenLongStrings(t *testing.T) {
	t.Parallel()

	// Pool entries past 64 KiB must keep their full length.
	long := strings.Repeat("x", 70000)
	doc := inflate(t, `<view a="`+long+`"/>`)
	b, err := Flatten(doc)
	require.NoError(t, err)

	pool, off := decodePool(t, b)
	require.Equal(t, []string{"view", "a", long}, pool)

	require.EqualValues(t, chunkElemStart, binary.LittleEndian.Uint16(b[off:]))
	assert.Equal(t, long, pool[binary.LittleEndian.Uint32(b[off+28:])])
}

func TestFlattenNoRoot(t *testing.T) {
	t.Parallel()

	_, err := Flatten(&Document{})
	assert.Error(t, err)
}

func TestTypeValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		typ   byte
		data  uint32
	}{
		{"", ValNull, 0},
		{"true", ValBool, 1},
		{"false", ValBool, 0},
		{"42", ValInt, 42},
		{"-7", ValInt, ^uint32(6)},
		{"0x1f", ValInt, 31},
		{"1.5", ValFloat, math.Float32bits(1.5)},
		{"#f00", ValColor, 0xffff0000},
		{"#8f00", ValColor, 0x88ff0000},
		{"#102030", ValColor, 0xff102030},
		{"#80102030", ValColor, 0x80102030},
	}
	pool := newStringPool()
	for _, tt := range tests {
		typ, data := typeValue(pool, tt.value)
		assert.Equal(t, tt.typ, typ, tt.value)
		assert.Equal(t, tt.data, data, tt.value)
	}

	// References and plain strings intern their value.
	typ, data := typeValue(pool, "@string/app_name")
	assert.Equal(t, ValRef, typ)
	assert.Equal(t, "@string/app_name", pool.values[data])

	typ, data = typeValue(pool, "#nothex")
	assert.Equal(t, ValStr, typ)
	assert.Equal(t, "#nothex", pool.values[data])
}
