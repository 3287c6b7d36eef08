package container

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	records := []struct {
		rec     Record
		payload []byte
	}{
		{
			rec: Record{
				Type: "layout", Name: "main", Config: "land",
				Source:      "res/layout-land/main.xml",
				ExportedIDs: []string{"title", "body"},
			},
			payload: []byte("flattened markup"),
		},
		{
			rec:     Record{Type: "layout", Name: "main__1", Config: "land", Source: "res/layout-land/main.xml"},
			payload: []byte("hoisted sub-document"),
		},
		{
			rec:     Record{Type: "raw", Name: "empty", Source: "res/raw/empty"},
			payload: nil,
		},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteCount(uint32(len(records))))
	for _, r := range records {
		require.NoError(t, w.WriteRecord(r.rec, r.payload))
	}

	decoded, err := ReadAll(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, decoded, len(records))
	for i, r := range records {
		assert.Equal(t, r.rec, decoded[i].Record)
		assert.Equal(t, digest.FromBytes(r.payload), decoded[i].Digest)
		if len(r.payload) == 0 {
			assert.Empty(t, decoded[i].Payload)
		} else {
			assert.Equal(t, r.payload, decoded[i].Payload)
		}
	}
}

func TestReadAllEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteCount(0))

	decoded, err := ReadAll(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestReadAllCorrupt(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteCount(1))
	require.NoError(t, w.WriteRecord(Record{Type: "drawable", Name: "icon"}, []byte("payload")))
	entry := buf.Bytes()

	t.Run("truncated", func(t *testing.T) {
		t.Parallel()
		for _, n := range []int{0, 2, len(entry) / 2, len(entry) - 1} {
			_, err := ReadAll(bytes.NewReader(entry[:n]))
			assert.ErrorIs(t, err, ErrCorrupt, n)
		}
	})

	t.Run("flipped payload byte", func(t *testing.T) {
		t.Parallel()
		bad := bytes.Clone(entry)
		bad[len(bad)-1] ^= 0xff
		_, err := ReadAll(bytes.NewReader(bad))
		assert.ErrorIs(t, err, ErrCorrupt)
		assert.ErrorContains(t, err, "digest mismatch")
	})

	t.Run("oversized metadata length", func(t *testing.T) {
		t.Parallel()
		bad := bytes.Clone(entry)
		binary.LittleEndian.PutUint32(bad[4:], maxMetaSize+1)
		_, err := ReadAll(bytes.NewReader(bad))
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("payload length mismatch", func(t *testing.T) {
		t.Parallel()
		bad := bytes.Clone(entry)
		metaLen := binary.LittleEndian.Uint32(bad[4:])
		binary.LittleEndian.PutUint64(bad[8+int(metaLen):], 3)
		_, err := ReadAll(bytes.NewReader(bad))
		assert.ErrorIs(t, err, ErrCorrupt)
		assert.ErrorContains(t, err, "does not match")
	})
}
