// Package container frames compiled-file records into archive entries.
//
// A multi-record entry is a 4-byte little-endian record count followed by the
// records. Each record is a length-prefixed FlatBuffers metadata block (4-byte
// little-endian length) immediately followed by an 8-byte little-endian
// payload length and the payload bytes. Whole-table entries do not use this
// framing.
package container

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/opencontainers/go-digest"

	"github.com/kunalshah912/resc/internal/fb"
)

// ErrCorrupt is returned when an entry cannot be decoded.
var ErrCorrupt = errors.New("corrupt compiled entry")

// maxMetaSize bounds the metadata block length accepted by the reader.
const maxMetaSize = 1 << 20

// Record identifies one compiled resource variant.
type Record struct {
	Type    string
	Name    string
	Package string
	Config  string
	Source  string

	// ExportedIDs are identifiers the payload declares ("@+id/" syntax),
	// in document order.
	ExportedIDs []string
}

// Writer frames records into a single archive entry.
//
// The record count must be written first, and must equal the number of
// WriteRecord calls that follow.
type Writer struct {
	w io.Writer
}

// NewWriter returns a Writer emitting to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteCount writes the record count prefix.
func (w *Writer) WriteCount(n uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], n)
	_, err := w.w.Write(buf[:])
	return err
}

// WriteRecord writes one metadata block and its payload. The payload digest
// and size are recorded in the metadata.
func (w *Writer) WriteRecord(rec Record, payload []byte) error {
	meta := buildMeta(rec, payload)

	var lenBuf [8]byte
	binary.LittleEndian.PutUint32(lenBuf[:4], uint32(len(meta)))
	if _, err := w.w.Write(lenBuf[:4]); err != nil {
		return err
	}
	if _, err := w.w.Write(meta); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(payload)))
	if _, err := w.w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.w.Write(payload)
	return err
}

// buildMeta serializes the metadata block to FlatBuffers.
func buildMeta(rec Record, payload []byte) []byte {
	builder := flatbuffers.NewBuilder(256)

	typeOff := builder.CreateString(rec.Type)
	nameOff := builder.CreateString(rec.Name)
	pkgOff := builder.CreateString(rec.Package)
	configOff := builder.CreateString(rec.Config)
	sourceOff := builder.CreateString(rec.Source)
	digestOff := builder.CreateString(digest.FromBytes(payload).String())

	var idsOff flatbuffers.UOffsetT
	if len(rec.ExportedIDs) > 0 {
		idOffs := make([]flatbuffers.UOffsetT, len(rec.ExportedIDs))
		for i, id := range rec.ExportedIDs {
			idOffs[i] = builder.CreateString(id)
		}
		fb.CompiledFileStartExportedIdsVector(builder, len(idOffs))
		for i := len(idOffs) - 1; i >= 0; i-- {
			builder.PrependUOffsetT(idOffs[i])
		}
		idsOff = builder.EndVector(len(idOffs))
	}

	fb.CompiledFileStart(builder)
	fb.CompiledFileAddResourceType(builder, typeOff)
	fb.CompiledFileAddName(builder, nameOff)
	fb.CompiledFileAddPackage(builder, pkgOff)
	fb.CompiledFileAddConfig(builder, configOff)
	fb.CompiledFileAddSource(builder, sourceOff)
	fb.CompiledFileAddDataSize(builder, uint64(len(payload)))
	fb.CompiledFileAddDigest(builder, digestOff)
	if idsOff != 0 {
		fb.CompiledFileAddExportedIds(builder, idsOff)
	}
	builder.Finish(fb.CompiledFileEnd(builder))

	return builder.FinishedBytes()
}

// DecodedRecord is one record read back from an entry.
type DecodedRecord struct {
	Record
	Digest  digest.Digest
	Payload []byte
}

// ReadAll decodes a complete multi-record entry, verifying each payload
// against its recorded size and digest.
func ReadAll(r io.Reader) ([]DecodedRecord, error) {
	var countBuf [4]byte
	if _, err := io.ReadFull(r, countBuf[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	count := binary.LittleEndian.Uint32(countBuf[:])

	records := make([]DecodedRecord, 0, count)
	for i := uint32(0); i < count; i++ {
		rec, err := readRecord(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func readRecord(r io.Reader) (DecodedRecord, error) {
	var lenBuf [8]byte
	if _, err := io.ReadFull(r, lenBuf[:4]); err != nil {
		return DecodedRecord{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	metaLen := binary.LittleEndian.Uint32(lenBuf[:4])
	if metaLen == 0 || metaLen > maxMetaSize {
		return DecodedRecord{}, fmt.Errorf("%w: metadata length %d", ErrCorrupt, metaLen)
	}

	meta := make([]byte, metaLen)
	if _, err := io.ReadFull(r, meta); err != nil {
		return DecodedRecord{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	cf := fb.GetRootAsCompiledFile(meta, 0)

	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return DecodedRecord{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	payloadLen := binary.LittleEndian.Uint64(lenBuf[:])
	if payloadLen != cf.DataSize() {
		return DecodedRecord{}, fmt.Errorf("%w: payload length %d does not match metadata %d", ErrCorrupt, payloadLen, cf.DataSize())
	}

	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return DecodedRecord{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	dgst, err := digest.Parse(string(cf.Digest()))
	if err != nil {
		return DecodedRecord{}, fmt.Errorf("%w: bad digest: %v", ErrCorrupt, err)
	}
	if digest.FromBytes(payload) != dgst {
		return DecodedRecord{}, fmt.Errorf("%w: payload digest mismatch", ErrCorrupt)
	}

	var ids []string
	if n := cf.ExportedIdsLength(); n > 0 {
		ids = make([]string, n)
		for i := range ids {
			ids[i] = string(cf.ExportedIds(i))
		}
	}

	return DecodedRecord{
		Record: Record{
			Type:        string(cf.ResourceType()),
			Name:        string(cf.Name()),
			Package:     string(cf.Package()),
			Config:      string(cf.Config()),
			Source:      string(cf.Source()),
			ExportedIDs: ids,
		},
		Digest:  dgst,
		Payload: payload,
	}, nil
}
