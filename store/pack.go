package store

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

const packMagic = "PVOXPACK"
const packVersion = 1

// PackEntry is one chunk's worth of data inside a pack archive.
type PackEntry struct {
	Coord ChunkCoord
	Data  []byte // a full PVOX chunk, as produced by EncodeChunk
}

// Pack serializes a set of chunks into a single zstd-compressed archive,
// the bulk-transfer format for shipping many chunks at once (e.g. region
// export) instead of one PVOX file per chunk. Unlike the original
// content-defined-chunking pack format this is grounded on, a region
// export rarely has the byte-for-byte-duplicate sub-blocks CDC targets,
// so this only compresses the whole archive with zstd rather than also
// deduplicating content blocks.
func Pack(entries []PackEntry) ([]byte, error) {
	var raw bytes.Buffer
	raw.WriteString(packMagic)
	_ = binary.Write(&raw, binary.LittleEndian, uint8(packVersion))
	_ = binary.Write(&raw, binary.LittleEndian, uint32(len(entries)))
	for _, e := range entries {
		_ = binary.Write(&raw, binary.LittleEndian, e.Coord.X)
		_ = binary.Write(&raw, binary.LittleEndian, e.Coord.Y)
		_ = binary.Write(&raw, binary.LittleEndian, e.Coord.Z)
		_ = binary.Write(&raw, binary.LittleEndian, uint32(len(e.Data)))
		raw.Write(e.Data)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(raw.Bytes(), nil), nil
}

// Unpack reverses Pack.
func Unpack(archive []byte) ([]PackEntry, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(archive, nil)
	if err != nil {
		return nil, err
	}

	if len(raw) < len(packMagic) || string(raw[:len(packMagic)]) != packMagic {
		return nil, fmt.Errorf("store: not a PVOXPACK archive")
	}
	r := bytes.NewReader(raw[len(packMagic):])

	var version uint8
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, err
	}
	if version != packVersion {
		return nil, fmt.Errorf("store: unsupported pack version %d", version)
	}

	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	entries := make([]PackEntry, 0, n)
	for i := uint32(0); i < n; i++ {
		var e PackEntry
		for _, f := range []any{&e.Coord.X, &e.Coord.Y, &e.Coord.Z} {
			if err := binary.Read(r, binary.LittleEndian, f); err != nil {
				return nil, err
			}
		}
		var dlen uint32
		if err := binary.Read(r, binary.LittleEndian, &dlen); err != nil {
			return nil, err
		}
		e.Data = make([]byte, dlen)
		if _, err := io.ReadFull(r, e.Data); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
