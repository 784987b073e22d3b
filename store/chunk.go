// Package store persists volume.Volume chunks to a compact binary format
// and tracks incremental voxel edits between extractions.
package store

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/victorbstan/polyvox/volume"
)

var errUnknownEncoding = errors.New("store: unknown chunk encoding")

const chunkMagic = "PVOX"
const chunkVersion = 1

// Header holds the chunk-specific fields of a chunk file's fixed-size
// header (bits-per-voxel, dimensions, palette placeholder). The magic,
// version, encoding byte and payload length that EncodeChunk writes
// around these fields are not part of it, and EncodeChunk and DecodeChunk
// read and write the fields directly rather than through this type.
type Header struct {
	BPP     uint8
	Width   uint16
	Height  uint16
	Depth   uint16
	Palette uint16
}

// EncodeChunk serializes vol into the PVOX format at the given bpp
// (1..8 bits per voxel); bpp is clamped into that range.
func EncodeChunk(vol *volume.Volume, bpp uint8) []byte {
	if bpp < 1 {
		bpp = 1
	}
	if bpp > 8 {
		bpp = 8
	}
	enc := bestEncoding(vol.Voxels(), bpp)

	var buf bytes.Buffer
	buf.WriteString(chunkMagic)
	_ = binary.Write(&buf, binary.LittleEndian, uint8(chunkVersion))
	_ = binary.Write(&buf, binary.LittleEndian, enc.encoding)
	_ = binary.Write(&buf, binary.LittleEndian, bpp)
	_ = binary.Write(&buf, binary.LittleEndian, uint16(vol.Width()))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(vol.Height()))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(vol.Depth()))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(0)) // reserved palette slot
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(enc.payload)))
	buf.Write(enc.payload)
	return buf.Bytes()
}

// DecodeChunk parses a PVOX payload back into a Volume.
func DecodeChunk(data []byte) (*volume.Volume, error) {
	if len(data) < len(chunkMagic) || string(data[:len(chunkMagic)]) != chunkMagic {
		return nil, fmt.Errorf("store: not a PVOX chunk")
	}
	r := bytes.NewReader(data[len(chunkMagic):])

	var ver, encByte, bpp uint8
	var w, h, d, pal uint16
	var plen uint32
	for _, f := range []any{&ver, &encByte, &bpp, &w, &h, &d, &pal, &plen} {
		if err := binary.Read(r, binary.LittleEndian, f); err != nil {
			return nil, err
		}
	}
	if ver != chunkVersion {
		return nil, fmt.Errorf("store: unsupported chunk version %d", ver)
	}

	payload := make([]byte, plen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}

	count := int(w) * int(h) * int(d)
	voxels, err := decodePayload(encByte, bpp, count, payload)
	if err != nil {
		return nil, err
	}
	return volume.FromVoxels(int32(w), int32(h), int32(d), voxels), nil
}
