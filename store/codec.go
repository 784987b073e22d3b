package store

import (
	"bytes"
	"compress/zlib"
	"io"
)

// Encoding identifies how a chunk's voxel payload is packed. The high bit
// (encCompressed) is set independently to mean "zlib applied on top".
const (
	encDense      = 0
	encSparse     = 1
	encSparse2    = 2
	encCompressed = 0x80
)

type encoded struct {
	encoding uint8
	payload  []byte
}

func encodeDense(voxels []uint8, bpp uint8) []byte {
	bw := newBitWriter()
	for _, c := range voxels {
		bw.writeBits(uint64(c), bpp)
	}
	return bw.bytes()
}

func decodeDense(payload []byte, bpp uint8, count int) ([]uint8, error) {
	br := newBitReader(payload)
	out := make([]uint8, count)
	for i := range out {
		v, err := br.readBits(bpp)
		if err != nil {
			return nil, err
		}
		out[i] = uint8(v)
	}
	return out, nil
}

// encodeSparse lists only the non-zero voxels as (index, value) pairs,
// with the index width sized to the voxel count rather than a fixed
// width, so it can address every position in chunks of any shape.
func encodeSparse(voxels []uint8, bpp uint8) []byte {
	ibits := indexBits(len(voxels))
	bw := newBitWriter()
	count := 0
	for _, c := range voxels {
		if c != 0 {
			count++
		}
	}
	bw.writeBits(uint64(count), 32)
	for i, c := range voxels {
		if c == 0 {
			continue
		}
		bw.writeBits(uint64(i), ibits)
		bw.writeBits(uint64(c), bpp)
	}
	return bw.bytes()
}

func decodeSparse(payload []byte, bpp uint8, count int) ([]uint8, error) {
	ibits := indexBits(count)
	br := newBitReader(payload)
	out := make([]uint8, count)
	n, err := br.readBits(32)
	if err != nil {
		return nil, err
	}
	for i := 0; i < int(n); i++ {
		idx, err := br.readBits(ibits)
		if err != nil {
			return nil, err
		}
		val, err := br.readBits(bpp)
		if err != nil {
			return nil, err
		}
		out[idx] = uint8(val)
	}
	return out, nil
}

// encodeSparse2 stores an occupancy bitmap followed by the tightly packed
// non-zero values, avoiding the per-voxel index overhead of encodeSparse
// when occupancy is dense but values are few-valued.
func encodeSparse2(voxels []uint8, bpp uint8) []byte {
	bitmapLen := (len(voxels) + 7) / 8
	bitmap := make([]byte, bitmapLen)
	nonzero := make([]uint8, 0, len(voxels))
	for i, v := range voxels {
		if v != 0 {
			bitmap[i>>3] |= 1 << uint(i&7)
			nonzero = append(nonzero, v)
		}
	}
	bw := newBitWriter()
	for _, c := range nonzero {
		bw.writeBits(uint64(c), bpp)
	}
	out := make([]byte, 0, bitmapLen+len(nonzero))
	out = append(out, bitmap...)
	out = append(out, bw.bytes()...)
	return out
}

func decodeSparse2(payload []byte, bpp uint8, count int) ([]uint8, error) {
	bitmapLen := (count + 7) / 8
	if len(payload) < bitmapLen {
		return nil, io.ErrUnexpectedEOF
	}
	bitmap := payload[:bitmapLen]
	br := newBitReader(payload[bitmapLen:])
	out := make([]uint8, count)
	for i := 0; i < count; i++ {
		if (bitmap[i>>3]>>uint(i&7))&1 == 0 {
			continue
		}
		v, err := br.readBits(bpp)
		if err != nil {
			return nil, err
		}
		out[i] = uint8(v)
	}
	return out, nil
}

func zlibCompress(b []byte) []byte {
	var buf bytes.Buffer
	zw, _ := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	_, _ = zw.Write(b)
	_ = zw.Close()
	return buf.Bytes()
}

func zlibDecompress(b []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// bestEncoding tries every encoding (plus its zlib-compressed form) and
// keeps whichever payload is smallest.
func bestEncoding(voxels []uint8, bpp uint8) encoded {
	candidates := []encoded{
		{encoding: encDense, payload: encodeDense(voxels, bpp)},
		{encoding: encSparse, payload: encodeSparse(voxels, bpp)},
		{encoding: encSparse2, payload: encodeSparse2(voxels, bpp)},
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if len(c.payload) < len(best.payload) {
			best = c
		}
	}
	for _, c := range candidates {
		zb := zlibCompress(c.payload)
		if len(zb) < len(best.payload) {
			best = encoded{encoding: c.encoding | encCompressed, payload: zb}
		}
	}
	return best
}

func decodePayload(encByte, bpp uint8, count int, payload []byte) ([]uint8, error) {
	if encByte&encCompressed != 0 {
		var err error
		payload, err = zlibDecompress(payload)
		if err != nil {
			return nil, err
		}
	}
	switch encByte &^ encCompressed {
	case encDense:
		return decodeDense(payload, bpp, count)
	case encSparse:
		return decodeSparse(payload, bpp, count)
	case encSparse2:
		return decodeSparse2(payload, bpp, count)
	default:
		return nil, errUnknownEncoding
	}
}
