package hidepng

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Chunk is a single length-prefixed, type-tagged, CRC-protected record of a
// PNG datastream. The zero value is not a usable chunk.
type Chunk struct {
	typ  ChunkType
	data []byte
	crc  uint32
}

// NewChunk builds a chunk of type ct holding data and computes its CRC.
// The chunk retains data; callers must not modify it afterwards.
func NewChunk(ct ChunkType, data []byte) Chunk {
	return Chunk{typ: ct, data: data, crc: chunkCRC(ct, data)}
}

// ParseChunk decodes the chunk at the start of b. Bytes after its CRC are
// ignored.
//
// ParseChunk returns ErrInputTooSmall if b ends before the chunk does,
// ErrCrcMismatch if the stored CRC does not match the type and data, and
// ErrInvalidCharacterSet or ErrInvalidReservedBit for a malformed type.
func ParseChunk(b []byte) (Chunk, error) {
	c, _, err := readChunk(b, defaultLimits())
	return c, err
}

// readChunk decodes the chunk at the start of b and returns it together with
// the number of bytes it occupies.
func readChunk(b []byte, limits Limits) (Chunk, int, error) {
	h, err := readChunkHeader(b)
	if err != nil {
		return Chunk{}, 0, err
	}
	ct := ChunkType(h.Type)
	if err := validateChunkLen(uint64(h.Length), limits); err != nil {
		return Chunk{}, 0, err
	}
	end := uint64(chunkOverhead) + uint64(h.Length)
	if uint64(len(b)) < end {
		return Chunk{}, 0, fmt.Errorf("%w: chunk %q needs %d bytes, have %d", ErrInputTooSmall, ct.String(), end, len(b))
	}
	data := make([]byte, h.Length)
	copy(data, b[chunkHeaderSize:end-chunkCRCSize])
	stored := binary.BigEndian.Uint32(b[end-chunkCRCSize : end])

	// Corruption anywhere in type or data must surface as a CRC failure, so
	// the type is validated only after the checksum.
	if computed := chunkCRC(ct, data); computed != stored {
		return Chunk{}, 0, fmt.Errorf("%w: chunk %q stored %08x computed %08x", ErrCrcMismatch, ct.String(), stored, computed)
	}
	if err := validateChunkType(ct); err != nil {
		return Chunk{}, 0, err
	}
	return Chunk{typ: ct, data: data, crc: stored}, int(end), nil
}

// Length is the number of data bytes.
func (c Chunk) Length() uint32 { return uint32(len(c.data)) }

func (c Chunk) Type() ChunkType { return c.typ }

// Data returns the payload. The slice is shared with the chunk.
func (c Chunk) Data() []byte { return c.data }

func (c Chunk) CRC() uint32 { return c.crc }

// DataAsText returns the payload as a string, or ErrInvalidText when it is
// not valid UTF-8.
func (c Chunk) DataAsText() (string, error) {
	if err := validateText(c.data); err != nil {
		return "", fmt.Errorf("%w: chunk %q", err, c.typ.String())
	}
	return string(c.data), nil
}

// Bytes encodes the chunk as length, type, data and CRC.
func (c Chunk) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(chunkOverhead + len(c.data))
	_, _ = c.WriteTo(&buf)
	return buf.Bytes()
}

// WriteTo writes the encoded chunk to w.
func (c Chunk) WriteTo(w io.Writer) (int64, error) {
	h := chunkHeader{Length: c.Length(), Type: c.typ}
	if err := writeChunkHeader(w, h); err != nil {
		return 0, err
	}
	n := int64(chunkHeaderSize)
	m, err := w.Write(c.data)
	n += int64(m)
	if err != nil {
		return n, err
	}
	if err := writeCRC(w, c.crc); err != nil {
		return n, err
	}
	return n + chunkCRCSize, nil
}

func (c Chunk) String() string {
	return fmt.Sprintf("%s length=%d crc=%08x", c.typ, len(c.data), c.crc)
}
