package hidepng

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
)

// chunkHeader is the fixed prefix of every chunk. All integers in a PNG
// datastream are big-endian.
type chunkHeader struct {
	Length uint32
	Type   [4]byte
}

func readChunkHeader(b []byte) (chunkHeader, error) {
	if len(b) < chunkHeaderSize {
		return chunkHeader{}, fmt.Errorf("%w: chunk header needs %d bytes, have %d", ErrInputTooSmall, chunkHeaderSize, len(b))
	}
	var h chunkHeader
	h.Length = binary.BigEndian.Uint32(b[0:4])
	copy(h.Type[:], b[4:8])
	return h, nil
}

func writeChunkHeader(w io.Writer, h chunkHeader) error {
	var buf [chunkHeaderSize]byte
	binary.BigEndian.PutUint32(buf[0:4], h.Length)
	copy(buf[4:8], h.Type[:])
	_, err := w.Write(buf[:])
	return err
}

func writeCRC(w io.Writer, crc uint32) error {
	var buf [chunkCRCSize]byte
	binary.BigEndian.PutUint32(buf[:], crc)
	_, err := w.Write(buf[:])
	return err
}

// chunkCRC is the CRC-32 (IEEE) of the type bytes followed by the data.
// The length field is not covered.
func chunkCRC(ct ChunkType, data []byte) uint32 {
	crc := crc32.Update(0, crc32.IEEETable, ct[:])
	return crc32.Update(crc, crc32.IEEETable, data)
}
