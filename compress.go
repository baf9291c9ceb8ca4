package hidepng

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Function variables for testing injection.
var (
	newZstdWriter = func() (*zstd.Encoder, error) { return zstd.NewWriter(nil) }
	newZstdReader = func(r io.Reader) (*zstd.Decoder, error) { return zstd.NewReader(r) }
	zipCreate     = func(zw *zip.Writer, name string) (io.Writer, error) { return zw.Create(name) }
	zipClose      = func(zw *zip.Writer) error { return zw.Close() }
	zipOpen       = func(zf *zip.File) (io.ReadCloser, error) { return zf.Open() }
	readAll       = io.ReadAll
	lz4Close      = func(w *lz4.Writer) error { return w.Close() }
	brotliClose   = func(w *brotli.Writer) error { return w.Close() }
	brotliWrite   = func(w *brotli.Writer, p []byte) (int, error) { return w.Write(p) }
)

const zipEntryName = "message.txt"

// A compressed message is stored behind a small frame:
//
//	0x00 'h' 'z' | compression (1) | uncompressed length (8, little-endian) | data
//
// Payloads without the frame are plain text.
var messageFrameMagic = [3]byte{0x00, 'h', 'z'}

const messageFrameSize = 12

func (c Compression) String() string {
	switch c {
	case CompNone:
		return "none"
	case CompZIP:
		return "zip"
	case CompZSTD:
		return "zstd"
	case CompLZ4:
		return "lz4"
	case CompBR:
		return "br"
	default:
		return "unknown"
	}
}

// ParseCompression maps a name returned by Compression.String back to its
// value.
func ParseCompression(s string) (Compression, error) {
	for _, c := range []Compression{CompNone, CompZIP, CompZSTD, CompLZ4, CompBR} {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown compression %q", ErrInvalidPayload, s)
}

func hasMessageFrame(payload []byte) bool {
	return len(payload) >= messageFrameSize && bytes.Equal(payload[:len(messageFrameMagic)], messageFrameMagic[:])
}

// packMessage turns msg into a chunk payload. CompNone stores msg as is,
// unless msg itself looks like a frame, in which case it is framed
// uncompressed so that it reads back unchanged.
func packMessage(comp Compression, msg []byte) ([]byte, error) {
	if comp == CompNone && !hasMessageFrame(msg) {
		return msg, nil
	}
	var compressed []byte
	var err error
	switch comp {
	case CompNone:
		compressed = msg
	case CompZIP:
		compressed, err = zipCompress(msg)
	case CompZSTD:
		compressed, err = zstdCompress(msg)
	case CompLZ4:
		compressed, err = lz4Compress(msg)
	case CompBR:
		compressed, err = brotliCompress(msg)
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrInvalidPayload, comp)
	}
	if err != nil {
		return nil, err
	}
	payload := make([]byte, messageFrameSize, messageFrameSize+len(compressed))
	copy(payload, messageFrameMagic[:])
	payload[3] = byte(comp)
	binary.LittleEndian.PutUint64(payload[4:messageFrameSize], uint64(len(msg)))
	return append(payload, compressed...), nil
}

// unpackMessage reverses packMessage. It enforces maxLen on the
// uncompressed size to prevent decompression bombs.
func unpackMessage(payload []byte, maxLen uint64) ([]byte, error) {
	if !hasMessageFrame(payload) {
		return payload, nil
	}
	comp := Compression(payload[3])
	n := binary.LittleEndian.Uint64(payload[4:messageFrameSize])
	if n > maxLen {
		return nil, fmt.Errorf("%w: message length %d exceeds limit", ErrLimitExceeded, n)
	}
	body := payload[messageFrameSize:]

	var out []byte
	var err error
	switch comp {
	case CompNone:
		out = body
	case CompZIP:
		out, err = zipDecompress(body, n)
	case CompZSTD:
		out, err = zstdDecompress(body, n)
	case CompLZ4:
		out, err = lz4Decompress(body, n)
	case CompBR:
		out, err = brotliDecompress(body, n)
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrInvalidPayload, comp)
	}
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) != n {
		return nil, fmt.Errorf("%w: decompressed length %d != expected %d", ErrInvalidPayload, len(out), n)
	}
	return out, nil
}

// zipCompress creates a ZIP archive containing in as zipEntryName.
func zipCompress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := zipCompressNamed(&buf, zipEntryName, in); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// zipCompressNamed creates a ZIP archive with a single entry.
func zipCompressNamed(w io.Writer, name string, in []byte) error {
	zw := zip.NewWriter(w)
	entry, err := zipCreate(zw, name)
	if err != nil {
		_ = zipClose(zw)
		return err
	}
	if _, err := entry.Write(in); err != nil {
		_ = zipClose(zw)
		return err
	}
	return zipClose(zw)
}

// zipDecompress extracts the single zipEntryName entry from a ZIP archive
// and checks that its size matches expected.
func zipDecompress(zipBytes []byte, expected uint64) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if len(zr.File) != 1 {
		return nil, fmt.Errorf("%w: zip must contain exactly one entry", ErrInvalidPayload)
	}
	zf := zr.File[0]
	if zf.Name != zipEntryName {
		return nil, fmt.Errorf("%w: zip entry name must be %s", ErrInvalidPayload, zipEntryName)
	}
	if zf.FileInfo().IsDir() {
		return nil, fmt.Errorf("%w: zip entry must be a file", ErrInvalidPayload)
	}
	if zf.UncompressedSize64 != expected {
		return nil, fmt.Errorf("%w: zip uncompressed size %d != expected %d", ErrInvalidPayload, zf.UncompressedSize64, expected)
	}
	rc, err := zipOpen(zf)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return readAll(io.LimitReader(rc, int64(expected)))
}

// zstdCompress compresses in using the Zstandard algorithm.
func zstdCompress(in []byte) ([]byte, error) {
	enc, err := newZstdWriter()
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(in, nil), nil
}

// zstdDecompress streams the frame through a LimitReader so a lying
// length prefix cannot force a large allocation.
func zstdDecompress(in []byte, expected uint64) ([]byte, error) {
	dec, err := newZstdReader(bytes.NewReader(in))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	b, err := readAll(io.LimitReader(dec, int64(expected)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if uint64(len(b)) > expected {
		return nil, fmt.Errorf("%w: zstd expanded beyond expected size", ErrInvalidPayload)
	}
	return b, nil
}

// lz4Compress compresses in using the LZ4 frame format.
func lz4Compress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := lz4CompressTo(&buf, in); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func lz4CompressTo(w io.Writer, in []byte) error {
	zw := lz4.NewWriter(w)
	if _, err := zw.Write(in); err != nil {
		_ = lz4Close(zw)
		return err
	}
	return lz4Close(zw)
}

func lz4Decompress(in []byte, expected uint64) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(in))
	b, err := readAll(io.LimitReader(r, int64(expected)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if uint64(len(b)) > expected {
		return nil, fmt.Errorf("%w: lz4 expanded beyond expected size", ErrInvalidPayload)
	}
	return b, nil
}

// brotliCompress compresses in using the Brotli algorithm.
func brotliCompress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := brotliCompressTo(&buf, in); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func brotliCompressTo(w io.Writer, in []byte) error {
	bw := brotli.NewWriter(w)
	if _, err := brotliWrite(bw, in); err != nil {
		_ = brotliClose(bw)
		return err
	}
	return brotliClose(bw)
}

func brotliDecompress(in []byte, expected uint64) ([]byte, error) {
	r := brotli.NewReader(bytes.NewReader(in))
	b, err := readAll(io.LimitReader(r, int64(expected)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if uint64(len(b)) > expected {
		return nil, fmt.Errorf("%w: brotli expanded beyond expected size", ErrInvalidPayload)
	}
	return b, nil
}
