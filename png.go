package hidepng

import (
	"bytes"
	"fmt"
	"io"
	"slices"
)

// PNG is a parsed PNG datastream: the signature followed by an ordered list
// of chunks. Chunk order is file order.
//
// A PNG is not safe for concurrent use.
type PNG struct {
	chunks []Chunk
}

// NewPNG returns a PNG holding chunks. The slice is retained.
func NewPNG(chunks []Chunk) *PNG {
	return &PNG{chunks: chunks}
}

// Parse decodes a whole PNG datastream held in b.
//
// Parse returns ErrInputTooSmall if b cannot hold the signature,
// ErrInvalidPngSignature if the signature is wrong, and otherwise the first
// chunk error encountered. A file with any corrupt chunk is rejected as a
// whole.
func Parse(b []byte, opts ...ReadOption) (*PNG, error) {
	cfg := newReadConfig(opts)
	return parse(b, cfg.limits)
}

// Read reads r to the end and parses the result.
func Read(r io.Reader, opts ...ReadOption) (*PNG, error) {
	cfg := newReadConfig(opts)
	b, err := readAll(io.LimitReader(r, int64(cfg.limits.MaxFileSize)+1))
	if err != nil {
		return nil, err
	}
	return parse(b, cfg.limits)
}

func parse(b []byte, limits Limits) (*PNG, error) {
	if uint64(len(b)) > limits.MaxFileSize {
		return nil, fmt.Errorf("%w: file larger than %d bytes", ErrLimitExceeded, limits.MaxFileSize)
	}
	if len(b) < signatureSize {
		return nil, fmt.Errorf("%w: signature needs %d bytes, have %d", ErrInputTooSmall, signatureSize, len(b))
	}
	if !bytes.Equal(b[:signatureSize], Signature[:]) {
		return nil, ErrInvalidPngSignature
	}

	p := &PNG{}
	for off := signatureSize; off < len(b); {
		if len(p.chunks) >= limits.MaxChunks {
			return nil, fmt.Errorf("%w: more than %d chunks", ErrLimitExceeded, limits.MaxChunks)
		}
		c, n, err := readChunk(b[off:], limits)
		if err != nil {
			return nil, fmt.Errorf("chunk %d at offset %d: %w", len(p.chunks), off, err)
		}
		p.chunks = append(p.chunks, c)
		off += n
	}
	return p, nil
}

// Chunks returns a copy of the chunk list.
func (p *PNG) Chunks() []Chunk { return slices.Clone(p.chunks) }

func (p *PNG) Len() int { return len(p.chunks) }

// ChunksByType returns every chunk of type ct in file order. The result is
// empty when there is none.
func (p *PNG) ChunksByType(ct ChunkType) []Chunk {
	var out []Chunk
	for _, c := range p.chunks {
		if c.typ == ct {
			out = append(out, c)
		}
	}
	return out
}

// ChunkByType returns the first chunk of type ct.
func (p *PNG) ChunkByType(ct ChunkType) (Chunk, bool) {
	i := p.index(ct)
	if i < 0 {
		return Chunk{}, false
	}
	return p.chunks[i], true
}

// AppendChunk adds c after the last chunk.
func (p *PNG) AppendChunk(c Chunk) {
	p.chunks = append(p.chunks, c)
}

// InsertChunk adds c immediately before the last chunk, which in a
// well-formed file is the IEND trailer. On an empty list it appends.
func (p *PNG) InsertChunk(c Chunk) {
	if len(p.chunks) == 0 {
		p.chunks = append(p.chunks, c)
		return
	}
	p.chunks = slices.Insert(p.chunks, len(p.chunks)-1, c)
}

// RemoveChunk removes the first chunk of type ct and returns it. Later
// chunks of the same type are kept. If there is no such chunk the PNG is
// left unchanged and ErrChunkTypeNotFound is returned.
func (p *PNG) RemoveChunk(ct ChunkType) (Chunk, error) {
	i := p.index(ct)
	if i < 0 {
		return Chunk{}, fmt.Errorf("%w: %s", ErrChunkTypeNotFound, ct)
	}
	c := p.chunks[i]
	p.chunks = slices.Delete(p.chunks, i, i+1)
	return c, nil
}

// RemoveChunks removes every chunk of type ct and reports how many were
// removed.
func (p *PNG) RemoveChunks(ct ChunkType) int {
	before := len(p.chunks)
	p.chunks = slices.DeleteFunc(p.chunks, func(c Chunk) bool { return c.typ == ct })
	return before - len(p.chunks)
}

func (p *PNG) index(ct ChunkType) int {
	return slices.IndexFunc(p.chunks, func(c Chunk) bool { return c.typ == ct })
}

// Bytes encodes the signature followed by every chunk in order.
func (p *PNG) Bytes() []byte {
	size := signatureSize
	for _, c := range p.chunks {
		size += chunkOverhead + len(c.data)
	}
	var buf bytes.Buffer
	buf.Grow(size)
	_, _ = p.WriteTo(&buf)
	return buf.Bytes()
}

// WriteTo writes the encoded datastream to w.
func (p *PNG) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(Signature[:])
	total := int64(n)
	if err != nil {
		return total, err
	}
	for _, c := range p.chunks {
		m, err := c.WriteTo(w)
		total += m
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
