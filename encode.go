package hidepng

import "fmt"

// Encode stores msg in a new chunk of type ct inside the PNG file and
// returns the re-encoded file. The input slice is not modified.
//
// The zero ChunkType selects DefaultChunkType. An invalid type fails with
// ErrInvalidCharacterSet or ErrInvalidReservedBit before file is parsed.
//
// By default, Encode will:
//   - Store msg uncompressed, so any PNG tool can read it
//   - Insert the new chunk immediately before the IEND trailer
//
// Use WriteOption functions to customize this behavior:
//   - WithCompression(comp): compress msg with ZIP, Zstandard, LZ4 or Brotli
//   - WithAppend(true): add the chunk after the last chunk instead
//   - WithWriteLimits(l): set custom size limits
func Encode(file []byte, ct ChunkType, msg string, opts ...WriteOption) ([]byte, error) {
	cfg := newWriteConfig(opts)
	ct = ct.orDefault()
	if err := validateChunkType(ct); err != nil {
		return nil, err
	}
	if err := validateText([]byte(msg)); err != nil {
		return nil, err
	}
	if uint64(len(msg)) > cfg.limits.MaxMessageLen {
		return nil, fmt.Errorf("%w: message length %d exceeds limit", ErrLimitExceeded, len(msg))
	}

	p, err := parse(file, cfg.limits)
	if err != nil {
		return nil, err
	}
	payload, err := packMessage(cfg.compression, []byte(msg))
	if err != nil {
		return nil, err
	}
	if err := validateChunkLen(uint64(len(payload)), cfg.limits); err != nil {
		return nil, err
	}

	c := NewChunk(ct, payload)
	if cfg.appendOnly {
		p.AppendChunk(c)
	} else {
		p.InsertChunk(c)
	}

	out := p.Bytes()
	if uint64(len(out)) > cfg.limits.MaxFileSize {
		return nil, fmt.Errorf("%w: encoded file larger than %d bytes", ErrLimitExceeded, cfg.limits.MaxFileSize)
	}
	return out, nil
}
