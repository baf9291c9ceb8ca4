package hidepng

import "fmt"

// Remove deletes the first chunk of type ct from the PNG file and returns
// the re-encoded file. Later chunks of the same type are kept; call Remove
// again or use RemoveAll to drop them.
//
// The zero ChunkType selects DefaultChunkType. Remove returns
// ErrChunkTypeNotFound when there is nothing to remove.
func Remove(file []byte, ct ChunkType, opts ...ReadOption) ([]byte, error) {
	p, ct, err := parseFor(file, ct, opts)
	if err != nil {
		return nil, err
	}
	if _, err := p.RemoveChunk(ct); err != nil {
		return nil, err
	}
	return p.Bytes(), nil
}

// RemoveAll deletes every chunk of type ct. It returns ErrChunkTypeNotFound
// when there is none.
func RemoveAll(file []byte, ct ChunkType, opts ...ReadOption) ([]byte, error) {
	p, ct, err := parseFor(file, ct, opts)
	if err != nil {
		return nil, err
	}
	if p.RemoveChunks(ct) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrChunkTypeNotFound, ct)
	}
	return p.Bytes(), nil
}

func parseFor(file []byte, ct ChunkType, opts []ReadOption) (*PNG, ChunkType, error) {
	cfg := newReadConfig(opts)
	ct = ct.orDefault()
	if err := validateChunkType(ct); err != nil {
		return nil, ct, err
	}
	p, err := parse(file, cfg.limits)
	if err != nil {
		return nil, ct, err
	}
	return p, ct, nil
}
