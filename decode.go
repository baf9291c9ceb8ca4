package hidepng

import "fmt"

// Decode returns the message stored in every chunk of type ct, in file
// order.
//
// The zero ChunkType selects DefaultChunkType. Decode returns
// ErrChunkTypeNotFound when the file has no such chunk, ErrInvalidText when
// a payload is not UTF-8, and any error Parse would return for file.
// Compressed payloads written with WithCompression are expanded, subject
// to Limits.MaxMessageLen.
func Decode(file []byte, ct ChunkType, opts ...ReadOption) ([]string, error) {
	cfg := newReadConfig(opts)
	ct = ct.orDefault()
	if err := validateChunkType(ct); err != nil {
		return nil, err
	}
	p, err := parse(file, cfg.limits)
	if err != nil {
		return nil, err
	}
	return p.messages(ct, cfg.limits)
}

func (p *PNG) messages(ct ChunkType, limits Limits) ([]string, error) {
	chunks := p.ChunksByType(ct)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrChunkTypeNotFound, ct)
	}
	msgs := make([]string, 0, len(chunks))
	for i, c := range chunks {
		b, err := unpackMessage(c.data, limits.MaxMessageLen)
		if err != nil {
			return nil, fmt.Errorf("%s chunk %d: %w", ct, i, err)
		}
		if err := validateText(b); err != nil {
			return nil, fmt.Errorf("%w: %s chunk %d", err, ct, i)
		}
		msgs = append(msgs, string(b))
	}
	return msgs, nil
}
