package hidepng

import (
	"fmt"
	"unicode/utf8"
)

func validateChunkType(ct ChunkType) error {
	for _, b := range ct {
		if !isLetter(b) {
			return fmt.Errorf("%w: chunk type %q", ErrInvalidCharacterSet, ct.String())
		}
	}
	if !ct.IsReservedBitValid() {
		return fmt.Errorf("%w: chunk type `%s`", ErrInvalidReservedBit, ct.String())
	}
	return nil
}

func validateText(b []byte) error {
	if !utf8.Valid(b) {
		return ErrInvalidText
	}
	return nil
}

func validateChunkLen(n uint64, limits Limits) error {
	if n > uint64(limits.MaxChunkLen) {
		return fmt.Errorf("%w: chunk length %d exceeds %d", ErrLimitExceeded, n, limits.MaxChunkLen)
	}
	return nil
}
