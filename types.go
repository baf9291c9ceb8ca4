package hidepng

import "fmt"

// Signature is the 8-byte PNG file signature.
var Signature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

const (
	signatureSize   = 8
	chunkHeaderSize = 8 // length + type
	chunkCRCSize    = 4
	chunkOverhead   = chunkHeaderSize + chunkCRCSize
)

// ChunkType is the 4-byte ASCII tag of a PNG chunk. The case of each byte
// carries one property bit (see the Is* methods).
//
// Values obtained from ParseChunkType or ChunkTypeFromBytes are always
// valid. A ChunkType built by conversion may not be; IsValid reports it.
type ChunkType [4]byte

var (
	// DefaultChunkType is used by Encode, Decode and Remove when the caller
	// passes the zero ChunkType. It is ancillary, private and safe to copy.
	DefaultChunkType = ChunkType{'r', 'u', 'S', 't'}

	// TrailerChunkType marks the end of a PNG datastream.
	TrailerChunkType = ChunkType{'I', 'E', 'N', 'D'}
)

type Compression uint8

const (
	CompNone Compression = 0x0
	CompZIP  Compression = 0x1
	CompZSTD Compression = 0x2
	CompLZ4  Compression = 0x3
	CompBR   Compression = 0x4
)

// ChunkTypeFromBytes returns b as a ChunkType. It fails with
// ErrInvalidCharacterSet if a byte is not an ASCII letter and with
// ErrInvalidReservedBit if the third byte is lowercase.
func ChunkTypeFromBytes(b [4]byte) (ChunkType, error) {
	ct := ChunkType(b)
	if err := validateChunkType(ct); err != nil {
		return ChunkType{}, err
	}
	return ct, nil
}

// ParseChunkType parses a 4-character tag such as "ruSt".
func ParseChunkType(s string) (ChunkType, error) {
	if len(s) != len(ChunkType{}) {
		return ChunkType{}, fmt.Errorf("%w: chunk type %q has %d bytes, want 4", ErrInvalidSize, s, len(s))
	}
	var b [4]byte
	copy(b[:], s)
	return ChunkTypeFromBytes(b)
}

func (ct ChunkType) Bytes() [4]byte { return ct }

func (ct ChunkType) String() string { return string(ct[:]) }

// IsValid reports whether every byte is an ASCII letter and the reserved
// bit is unset.
func (ct ChunkType) IsValid() bool {
	return validateChunkType(ct) == nil
}

// IsCritical reports whether the chunk is critical (first byte uppercase).
// Ancillary chunks have a lowercase first byte.
func (ct ChunkType) IsCritical() bool { return isUpper(ct[0]) }

// IsPublic reports whether the chunk is part of the public PNG registry.
func (ct ChunkType) IsPublic() bool { return isUpper(ct[1]) }

func (ct ChunkType) IsReservedBitValid() bool { return isUpper(ct[2]) }

// IsSafeToCopy reports whether editors that do not recognise the chunk may
// copy it into a modified file.
func (ct ChunkType) IsSafeToCopy() bool { return isLower(ct[3]) }

func (ct ChunkType) isZero() bool { return ct == ChunkType{} }

// orDefault returns DefaultChunkType for the zero value.
func (ct ChunkType) orDefault() ChunkType {
	if ct.isZero() {
		return DefaultChunkType
	}
	return ct
}

// Set implements flag.Value.
func (ct *ChunkType) Set(s string) error {
	v, err := ParseChunkType(s)
	if err != nil {
		return err
	}
	*ct = v
	return nil
}

// Type implements pflag.Value.
func (ct *ChunkType) Type() string { return "chunkType" }

func (ct ChunkType) MarshalText() ([]byte, error) {
	return []byte(ct.String()), nil
}

func (ct *ChunkType) UnmarshalText(b []byte) error {
	return ct.Set(string(b))
}

func isUpper(b byte) bool  { return b >= 'A' && b <= 'Z' }
func isLower(b byte) bool  { return b >= 'a' && b <= 'z' }
func isLetter(b byte) bool { return isUpper(b) || isLower(b) }
