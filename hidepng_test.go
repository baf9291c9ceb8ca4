package hidepng

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"io"
	"reflect"
	"strings"
	"testing"
)

// samplePNG returns a small image encoded by image/png: IHDR, IDAT, IEND.
func samplePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for i := range img.Pix {
		img.Pix[i] = byte(i * 7)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func mustChunkType(t *testing.T, s string) ChunkType {
	t.Helper()
	ct, err := ParseChunkType(s)
	if err != nil {
		t.Fatalf("ParseChunkType(%q): %v", s, err)
	}
	return ct
}

func chunkTypes(p *PNG) []string {
	var out []string
	for _, c := range p.Chunks() {
		out = append(out, c.Type().String())
	}
	return out
}

type failingWriter struct {
	n int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n <= 0 {
		return 0, io.ErrClosedPipe
	}
	if len(p) > w.n {
		n := w.n
		w.n = 0
		return n, io.ErrShortWrite
	}
	w.n -= len(p)
	return len(p), nil
}

func TestEncodeDecode_DefaultChunkType(t *testing.T) {
	out, err := Encode(samplePNG(t), ChunkType{}, "secret message 1")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(out, DefaultChunkType)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if want := []string{"secret message 1"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}

	// The zero value selects the default on the way out as well.
	got, err = Decode(out, ChunkType{})
	if err != nil || len(got) != 1 {
		t.Fatalf("Decode zero type: %q, %v", got, err)
	}
}

func TestEncodeDecode_CustomChunkType(t *testing.T) {
	ct := mustChunkType(t, "TXTI")
	out, err := Encode(samplePNG(t), ct, "secret message 1")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(out, ct)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if want := []string{"secret message 1"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}

	_, err = Decode(out, DefaultChunkType)
	if !errors.Is(err, ErrChunkTypeNotFound) {
		t.Fatalf("expected ErrChunkTypeNotFound, got %v", err)
	}
}

func TestEncode_InvalidReservedBit(t *testing.T) {
	out, err := Encode(samplePNG(t), ChunkType{'T', 'X', 't', 'I'}, "secret message 1")
	if !errors.Is(err, ErrInvalidReservedBit) {
		t.Fatalf("expected ErrInvalidReservedBit, got %v", err)
	}
	if !strings.Contains(err.Error(), "TXtI") {
		t.Fatalf("error should name the chunk type: %v", err)
	}
	if out != nil {
		t.Fatal("expected no output")
	}
}

func TestEncode_InvalidCharacterSet(t *testing.T) {
	_, err := Encode(samplePNG(t), ChunkType{'R', 'u', '1', 't'}, "x")
	if !errors.Is(err, ErrInvalidCharacterSet) {
		t.Fatalf("expected ErrInvalidCharacterSet, got %v", err)
	}
}

func TestEncode_TwoMessagesInOrder(t *testing.T) {
	out, err := Encode(samplePNG(t), DefaultChunkType, "secret message 1")
	if err != nil {
		t.Fatal(err)
	}
	out, err = Encode(out, DefaultChunkType, "secret message 2")
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(out, DefaultChunkType)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"secret message 1", "secret message 2"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeRemoveDecode(t *testing.T) {
	in := samplePNG(t)
	out, err := Encode(in, DefaultChunkType, "secret message 1")
	if err != nil {
		t.Fatal(err)
	}
	cleaned, err := Remove(out, DefaultChunkType)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !bytes.Equal(cleaned, in) {
		t.Fatal("encode then remove should restore the original bytes")
	}
	if _, err := Decode(cleaned, DefaultChunkType); !errors.Is(err, ErrChunkTypeNotFound) {
		t.Fatalf("expected ErrChunkTypeNotFound, got %v", err)
	}
}

func TestEncodeWithAppend_RemoveRestoresOriginal(t *testing.T) {
	in := samplePNG(t)
	out, err := Encode(in, DefaultChunkType, "tail", WithAppend(true))
	if err != nil {
		t.Fatal(err)
	}
	p, err := Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	types := chunkTypes(p)
	if types[len(types)-1] != "ruSt" {
		t.Fatalf("expected appended chunk last, got %v", types)
	}
	cleaned, err := Remove(out, DefaultChunkType)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(cleaned, in) {
		t.Fatal("expected original bytes")
	}
}

func TestEncode_InsertsBeforeTrailer(t *testing.T) {
	out, err := Encode(samplePNG(t), DefaultChunkType, "hello")
	if err != nil {
		t.Fatal(err)
	}
	p, err := Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	types := chunkTypes(p)
	n := len(types)
	if types[n-1] != "IEND" || types[n-2] != "ruSt" {
		t.Fatalf("unexpected chunk order %v", types)
	}
}

func TestEncode_OutputStillDecodesAsImage(t *testing.T) {
	in := samplePNG(t)
	want, err := png.Decode(bytes.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	out, err := Encode(in, DefaultChunkType, "hidden", WithCompression(CompZSTD))
	if err != nil {
		t.Fatal(err)
	}
	got, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("image/png rejected encoded file: %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatal("pixel data changed")
	}
}

func TestEncodeDecodeRoundTrip_AllCompressions(t *testing.T) {
	msg := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 50)
	for _, comp := range []Compression{CompNone, CompZIP, CompZSTD, CompLZ4, CompBR} {
		t.Run("comp="+comp.String(), func(t *testing.T) {
			out, err := Encode(samplePNG(t), DefaultChunkType, msg, WithCompression(comp))
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := Decode(out, DefaultChunkType)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if len(got) != 1 || got[0] != msg {
				t.Fatal("message mismatch")
			}
		})
	}
}

func TestEncode_EmptyMessage(t *testing.T) {
	out, err := Encode(samplePNG(t), DefaultChunkType, "")
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(out, DefaultChunkType)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "" {
		t.Fatalf("got %q", got)
	}
}

func TestEncode_MessageResemblingFrame(t *testing.T) {
	msg := "\x00hz\x02 not actually compressed at all"
	out, err := Encode(samplePNG(t), DefaultChunkType, msg)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(out, DefaultChunkType)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != msg {
		t.Fatalf("got %q", got)
	}
}

func TestEncode_InvalidUTF8(t *testing.T) {
	_, err := Encode(samplePNG(t), DefaultChunkType, "bad \xff text")
	if !errors.Is(err, ErrInvalidText) {
		t.Fatalf("expected ErrInvalidText, got %v", err)
	}
}

func TestEncode_NotPNG(t *testing.T) {
	_, err := Encode([]byte("GIF89a not a png at all"), DefaultChunkType, "x")
	if !errors.Is(err, ErrInvalidPngSignature) {
		t.Fatalf("expected ErrInvalidPngSignature, got %v", err)
	}
}

func TestEncode_UnknownCompression(t *testing.T) {
	_, err := Encode(samplePNG(t), DefaultChunkType, "x", WithCompression(Compression(42)))
	if !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
}

func TestEncode_Limits(t *testing.T) {
	in := samplePNG(t)
	if _, err := Encode(in, DefaultChunkType, "too long", WithWriteLimits(Limits{MaxMessageLen: 3})); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("message limit: got %v", err)
	}
	big := strings.Repeat("a", 100)
	if _, err := Encode(in, DefaultChunkType, big, WithWriteLimits(Limits{MaxChunkLen: 99})); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("chunk limit: got %v", err)
	}
	if _, err := Encode(in, DefaultChunkType, big, WithWriteLimits(Limits{MaxFileSize: uint64(len(in)) + 10})); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("file limit: got %v", err)
	}
}

func TestEncode_DoesNotModifyInput(t *testing.T) {
	in := samplePNG(t)
	orig := bytes.Clone(in)
	if _, err := Encode(in, DefaultChunkType, "x"); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(in, orig) {
		t.Fatal("input modified")
	}
}

func TestDecode_InvalidTextPayload(t *testing.T) {
	p, err := Parse(samplePNG(t))
	if err != nil {
		t.Fatal(err)
	}
	p.InsertChunk(NewChunk(DefaultChunkType, []byte{0xff, 0xfe}))
	_, err = Decode(p.Bytes(), DefaultChunkType)
	if !errors.Is(err, ErrInvalidText) {
		t.Fatalf("expected ErrInvalidText, got %v", err)
	}
}

func TestDecode_CompressedMessageOverLimit(t *testing.T) {
	msg := strings.Repeat("z", 1000)
	out, err := Encode(samplePNG(t), DefaultChunkType, msg, WithCompression(CompZSTD))
	if err != nil {
		t.Fatal(err)
	}
	_, err = Decode(out, DefaultChunkType, WithReadLimits(Limits{MaxMessageLen: 10}))
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}
}

func TestDecode_InvalidChunkType(t *testing.T) {
	_, err := Decode(samplePNG(t), ChunkType{'a', 'b', 'c', 'd'})
	if !errors.Is(err, ErrInvalidReservedBit) {
		t.Fatalf("expected ErrInvalidReservedBit, got %v", err)
	}
}

func TestDecode_CorruptFile(t *testing.T) {
	out, err := Encode(samplePNG(t), DefaultChunkType, "x")
	if err != nil {
		t.Fatal(err)
	}
	out[len(out)-20] ^= 0x01
	if _, err := Decode(out, DefaultChunkType); !errors.Is(err, ErrCrcMismatch) {
		t.Fatalf("expected ErrCrcMismatch, got %v", err)
	}
}

func TestRemove_FirstMatchOnly(t *testing.T) {
	out, err := Encode(samplePNG(t), DefaultChunkType, "one")
	if err != nil {
		t.Fatal(err)
	}
	out, err = Encode(out, DefaultChunkType, "two")
	if err != nil {
		t.Fatal(err)
	}
	out, err = Remove(out, DefaultChunkType)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(out, DefaultChunkType)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"two"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRemove_NotFound(t *testing.T) {
	_, err := Remove(samplePNG(t), DefaultChunkType)
	if !errors.Is(err, ErrChunkTypeNotFound) {
		t.Fatalf("expected ErrChunkTypeNotFound, got %v", err)
	}
	_, err = Remove(samplePNG(t), ChunkType{'a', 'b', 'c', 'd'})
	if !errors.Is(err, ErrInvalidReservedBit) {
		t.Fatalf("expected ErrInvalidReservedBit, got %v", err)
	}
	_, err = Remove([]byte("nope"), DefaultChunkType)
	if !errors.Is(err, ErrInputTooSmall) {
		t.Fatalf("expected ErrInputTooSmall, got %v", err)
	}
}

func TestRemoveAll(t *testing.T) {
	in := samplePNG(t)
	out := in
	for _, m := range []string{"a", "b", "c"} {
		var err error
		out, err = Encode(out, DefaultChunkType, m)
		if err != nil {
			t.Fatal(err)
		}
	}
	cleaned, err := RemoveAll(out, DefaultChunkType)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(cleaned, in) {
		t.Fatal("expected original bytes")
	}
	if _, err := RemoveAll(cleaned, DefaultChunkType); !errors.Is(err, ErrChunkTypeNotFound) {
		t.Fatalf("expected ErrChunkTypeNotFound, got %v", err)
	}
}
