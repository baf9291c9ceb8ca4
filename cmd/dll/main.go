// Package main provides C-compatible exports for the hidepng library.
// Build with: go build -buildmode=c-shared -o hidepng.dll
package main

/*
#include <stdlib.h>
#include <stdint.h>

// Result structure for operations that return data
typedef struct {
    char* data;
    int   data_len;
    char* error;
} HidepngResult;
*/
import "C"

import (
	"encoding/json"
	"unsafe"

	"github.com/logicossoftware/go-hidepng"
)

func main() {}

// HidepngFreeResult frees memory allocated by other Hidepng functions.
// Must be called to avoid memory leaks.
//
//export HidepngFreeResult
func HidepngFreeResult(result C.HidepngResult) {
	if result.data != nil {
		C.free(unsafe.Pointer(result.data))
	}
	if result.error != nil {
		C.free(unsafe.Pointer(result.error))
	}
}

// HidepngFreeString frees a C string allocated by Go.
//
//export HidepngFreeString
func HidepngFreeString(s *C.char) {
	if s != nil {
		C.free(unsafe.Pointer(s))
	}
}

func makeResult(data []byte) C.HidepngResult {
	var result C.HidepngResult
	if len(data) > 0 {
		result.data = (*C.char)(C.CBytes(data))
		result.data_len = C.int(len(data))
	}
	return result
}

func makeError(err error) C.HidepngResult {
	var result C.HidepngResult
	result.error = C.CString(err.Error())
	return result
}

// chunkType converts an optional C string; NULL or "" selects the default.
func chunkType(s *C.char) (hidepng.ChunkType, error) {
	if s == nil {
		return hidepng.ChunkType{}, nil
	}
	str := C.GoString(s)
	if str == "" {
		return hidepng.ChunkType{}, nil
	}
	return hidepng.ParseChunkType(str)
}

// HidepngEncode stores a message in a new chunk of a PNG file.
// Parameters:
//   - data: pointer to PNG file bytes
//   - dataLen: length of the data
//   - chunkType: four-letter chunk type (NULL for "ruSt")
//   - message: UTF-8 message
//   - compression: compression algorithm (0=None, 1=ZIP, 2=ZSTD, 3=LZ4, 4=Brotli)
//
// Returns HidepngResult with the new PNG bytes or error. Call HidepngFreeResult when done.
//
//export HidepngEncode
func HidepngEncode(data *C.char, dataLen C.int, chunkTypeStr *C.char, message *C.char, compression C.uint8_t) C.HidepngResult {
	ct, err := chunkType(chunkTypeStr)
	if err != nil {
		return makeError(err)
	}
	goData := C.GoBytes(unsafe.Pointer(data), dataLen)
	out, err := hidepng.Encode(goData, ct, C.GoString(message),
		hidepng.WithCompression(hidepng.Compression(compression)))
	if err != nil {
		return makeError(err)
	}
	return makeResult(out)
}

// HidepngDecode returns every message stored under a chunk type as a JSON
// array of strings, in file order.
//
//export HidepngDecode
func HidepngDecode(data *C.char, dataLen C.int, chunkTypeStr *C.char) C.HidepngResult {
	ct, err := chunkType(chunkTypeStr)
	if err != nil {
		return makeError(err)
	}
	goData := C.GoBytes(unsafe.Pointer(data), dataLen)
	msgs, err := hidepng.Decode(goData, ct)
	if err != nil {
		return makeError(err)
	}
	jsonBytes, err := json.Marshal(msgs)
	if err != nil {
		return makeError(err)
	}
	return makeResult(jsonBytes)
}

// HidepngRemove removes the first chunk of a type, or every chunk of that
// type when all is non-zero.
//
//export HidepngRemove
func HidepngRemove(data *C.char, dataLen C.int, chunkTypeStr *C.char, all C.int) C.HidepngResult {
	ct, err := chunkType(chunkTypeStr)
	if err != nil {
		return makeError(err)
	}
	goData := C.GoBytes(unsafe.Pointer(data), dataLen)
	remove := hidepng.Remove
	if all != 0 {
		remove = hidepng.RemoveAll
	}
	out, err := remove(goData, ct)
	if err != nil {
		return makeError(err)
	}
	return makeResult(out)
}

// HidepngValidate checks the signature and every chunk CRC of a PNG file.
// Returns NULL on success, or an error message string on failure.
// Call HidepngFreeString on the result if non-NULL.
//
//export HidepngValidate
func HidepngValidate(data *C.char, dataLen C.int) *C.char {
	goData := C.GoBytes(unsafe.Pointer(data), dataLen)
	if _, err := hidepng.Parse(goData); err != nil {
		return C.CString(err.Error())
	}
	return nil
}

// HidepngChunkCount returns the number of chunks in a PNG file.
// Returns -1 on error.
//
//export HidepngChunkCount
func HidepngChunkCount(data *C.char, dataLen C.int) C.int {
	goData := C.GoBytes(unsafe.Pointer(data), dataLen)
	p, err := hidepng.Parse(goData)
	if err != nil {
		return -1
	}
	return C.int(p.Len())
}
