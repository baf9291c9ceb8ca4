// Package hidepng hides text messages inside PNG files by storing them in
// their own chunks. Pixel data is never decoded or rewritten.
//
// # File Format Overview
//
// A PNG file consists of:
//   - The 8-byte signature 89 50 4E 47 0D 0A 1A 0A
//   - A sequence of chunks, the last of which is the IEND trailer
//
// Each chunk is laid out as
//
//	length (4, big-endian) | type (4) | data (length) | CRC-32 of type+data (4)
//
// The case of each type letter is a property bit: an uppercase first letter
// marks a critical chunk, an uppercase second letter a public one, the
// third letter must be uppercase, and a lowercase fourth letter marks the
// chunk as safe to copy. Messages go into ancillary, private chunks
// (DefaultChunkType is "ruSt") which conforming readers skip.
//
// # Basic Usage
//
// To hide a message:
//
//	in, _ := os.ReadFile("cat.png")
//	out, err := hidepng.Encode(in, hidepng.DefaultChunkType, "secret message 1")
//	_ = os.WriteFile("cat.png", out, 0o644)
//
// To read it back:
//
//	msgs, err := hidepng.Decode(out, hidepng.DefaultChunkType)
//
// Lower-level access to the container is available through Parse, PNG and
// Chunk.
//
// # Integrity
//
// Every chunk's CRC is verified while parsing and a file with a single bad
// chunk is rejected as a whole. Size limits (see [Limits]) bound the file,
// each chunk, the chunk count and decompressed messages.
package hidepng
