package hidepng

type Limits struct {
	MaxFileSize   uint64 // whole PNG datastream, signature included
	MaxChunkLen   uint32 // data length of a single chunk
	MaxChunks     int
	MaxMessageLen uint64 // message bytes after decompression
}

func defaultLimits() Limits {
	return Limits{
		MaxFileSize:   256 << 20, // 256 MiB
		MaxChunkLen:   1<<31 - 1, // PNG length fields are limited to 2^31-1
		MaxChunks:     1_000_000,
		MaxMessageLen: 64 << 20, // 64 MiB
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxFileSize == 0 {
		l.MaxFileSize = d.MaxFileSize
	}
	if l.MaxChunkLen == 0 {
		l.MaxChunkLen = d.MaxChunkLen
	}
	if l.MaxChunks == 0 {
		l.MaxChunks = d.MaxChunks
	}
	if l.MaxMessageLen == 0 {
		l.MaxMessageLen = d.MaxMessageLen
	}
	return l
}
