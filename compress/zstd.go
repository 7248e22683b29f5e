package compress

// ZstdCompressor provides Zstandard compression for bitmap payloads.
//
// Zstd trades some compression speed for the best ratio of the supported
// codecs, which suits cold storage and network transfer of bitmap blobs.
// Sparse raw bitmaps in particular compress very well.
//
// Two implementations are available: the default pure-Go
// klauspost/compress/zstd backend, and the cgo valyala/gozstd backend
// selected with the "gozstd" build tag.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
