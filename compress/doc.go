// Package compress provides compression and decompression codecs for bibo
// bitmap payloads.
//
// Bibo applies a two-stage strategy: the encoding package first exploits
// structure in the boolean sequence (run-length or bit packing), then this
// package optionally squeezes the encoded payload with a general-purpose
// algorithm. Four codecs are supported:
//
//   - None: no compression (fastest, largest)
//   - Zstd: best compression ratio, moderate speed
//   - S2: balanced compression and speed
//   - LZ4: fast decompression, moderate compression
//
// The Zstd codec uses the pure-Go klauspost/compress implementation by
// default; building with the "gozstd" tag switches to the cgo-backed
// valyala/gozstd bindings.
//
// Codecs are selected with a format.CompressionType through CreateCodec or
// GetCodec; the chosen type is recorded in the bitmap blob header so the
// decoder can pick the matching codec.
package compress
