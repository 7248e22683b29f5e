// Package bibo provides a compact binary format for storing boolean bitmap
// data.
//
// Bibo encodes boolean sequences with a run-length / bit-packed hybrid codec:
// long uniform runs are stored as a repetition count plus the repeated value,
// and short or mixed stretches are stored as bit-packed literals. The encoded
// payload can optionally be compressed (Zstd, S2, LZ4) and is framed in a
// checksummed blob with a fixed header.
//
// # Core Features
//
//   - Hybrid RLE encoding with byte-aligned run headers for fast decoding
//   - Plain bit-packed encoding for dense bitmaps needing random access
//   - Optional compression (None, Zstd, S2, LZ4)
//   - Built-in xxHash64 checksums for data integrity
//   - Sequential readers with O(1) skip over repeated runs
//
// # Basic Usage
//
// Encoding a bitmap:
//
//	import "github.com/arloliu/bibo"
//
//	encoder, _ := bibo.NewBitmapEncoder()
//	encoder.WriteRun(true, 100)
//	encoder.WriteRun(false, 100)
//	bitmap, _ := encoder.Finish()
//	data := bitmap.Bytes()
//
// Decoding:
//
//	bitmap, _ := bibo.Decode(data)
//	for v := range bitmap.All() {
//	    fmt.Println(v)
//	}
//
// Skipping with a sequential reader:
//
//	reader := bitmap.Reader()
//	trues := reader.Skip(50) // number of true values among the first 50
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the blob
// package, simplifying the most common use cases. For fine-grained control
// over the payload codecs, use the encoding and blob packages directly.
package bibo

import (
	"github.com/arloliu/bibo/blob"
)

// NewBitmapEncoder creates a new bitmap blob encoder with custom options.
//
// Available options:
//   - blob.WithLittleEndian() / blob.WithBigEndian()
//   - blob.WithEncoding(format.TypeRLE|TypeRaw)
//   - blob.WithCompression(format.CompressionNone|Zstd|S2|LZ4)
//
// Returns an error if the configuration is invalid.
func NewBitmapEncoder(opts ...blob.BitmapEncoderOption) (*blob.BitmapEncoder, error) {
	return blob.NewBitmapEncoder(opts...)
}

// Encode encodes a boolean slice into a serialized bitmap blob using the
// given options.
func Encode(values []bool, opts ...blob.BitmapEncoderOption) ([]byte, error) {
	encoder, err := blob.NewBitmapEncoder(opts...)
	if err != nil {
		return nil, err
	}

	encoder.WriteSlice(values)
	bitmap, err := encoder.Finish()
	if err != nil {
		return nil, err
	}

	return bitmap.Bytes(), nil
}

// Decode parses and validates a serialized bitmap blob.
func Decode(data []byte) (blob.Bitmap, error) {
	return blob.DecodeBitmap(data)
}
