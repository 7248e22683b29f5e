package blob

import (
	"fmt"

	"github.com/arloliu/bibo/compress"
	"github.com/arloliu/bibo/errs"
	"github.com/arloliu/bibo/format"
	"github.com/arloliu/bibo/internal/hash"
	"github.com/arloliu/bibo/section"
)

// DecodeBitmap parses and validates a serialized bitmap blob.
//
// The header magic, encoding and compression enums, payload size and payload
// checksum are all verified before the payload is decompressed, so corrupted
// or foreign bytes are rejected with an error and never reach the panicking
// payload decoders.
//
// The returned Bitmap retains data; the caller must not modify it.
func DecodeBitmap(data []byte) (Bitmap, error) {
	var header section.BitmapHeader
	if err := header.Parse(data); err != nil {
		return Bitmap{}, err
	}

	payload := data[section.HeaderSize:]
	if len(payload) != int(header.PayloadSize) {
		return Bitmap{}, errs.ErrInvalidPayloadSize
	}

	if hash.Checksum(payload) != header.Checksum {
		return Bitmap{}, errs.ErrChecksumMismatch
	}

	codec, err := compress.GetCodec(header.Flag.Compression())
	if err != nil {
		return Bitmap{}, err
	}

	decoded, err := codec.Decompress(payload)
	if err != nil {
		return Bitmap{}, fmt.Errorf("decompress bitmap payload: %w", err)
	}

	if header.Flag.Encoding() == format.TypeRaw && len(decoded) < (int(header.ValueCount)+7)/8 {
		return Bitmap{}, errs.ErrInvalidPayloadSize
	}

	return Bitmap{
		header:  header,
		data:    data,
		payload: decoded,
	}, nil
}
