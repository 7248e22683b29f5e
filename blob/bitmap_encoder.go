package blob

import (
	"fmt"

	"github.com/arloliu/bibo/compress"
	"github.com/arloliu/bibo/encoding"
	"github.com/arloliu/bibo/errs"
	"github.com/arloliu/bibo/format"
	"github.com/arloliu/bibo/internal/hash"
	"github.com/arloliu/bibo/section"
)

// boolEncoder is the contract both payload codecs satisfy beyond the generic
// columnar interface.
type boolEncoder interface {
	encoding.ColumnarEncoder[bool]
	WriteRun(value bool, runLength int)
	Flush() int
}

// BitmapEncoder encodes a boolean sequence into the bitmap blob format.
//
// Values are streamed in with Write, WriteRun or WriteSlice and the blob is
// assembled by Finish, which flushes the payload codec, applies the
// configured compression, computes the payload checksum and prepends the
// header.
//
// Note: The BitmapEncoder is NOT thread-safe.
//
// Note: The BitmapEncoder is NOT reusable. After calling Finish, a new
// encoder must be created for further encoding.
type BitmapEncoder struct {
	header   *section.BitmapHeader
	enc      boolEncoder
	codec    compress.Codec
	setCount int
	finished bool
}

// NewBitmapEncoder creates a new BitmapEncoder.
//
// Parameters:
//   - opts: Optional configuration (endianness, encoding, compression)
//
// Returns:
//   - *BitmapEncoder: The created encoder
//   - error: An error if the configuration is invalid
//
// Available options:
//   - WithLittleEndian() / WithBigEndian()
//   - WithEncoding(format.TypeRLE|TypeRaw)
//   - WithCompression(format.CompressionNone|Zstd|S2|LZ4)
func NewBitmapEncoder(opts ...BitmapEncoderOption) (*BitmapEncoder, error) {
	cfg := bitmapEncoderConfig{flag: section.NewBitmapFlag()}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	codec, err := compress.CreateCodec(cfg.flag.Compression(), "bitmap payload")
	if err != nil {
		return nil, err
	}

	var enc boolEncoder
	switch cfg.flag.Encoding() {
	case format.TypeRLE:
		enc = encoding.NewBoolRLEEncoder()
	case format.TypeRaw:
		enc = encoding.NewBoolRawEncoder()
	default:
		return nil, fmt.Errorf("invalid bitmap encoding: %s", cfg.flag.Encoding())
	}

	header := section.NewBitmapHeader()
	header.Flag = cfg.flag

	return &BitmapEncoder{
		header: header,
		enc:    enc,
		codec:  codec,
	}, nil
}

// Write appends a single boolean value.
func (e *BitmapEncoder) Write(value bool) {
	if e.finished {
		panic("encoder already finished - cannot write values after Finish()")
	}

	if value {
		e.setCount++
	}
	e.enc.Write(value)
}

// WriteRun appends runLength copies of value.
func (e *BitmapEncoder) WriteRun(value bool, runLength int) {
	if e.finished {
		panic("encoder already finished - cannot write values after Finish()")
	}

	if value {
		e.setCount += runLength
	}
	e.enc.WriteRun(value, runLength)
}

// WriteSlice appends a slice of boolean values.
func (e *BitmapEncoder) WriteSlice(values []bool) {
	if e.finished {
		panic("encoder already finished - cannot write values after Finish()")
	}

	for _, v := range values {
		if v {
			e.setCount++
		}
	}
	e.enc.WriteSlice(values)
}

// Len returns the number of values written so far.
func (e *BitmapEncoder) Len() int {
	return e.enc.Len()
}

// Finish flushes the payload codec, compresses the payload, and assembles
// the final blob.
//
// The encoder is unusable afterwards; its pooled buffer is returned. Calling
// Finish twice returns ErrEncoderFinished.
func (e *BitmapEncoder) Finish() (Bitmap, error) {
	if e.finished {
		return Bitmap{}, errs.ErrEncoderFinished
	}
	e.finished = true
	defer e.enc.Finish()

	e.enc.Flush()
	payload := e.enc.Bytes()

	compressed, err := e.codec.Compress(payload)
	if err != nil {
		return Bitmap{}, fmt.Errorf("compress bitmap payload: %w", err)
	}

	e.header.ValueCount = uint32(e.enc.Len())
	e.header.SetCount = uint32(e.setCount)
	e.header.PayloadSize = uint32(len(compressed))
	e.header.Checksum = hash.Checksum(compressed)

	data := make([]byte, 0, section.HeaderSize+len(compressed))
	data = append(data, e.header.Bytes()...)
	data = append(data, compressed...)

	// Keep the decoded payload out of the pooled buffer's lifetime.
	decoded := data[section.HeaderSize:]
	if e.header.Flag.Compression() != format.CompressionNone {
		decoded = append([]byte(nil), payload...)
	}

	return Bitmap{
		header:  *e.header,
		data:    data,
		payload: decoded,
	}, nil
}
