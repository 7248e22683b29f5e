package encoding

import (
	"iter"

	"github.com/arloliu/bibo/bitstream"
	"github.com/arloliu/bibo/internal/pool"
)

// BoolRawEncoder bit-packs boolean values LSB-first with no run headers.
//
// Every value costs exactly one bit, so the encoded size is ceil(n/8) bytes
// regardless of the input. Use it when the sequence has no exploitable runs,
// or when fixed-offset random access matters more than size.
//
// Note: The BoolRawEncoder is NOT thread-safe.
type BoolRawEncoder struct {
	bw    *bitstream.Writer
	buf   *pool.ByteBuffer
	count int
}

var _ ColumnarEncoder[bool] = (*BoolRawEncoder)(nil)

// NewBoolRawEncoder creates a new bit-packing encoder for boolean values.
func NewBoolRawEncoder() *BoolRawEncoder {
	buf := pool.GetBitmapBuffer()

	return &BoolRawEncoder{
		bw:  bitstream.NewWriter(buf),
		buf: buf,
	}
}

// Write encodes a single boolean value as one bit.
func (e *BoolRawEncoder) Write(value bool) {
	if e.buf == nil {
		panic("encoder already finished - cannot write values after Finish()")
	}

	e.count++
	e.bw.PutBool(value)
}

// WriteRun encodes runLength copies of value.
func (e *BoolRawEncoder) WriteRun(value bool, runLength int) {
	if e.buf == nil {
		panic("encoder already finished - cannot write values after Finish()")
	}

	e.count += runLength
	for i := 0; i < runLength; i++ {
		e.bw.PutBool(value)
	}
}

// WriteSlice encodes a slice of boolean values.
func (e *BoolRawEncoder) WriteSlice(values []bool) {
	if e.buf == nil {
		panic("encoder already finished - cannot write values after Finish()")
	}

	e.count += len(values)
	for _, v := range values {
		e.bw.PutBool(v)
	}
}

// Flush pads the final partial byte and returns the total bytes written.
func (e *BoolRawEncoder) Flush() int {
	if e.buf == nil {
		panic("encoder already finished - cannot flush after Finish()")
	}

	return e.bw.Finish()
}

// Bytes returns the encoded byte slice.
// The slice is valid until the next call to Write, WriteSlice, or Reset.
func (e *BoolRawEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access buffer after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of values written to the encoder.
func (e *BoolRawEncoder) Len() int {
	if e.buf == nil {
		panic("encoder already finished - cannot access length after Finish()")
	}

	return e.count
}

// Size returns the number of bytes written to the internal buffer so far.
func (e *BoolRawEncoder) Size() int {
	if e.buf == nil {
		panic("encoder already finished - cannot access size after Finish()")
	}

	return e.buf.Len()
}

// Reset returns the encoder to its initial state, discarding the internal
// buffer contents.
func (e *BoolRawEncoder) Reset() {
	if e.buf == nil {
		panic("encoder already finished - cannot reset after Finish()")
	}

	e.bw.Reset()
	e.count = 0
}

// Finish finalizes the encoding session and returns the buffer to the pool.
// After Finish the encoder is no longer usable.
func (e *BoolRawEncoder) Finish() {
	if e.buf == nil {
		return
	}

	pool.PutBitmapBuffer(e.buf)
	e.buf = nil
	e.bw = nil
}

// BoolRawDecoder decodes LSB-first bit-packed boolean payloads.
//
// Unlike the RLE decoder, raw payloads support constant-time random access:
// value i lives at bit i%8 of byte i/8.
type BoolRawDecoder struct{}

var _ ColumnarDecoder[bool] = (*BoolRawDecoder)(nil)

// NewBoolRawDecoder creates a decoder for raw bit-packed payloads.
func NewBoolRawDecoder() *BoolRawDecoder {
	return &BoolRawDecoder{}
}

// All returns an iterator yielding up to count values decoded from data.
func (d *BoolRawDecoder) All(data []byte, count int) iter.Seq[bool] {
	return func(yield func(bool) bool) {
		br := bitstream.NewReader(data)
		for i := 0; i < count; i++ {
			v, ok := br.GetBool()
			if !ok {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// At retrieves the value at index from data holding count encoded values.
func (d *BoolRawDecoder) At(data []byte, index int, count int) (bool, bool) {
	if index < 0 || index >= count || index/8 >= len(data) {
		return false, false
	}

	return data[index/8]&(1<<(index%8)) != 0, true
}
