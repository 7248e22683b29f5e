package blob

import (
	"iter"

	"github.com/arloliu/bibo/encoding"
	"github.com/arloliu/bibo/format"
	"github.com/arloliu/bibo/section"
)

// Bitmap is a decoded bitmap blob.
//
// It owns the serialized blob bytes and the decompressed payload, and exposes
// the boolean sequence bounded by the value count recorded in the header.
// A Bitmap is immutable and safe for concurrent reads; each RunReader is an
// independent cursor.
type Bitmap struct {
	header  section.BitmapHeader
	data    []byte // full serialized blob
	payload []byte // decompressed encoded payload
}

// Bytes returns the serialized blob, suitable for storage or transmission.
func (b Bitmap) Bytes() []byte {
	return b.data
}

// ValueCount returns the number of boolean values stored in the blob.
func (b Bitmap) ValueCount() int {
	return int(b.header.ValueCount)
}

// SetCount returns the number of true values stored in the blob, taken from
// the header without scanning the payload.
func (b Bitmap) SetCount() int {
	return int(b.header.SetCount)
}

// Encoding returns the boolean encoding of the payload.
func (b Bitmap) Encoding() format.EncodingType {
	return b.header.Flag.Encoding()
}

// Compression returns the payload compression recorded in the header.
func (b Bitmap) Compression() format.CompressionType {
	return b.header.Flag.Compression()
}

// All returns an iterator over all values in the bitmap.
func (b Bitmap) All() iter.Seq[bool] {
	switch b.Encoding() {
	case format.TypeRLE:
		var dec encoding.BoolRLEDecoder
		return dec.All(b.payload, b.ValueCount())
	default:
		var dec encoding.BoolRawDecoder
		return dec.All(b.payload, b.ValueCount())
	}
}

// At retrieves the value at the given index.
//
// Raw payloads answer in constant time; RLE payloads scan from the start of
// the stream, crossing repeated runs in O(1). The second return value is
// false when the index is out of bounds.
func (b Bitmap) At(index int) (bool, bool) {
	switch b.Encoding() {
	case format.TypeRLE:
		var dec encoding.BoolRLEDecoder
		return dec.At(b.payload, index, b.ValueCount())
	default:
		var dec encoding.BoolRawDecoder
		return dec.At(b.payload, index, b.ValueCount())
	}
}

// Bools materializes the bitmap into a newly allocated slice.
func (b Bitmap) Bools() []bool {
	values := make([]bool, 0, b.ValueCount())
	for v := range b.All() {
		values = append(values, v)
	}

	return values
}

// Reader returns a sequential cursor over the bitmap.
func (b Bitmap) Reader() *RunReader {
	r := &RunReader{remaining: b.ValueCount()}
	if b.Encoding() == format.TypeRLE {
		r.rle = encoding.NewBoolRLEDecoder(b.payload)
	} else {
		r.rawData = b.payload
	}

	return r
}

// RunReader reads a bitmap sequentially, one value, one maximal run, or one
// skip at a time. It is bounded by the blob's value count, so literal tail
// padding in an RLE payload is never observable.
//
// RunReader is not safe for concurrent use; create one reader per goroutine.
type RunReader struct {
	rle       *encoding.BoolRLEDecoder
	rawData   []byte
	rawOffset int
	remaining int
}

// Next reads one value. The second return value is false once the sequence
// is exhausted.
func (r *RunReader) Next() (bool, bool) {
	if r.remaining == 0 {
		return false, false
	}

	var v bool
	var ok bool
	if r.rle != nil {
		v, ok = r.rle.Next()
	} else {
		v, ok = r.rawAt(r.rawOffset)
		r.rawOffset++
	}
	if !ok {
		return false, false
	}
	r.remaining--

	return v, true
}

// NextRun returns the next maximal run of identical values. It returns
// ok == false only when the sequence is exhausted.
func (r *RunReader) NextRun() (value bool, length int, ok bool) {
	if r.remaining == 0 {
		return false, 0, false
	}

	if r.rle != nil {
		value, length, ok = r.rle.NextRun()
		if !ok {
			return false, 0, false
		}
		// Clamp a run extended by literal tail padding.
		if length > r.remaining {
			length = r.remaining
		}
		r.remaining -= length

		return value, length, true
	}

	value, ok = r.rawAt(r.rawOffset)
	if !ok {
		return false, 0, false
	}
	length = 1
	r.rawOffset++
	r.remaining--
	for r.remaining > 0 {
		v, vok := r.rawAt(r.rawOffset)
		if !vok || v != value {
			break
		}
		length++
		r.rawOffset++
		r.remaining--
	}

	return value, length, true
}

// Skip advances over n values and returns the number of true values among
// them. Skipping past the end stops at the last value.
func (r *RunReader) Skip(n int) int {
	if n > r.remaining {
		n = r.remaining
	}
	if n == 0 {
		return 0
	}

	if r.rle != nil {
		set := r.rle.Skip(n)
		r.remaining -= n

		return set
	}

	set := 0
	for i := 0; i < n; i++ {
		v, ok := r.rawAt(r.rawOffset)
		if !ok {
			break
		}
		if v {
			set++
		}
		r.rawOffset++
		r.remaining--
	}

	return set
}

// rawAt reads bit i of the raw payload.
func (r *RunReader) rawAt(i int) (bool, bool) {
	if i/8 >= len(r.rawData) {
		return false, false
	}

	return r.rawData[i/8]&(1<<(i%8)) != 0, true
}
