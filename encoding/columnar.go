package encoding

import "iter"

type ColumnarEncoder[T comparable] interface {
	// Bytes returns the encoded byte slice.
	// The returned slice is valid until the next call to Write, WriteSlice, or Reset.
	// The caller should not modify the returned slice.
	Bytes() []byte

	// Len returns the number of values written to the encoder.
	Len() int

	// Size returns the number of bytes written to the internal buffer so far.
	// Values still held in encoder state and not yet flushed are not counted.
	Size() int

	// Reset returns the encoder to its initial state, discarding both the
	// run-tracking state and the contents of the internal buffer.
	Reset()

	// Finish finalizes the encoding session and returns buffer resources to
	// the pool.
	//
	// After calling Finish(), the encoder is no longer usable. Any subsequent
	// calls to Write(), WriteSlice(), Bytes(), Len(), or Size() will result in
	// a panic due to nil buffer. To encode more data, create a new encoder.
	//
	// Retrieve the encoded data with Bytes() before calling Finish().
	Finish()

	// Write a single value.
	//
	// This method is optimized for appending a single value.
	// For bulk writes, use WriteSlice for better performance.
	Write(data T)

	// WriteSlice encodes a slice of values.
	WriteSlice(values []T)
}

type ColumnarDecoder[T comparable] interface {
	// All returns an iterator that yields all decoded items from the provided
	// encoded data.
	//
	// The data should be the byte slice payload produced by a corresponding
	// encoder. The count parameter specifies the expected number of values to
	// decode; the iterator yields at most count values and stops early if the
	// data is exhausted.
	All(data []byte, count int) iter.Seq[T]

	// At retrieves the value at the specified index from the encoded data.
	//
	// The index is zero-based. The count parameter specifies the total number
	// of values encoded in the data, enabling bounds checking. If the index is
	// out of bounds the second return value is false.
	At(data []byte, index int, count int) (T, bool)
}
