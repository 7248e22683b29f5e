package encoding

import (
	"iter"

	"github.com/arloliu/bibo/bitstream"
	"github.com/arloliu/bibo/internal/pool"
)

// lookaheadSize is the number of values the encoder buffers before deciding
// between a literal and a repeated run. With 1-bit values an 8-value repeated
// run costs 2 bytes (one VLQ header, one value byte), the same as one literal
// byte carrying 8 bits; below 8 a repeated run is never cheaper, and beyond 8
// every further repetition strictly wins.
const lookaheadSize = 8

// maxLiteralGroups bounds the group count of a single literal run so its
// indicator always fits in the one reserved header byte.
const maxLiteralGroups = 128

// BoolRLEEncoder encodes a boolean sequence with a run-length / bit-packed
// hybrid scheme.
//
// The wire format is a concatenation of runs, each starting on a byte
// boundary with a VLQ indicator. The indicator's least significant bit
// selects the run kind:
//
//	literal-run  := vlq(num_groups<<1 | 1) followed by num_groups bytes of
//	                bit-packed values (8 values per group, LSB-first)
//	repeated-run := vlq(num_repetitions<<1) followed by one byte-aligned
//	                value byte (0x00 or 0x01)
//
// The encoder buffers 8 values at a time. If they are all part of a run of at
// least 8 identical values they extend a repeated run; otherwise they extend
// the current literal run. The literal run's indicator byte is reserved in
// the output when the run opens and back-patched when the run closes, so
// literal payloads stream straight into the buffer.
//
// Note: The BoolRLEEncoder is NOT thread-safe. Each encoder instance should
// be used by a single goroutine at a time.
type BoolRLEEncoder struct {
	bw *bitstream.Writer

	// Lookahead of the most recent values not yet committed to either run
	// kind. Fixed-size, no allocation.
	bufferedValues [lookaheadSize]bool
	numBuffered    int

	// The current (also last) value written and how many times in a row it
	// has been seen, including values still sitting in the lookahead. Once
	// repeatCount reaches lookaheadSize the encoder switches to a repeated
	// run.
	currentValue bool
	repeatCount  int

	// Number of values already flushed into the in-progress literal run.
	// Always a multiple of 8; excludes values in the lookahead.
	literalCount int

	// Buffer index of the reserved indicator byte for the open literal run,
	// -1 when no literal run is open.
	indicatorIdx int

	count int
	buf   *pool.ByteBuffer
}

var _ ColumnarEncoder[bool] = (*BoolRLEEncoder)(nil)

// NewBoolRLEEncoder creates a new hybrid RLE encoder for boolean values.
//
// The encoder draws its output buffer from the bitmap buffer pool; call
// Finish to return it when the encoding session is complete.
func NewBoolRLEEncoder() *BoolRLEEncoder {
	buf := pool.GetBitmapBuffer()

	e := &BoolRLEEncoder{
		bw:  bitstream.NewWriter(buf),
		buf: buf,
	}
	e.indicatorIdx = -1

	return e
}

// Write encodes a single boolean value.
func (e *BoolRLEEncoder) Write(value bool) {
	if e.buf == nil {
		panic("encoder already finished - cannot write values after Finish()")
	}

	e.count++
	e.put(value)
}

// WriteRun encodes runLength copies of value.
//
// The output is byte-identical to calling Write(value) runLength times.
func (e *BoolRLEEncoder) WriteRun(value bool, runLength int) {
	if e.buf == nil {
		panic("encoder already finished - cannot write values after Finish()")
	}

	e.count += runLength
	for i := 0; i < runLength; i++ {
		e.put(value)
	}
}

// WriteSlice encodes a slice of boolean values.
func (e *BoolRLEEncoder) WriteSlice(values []bool) {
	if e.buf == nil {
		panic("encoder already finished - cannot write values after Finish()")
	}

	e.count += len(values)
	for _, v := range values {
		e.put(v)
	}
}

// put buffers one value and decides between the two run kinds once the
// lookahead fills.
func (e *BoolRLEEncoder) put(value bool) {
	if value == e.currentValue {
		e.repeatCount++
		if e.repeatCount > lookaheadSize {
			// Continuation of a long repeated run; the lookahead was already
			// consumed into it. Fast path for uniform input.
			return
		}
	} else {
		if e.repeatCount >= lookaheadSize {
			// A run that was long enough has ended.
			e.flushRepeatedRun()
		}
		e.repeatCount = 1
		e.currentValue = value
	}

	e.bufferedValues[e.numBuffered] = value
	e.numBuffered++
	if e.numBuffered == lookaheadSize {
		e.flushBufferedValues(false)
	}
}

// flushBufferedValues commits the full lookahead to one of the run kinds.
//
// If done is true the current run is closed even if it would normally keep
// buffering; this only happens from Flush.
func (e *BoolRLEEncoder) flushBufferedValues(done bool) {
	if e.repeatCount >= lookaheadSize {
		// The buffered values are part of the repeated run now; drop them so
		// they are not flushed out as literals.
		e.numBuffered = 0
		if e.literalCount != 0 {
			// A literal run was open. Its bits are already written; only the
			// indicator byte still needs finalizing.
			e.flushLiteralRun(true)
		}

		return
	}

	e.literalCount += e.numBuffered
	numGroups := (e.literalCount + 7) / 8
	if numGroups+1 >= maxLiteralGroups/2 {
		// The reserved one-byte indicator cannot represent more groups; close
		// the literal run and let the next group start a fresh one.
		e.flushLiteralRun(true)
	} else {
		e.flushLiteralRun(done)
	}
	e.repeatCount = 0
}

// flushLiteralRun writes the buffered values as bit-packed literals and, when
// updateIndicator is set, back-patches the run's indicator byte and closes
// the run.
func (e *BoolRLEEncoder) flushLiteralRun(updateIndicator bool) {
	if e.indicatorIdx < 0 {
		// First group of a new literal run: reserve the indicator byte now so
		// the payload can stream behind it.
		e.indicatorIdx = e.bw.ReserveByte()
	}

	for i := 0; i < e.numBuffered; i++ {
		e.bw.PutBool(e.bufferedValues[i])
	}
	e.numBuffered = 0

	if updateIndicator {
		numGroups := (e.literalCount + 7) / 8
		if numGroups >= maxLiteralGroups {
			panic("rle: literal group count overflows one-byte indicator")
		}
		e.bw.SetByte(e.indicatorIdx, byte(numGroups<<1)|1)
		e.indicatorIdx = -1
		e.literalCount = 0
	}
}

// flushRepeatedRun writes the pending repeated run header and value byte.
func (e *BoolRLEEncoder) flushRepeatedRun() {
	var valueByte byte
	if e.currentValue {
		valueByte = 1
	}

	e.bw.PutVlqInt(uint32(e.repeatCount) << 1)
	e.bw.PutAlignedByte(valueByte)
	e.numBuffered = 0
	e.repeatCount = 0
}

// Flush closes any pending run and returns the total number of bytes written.
//
// After Flush the encoder state is empty; further writes start a new run
// appended to the same buffer.
func (e *BoolRLEEncoder) Flush() int {
	if e.buf == nil {
		panic("encoder already finished - cannot flush after Finish()")
	}

	if e.literalCount > 0 || e.repeatCount > 0 || e.numBuffered > 0 {
		// The pending values close as a repeated run only when no literal run
		// is open and every outstanding value belongs to the tracked run.
		// numBuffered == 0 with repeatCount > 0 occurs when the input ends
		// with a run of at least lookaheadSize equal values.
		if e.numBuffered == 0 && e.repeatCount > 0 && e.repeatCount < lookaheadSize {
			panic("rle: empty lookahead with a repeated run shorter than the lookahead")
		}
		allRepeat := e.literalCount == 0 &&
			(e.repeatCount == e.numBuffered || e.numBuffered == 0)
		if e.repeatCount > 0 && allRepeat {
			e.flushRepeatedRun()
		} else {
			e.literalCount += e.numBuffered
			e.flushLiteralRun(true)
			e.repeatCount = 0
		}
	}

	return e.bw.Finish()
}

// Bytes returns the encoded byte slice.
//
// Call Flush first; values still held in the lookahead are not part of the
// returned slice. The slice is valid until the next call to Write, WriteSlice,
// or Reset, and must not be modified by the caller.
func (e *BoolRLEEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access buffer after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of values written to the encoder.
func (e *BoolRLEEncoder) Len() int {
	if e.buf == nil {
		panic("encoder already finished - cannot access length after Finish()")
	}

	return e.count
}

// Size returns the number of bytes written to the internal buffer so far.
func (e *BoolRLEEncoder) Size() int {
	if e.buf == nil {
		panic("encoder already finished - cannot access size after Finish()")
	}

	return e.buf.Len()
}

// Reset returns the encoder to its initial state, discarding the run state
// and the contents of the internal buffer.
func (e *BoolRLEEncoder) Reset() {
	if e.buf == nil {
		panic("encoder already finished - cannot reset after Finish()")
	}

	e.bw.Reset()
	e.numBuffered = 0
	e.currentValue = false
	e.repeatCount = 0
	e.literalCount = 0
	e.indicatorIdx = -1
	e.count = 0
}

// Finish finalizes the encoding session and returns the buffer to the pool.
//
// After Finish the encoder is no longer usable; create a new encoder to
// encode more data. Retrieve the encoded data with Bytes() before calling
// Finish().
func (e *BoolRLEEncoder) Finish() {
	if e.buf == nil {
		return
	}

	pool.PutBitmapBuffer(e.buf)
	e.buf = nil
	e.bw = nil
}

// BoolRLEDecoder decodes the hybrid RLE wire format produced by
// BoolRLEEncoder.
//
// The decoder reads sequentially from the start of the stream via Next,
// NextRun and Skip. The stateless All and At methods satisfy
// ColumnarDecoder[bool] and operate on the data passed to them, independent
// of the receiver's sequential position.
//
// Malformed input (a zero-length run header, a repeated header with no value
// byte, or a truncated literal payload) panics: the stream is corrupt and
// there is no partial-state recovery. Callers decoding untrusted bytes should
// validate them first; the blob layer does this with a header checksum.
//
// Note: The BoolRLEDecoder is NOT thread-safe.
type BoolRLEDecoder struct {
	br bitstream.Reader

	// Exactly one of repeatCount and literalCount is non-zero while a run is
	// active; both are zero when the next operation must read a header.
	currentValue bool
	repeatCount  int
	literalCount int
}

var _ ColumnarDecoder[bool] = (*BoolRLEDecoder)(nil)

// NewBoolRLEDecoder creates a decoder reading from the encoded data.
// The slice is not copied.
func NewBoolRLEDecoder(data []byte) *BoolRLEDecoder {
	return &BoolRLEDecoder{br: bitstream.NewReader(data)}
}

// Reset repoints the decoder at new encoded data and clears all run state.
func (d *BoolRLEDecoder) Reset(data []byte) {
	d.br = bitstream.NewReader(data)
	d.currentValue = false
	d.repeatCount = 0
	d.literalCount = 0
}

// readHeader lazily reads the next run header once the current run is
// exhausted. It returns false only when the stream has cleanly ended.
func (d *BoolRLEDecoder) readHeader() bool {
	if d.literalCount == 0 && d.repeatCount == 0 {
		indicator, ok := d.br.GetVlqInt()
		if !ok {
			return false
		}

		if indicator&1 == 1 {
			d.literalCount = int(indicator>>1) * 8
			if d.literalCount == 0 {
				panic("rle: corrupt stream: zero-length literal run")
			}
		} else {
			d.repeatCount = int(indicator >> 1)
			if d.repeatCount == 0 {
				panic("rle: corrupt stream: zero-length repeated run")
			}

			valueByte, ok := d.br.GetAlignedByte()
			if !ok {
				panic("rle: corrupt stream: repeated run missing value byte")
			}
			d.currentValue = valueByte&1 == 1
		}
	}

	return true
}

// Next reads one value. The second return value is false when the stream is
// exhausted.
func (d *BoolRLEDecoder) Next() (bool, bool) {
	if !d.readHeader() {
		return false, false
	}

	if d.repeatCount > 0 {
		d.repeatCount--

		return d.currentValue, true
	}

	v, ok := d.br.GetBool()
	if !ok {
		panic("rle: corrupt stream: truncated literal run")
	}
	d.literalCount--

	return v, true
}

// NextRun returns the next maximal run of identical values, coalescing across
// run headers. It returns ok == false only when the stream is exhausted with
// zero values to report.
func (d *BoolRLEDecoder) NextRun() (value bool, length int, ok bool) {
	for d.readHeader() {
		if d.repeatCount > 0 {
			if length > 0 && value != d.currentValue {
				// The pending repeated run disagrees; it stays buffered in
				// decoder state for the next call.
				return value, length, true
			}
			value = d.currentValue
			length += d.repeatCount
			d.repeatCount = 0

			continue
		}

		if length == 0 {
			v, bok := d.br.GetBool()
			if !bok {
				panic("rle: corrupt stream: truncated literal run")
			}
			value = v
			d.literalCount--
			length++
		}

		for d.literalCount > 0 {
			v, bok := d.br.GetBool()
			if !bok {
				panic("rle: corrupt stream: truncated literal run")
			}
			if v != value {
				// Put the mismatching bit back so the next call sees it.
				d.br.RewindBool()

				return value, length, true
			}
			length++
			d.literalCount--
		}
	}

	return value, length, length > 0
}

// Skip advances over toSkip values and returns the number of true values
// among them. If the stream ends early, Skip stops and returns the count of
// true values actually seen.
//
// Repeated runs are skipped in O(1); literal runs are read bit by bit to
// count set bits.
func (d *BoolRLEDecoder) Skip(toSkip int) int {
	setCount := 0
	for toSkip > 0 {
		if !d.readHeader() {
			break
		}

		if d.repeatCount > 0 {
			nskip := d.repeatCount
			if toSkip < nskip {
				nskip = toSkip
			}
			d.repeatCount -= nskip
			toSkip -= nskip
			if d.currentValue {
				setCount += nskip
			}

			continue
		}

		nskip := d.literalCount
		if toSkip < nskip {
			nskip = toSkip
		}
		d.literalCount -= nskip
		toSkip -= nskip
		for i := 0; i < nskip; i++ {
			v, ok := d.br.GetBool()
			if !ok {
				panic("rle: corrupt stream: truncated literal run")
			}
			if v {
				setCount++
			}
		}
	}

	return setCount
}

// All returns an iterator yielding up to count values decoded from data.
//
// The iterator decodes independently of the receiver's sequential state and
// stops early if data runs out of values.
func (d *BoolRLEDecoder) All(data []byte, count int) iter.Seq[bool] {
	return func(yield func(bool) bool) {
		dec := BoolRLEDecoder{br: bitstream.NewReader(data)}
		for i := 0; i < count; i++ {
			v, ok := dec.Next()
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
//
// Access is sequential from the start of the stream; repeated runs are
// crossed in O(1), literal runs bit by bit.
func (d *BoolRLEDecoder) At(data []byte, index int, count int) (bool, bool) {
	if index < 0 || index >= count {
		return false, false
	}

	dec := BoolRLEDecoder{br: bitstream.NewReader(data)}
	dec.Skip(index)

	return dec.Next()
}
