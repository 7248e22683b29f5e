package section

import (
	"github.com/arloliu/bibo/errs"
)

// BitmapHeader represents the fixed-size header section at the start of a
// bitmap blob.
type BitmapHeader struct {
	// ValueCount is the number of boolean values stored in the blob.
	ValueCount uint32 // byte offset 4-7
	// SetCount is the number of true values stored in the blob.
	SetCount uint32 // byte offset 8-11
	// PayloadSize is the byte length of the (possibly compressed) payload
	// that follows the header.
	PayloadSize uint32 // byte offset 12-15
	// Checksum is the xxHash64 digest of the payload bytes as stored.
	Checksum uint64 // byte offset 16-23

	// Flag is a packed field for various flags and the magic number.
	Flag BitmapFlag // byte offset 0-3
}

// NewBitmapHeader creates a new BitmapHeader with default flags.
// The counts, payload size and checksum are set when the encoder finishes.
func NewBitmapHeader() *BitmapHeader {
	return &BitmapHeader{
		Flag: NewBitmapFlag(),
	}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing at least HeaderSize bytes
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is too short, or flag validation errors
func (h *BitmapHeader) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// Parse options first to determine endianness (always little-endian for
	// the Options field itself).
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.EncodingType = data[2]
	h.Flag.CompressionType = data[3]

	engine := h.Flag.GetEndianEngine()

	h.ValueCount = engine.Uint32(data[valueCountOffset : valueCountOffset+4])
	h.SetCount = engine.Uint32(data[setCountOffset : setCountOffset+4])
	h.PayloadSize = engine.Uint32(data[payloadSizeOffset : payloadSizeOffset+4])
	h.Checksum = engine.Uint64(data[checksumOffset : checksumOffset+8])

	return h.Flag.Validate()
}

// Bytes serializes the BitmapHeader into a byte slice of HeaderSize bytes.
func (h *BitmapHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := h.Flag.GetEndianEngine()

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.EncodingType
	b[3] = h.Flag.CompressionType
	engine.PutUint32(b[valueCountOffset:valueCountOffset+4], h.ValueCount)
	engine.PutUint32(b[setCountOffset:setCountOffset+4], h.SetCount)
	engine.PutUint32(b[payloadSizeOffset:payloadSizeOffset+4], h.PayloadSize)
	engine.PutUint64(b[checksumOffset:checksumOffset+8], h.Checksum)

	return b
}
