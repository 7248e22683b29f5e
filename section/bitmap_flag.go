package section

import (
	"github.com/arloliu/bibo/endian"
	"github.com/arloliu/bibo/errs"
	"github.com/arloliu/bibo/format"
)

// BitmapFlag represents the packed field for various flags in the bitmap header.
type BitmapFlag struct {
	// Options is a packed field for various options.
	// Bit 0 is the endianness flag, 0 means little-endian, 1 means big-endian.
	// Bits 1-3 are reserved for future use, must be set to 0.
	// Bits 4-15 are the magic number identifying the blob format:
	//   - 0xEC10 (0b1110_1100_0001_0000): Bitmap blob format v1
	Options uint16

	// EncodingType is an enum indicating the boolean encoding used for this blob.
	EncodingType uint8
	// CompressionType is an enum indicating the payload compression used for this blob.
	CompressionType uint8
}

var validEncodings = map[uint8]struct{}{
	uint8(format.TypeRaw): {},
	uint8(format.TypeRLE): {},
}

var validCompressions = map[uint8]struct{}{
	uint8(format.CompressionNone): {},
	uint8(format.CompressionZstd): {},
	uint8(format.CompressionS2):   {},
	uint8(format.CompressionLZ4):  {},
}

// NewBitmapFlag creates a new BitmapFlag with default settings: little-endian,
// RLE encoding, no compression.
func NewBitmapFlag() BitmapFlag {
	flag := BitmapFlag{
		Options:         MagicBitmapV1Opt,
		EncodingType:    uint8(format.TypeRLE),
		CompressionType: uint8(format.CompressionNone),
	}
	flag.WithLittleEndian()

	return flag
}

// IsLittleEndian returns whether the blob data is little-endian.
func (f BitmapFlag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the blob data is big-endian.
func (f BitmapFlag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *BitmapFlag) WithLittleEndian() {
	f.Options &= ^uint16(EndiannessMask)
}

// WithBigEndian sets big-endian byte order.
func (f *BitmapFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetEndianEngine returns the endian engine matching the endianness flag.
func (f BitmapFlag) GetEndianEngine() endian.EndianEngine {
	if f.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// GetMagicNumber returns the magic number from the Options field.
func (f BitmapFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// Encoding returns the boolean encoding type recorded in the flag.
func (f BitmapFlag) Encoding() format.EncodingType {
	return format.EncodingType(f.EncodingType)
}

// SetEncoding records the boolean encoding type.
func (f *BitmapFlag) SetEncoding(t format.EncodingType) {
	f.EncodingType = uint8(t)
}

// Compression returns the payload compression type recorded in the flag.
func (f BitmapFlag) Compression() format.CompressionType {
	return format.CompressionType(f.CompressionType)
}

// SetCompression records the payload compression type.
func (f *BitmapFlag) SetCompression(t format.CompressionType) {
	f.CompressionType = uint8(t)
}

// Validate checks the magic number and the encoding and compression enums.
func (f BitmapFlag) Validate() error {
	if f.GetMagicNumber() != MagicBitmapV1Opt {
		return errs.ErrInvalidMagicNumber
	}

	if _, ok := validEncodings[f.EncodingType]; !ok {
		return errs.ErrInvalidEncodingType
	}

	if _, ok := validCompressions[f.CompressionType]; !ok {
		return errs.ErrInvalidCompressionType
	}

	return nil
}
