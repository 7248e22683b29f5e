package section

const (
	// Bit masks for the packed Options field
	EndiannessMask   = 0x0001 // Mask for endianness bit (bit 0)
	ReservedBitsMask = 0x000E // Mask for reserved bits (bits 1-3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicBitmapV1Opt is the version 1 magic number for the bitmap blob format.
	MagicBitmapV1Opt = 0xEC10
)

// offsets and section sizes in the blob
const (
	HeaderSize        = 24         // fixed header size in bytes
	PayloadOffset     = HeaderSize // byte offset where the encoded payload starts
	valueCountOffset  = 4
	setCountOffset    = 8
	payloadSizeOffset = 12
	checksumOffset    = 16
)
