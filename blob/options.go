package blob

import (
	"fmt"

	"github.com/arloliu/bibo/format"
	"github.com/arloliu/bibo/section"
)

// BitmapEncoderOption configures a BitmapEncoder.
type BitmapEncoderOption func(*bitmapEncoderConfig) error

type bitmapEncoderConfig struct {
	flag section.BitmapFlag
}

// WithLittleEndian encodes the blob header fields in little-endian byte order.
// This is the default.
func WithLittleEndian() BitmapEncoderOption {
	return func(cfg *bitmapEncoderConfig) error {
		cfg.flag.WithLittleEndian()
		return nil
	}
}

// WithBigEndian encodes the blob header fields in big-endian byte order.
func WithBigEndian() BitmapEncoderOption {
	return func(cfg *bitmapEncoderConfig) error {
		cfg.flag.WithBigEndian()
		return nil
	}
}

// WithEncoding selects the boolean encoding for the payload.
//
// format.TypeRLE (the default) stores runs compactly and is the right choice
// for clustered bitmaps; format.TypeRaw stores one bit per value and supports
// constant-time random access.
func WithEncoding(t format.EncodingType) BitmapEncoderOption {
	return func(cfg *bitmapEncoderConfig) error {
		switch t {
		case format.TypeRaw, format.TypeRLE:
			cfg.flag.SetEncoding(t)
			return nil
		default:
			return fmt.Errorf("invalid bitmap encoding: %s", t)
		}
	}
}

// WithCompression selects the payload compression.
// The default is format.CompressionNone.
func WithCompression(t format.CompressionType) BitmapEncoderOption {
	return func(cfg *bitmapEncoderConfig) error {
		switch t {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			cfg.flag.SetCompression(t)
			return nil
		default:
			return fmt.Errorf("invalid bitmap compression: %s", t)
		}
	}
}
