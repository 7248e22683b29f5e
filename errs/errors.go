// Package errs defines the sentinel errors returned by the bibo blob codec.
//
// Callers can match these with errors.Is even when call sites wrap them
// with additional context.
package errs

import "errors"

var (
	// ErrInvalidHeaderSize indicates the blob is shorter than the fixed header.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrInvalidMagicNumber indicates the header does not carry the bitmap blob magic.
	ErrInvalidMagicNumber = errors.New("invalid magic number")

	// ErrInvalidEncodingType indicates an unknown value encoding in the header.
	ErrInvalidEncodingType = errors.New("invalid encoding type")

	// ErrInvalidCompressionType indicates an unknown compression type in the header.
	ErrInvalidCompressionType = errors.New("invalid compression type")

	// ErrInvalidPayloadSize indicates the payload length recorded in the header
	// does not match the bytes present in the blob, or a decoded raw payload is
	// too short for the value count recorded in the header.
	ErrInvalidPayloadSize = errors.New("invalid payload size")

	// ErrChecksumMismatch indicates the payload checksum does not match the header.
	ErrChecksumMismatch = errors.New("payload checksum mismatch")

	// ErrEncoderFinished indicates an operation on an encoder after Finish.
	ErrEncoderFinished = errors.New("encoder already finished")
)
