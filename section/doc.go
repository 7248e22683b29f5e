// Package section defines the fixed-size header section of a bitmap blob.
//
// A blob is a header followed by a single encoded (and optionally compressed)
// boolean payload. The header records the byte order, the encoding and
// compression types, the value and set-bit counts, the payload size and an
// xxHash64 checksum of the payload, allowing a decoder to validate a blob
// before touching the payload bytes.
package section
