// Package encoding provides the boolean codecs used by bibo bitmap blobs.
//
// Two encodings are available:
//
//   - BoolRLEEncoder / BoolRLEDecoder: a run-length / bit-packed hybrid.
//     Long uniform runs are stored as a repetition count plus the repeated
//     value; short or mixed stretches are stored as bit-packed literals.
//   - BoolRawEncoder / BoolRawDecoder: plain LSB-first bit packing with no
//     run headers, one bit per value.
//
// Encoders draw their output buffers from an internal pool; call Finish when
// an encoding session is complete to return the buffer. Decoders operate
// directly on the encoded byte slice without copying.
//
// None of the types in this package are safe for concurrent use. Distinct
// encoder or decoder instances over distinct buffers may be used from
// different goroutines freely.
package encoding
