// Package blob implements the bibo bitmap blob format: a fixed header
// followed by a single boolean payload, encoded with one of the codecs from
// the encoding package and optionally compressed.
//
// BitmapEncoder assembles blobs; DecodeBitmap validates and opens them. A
// decoded Bitmap exposes iteration, random access and a sequential RunReader
// over the boolean sequence, bounded by the value count recorded in the
// header.
package blob
