// Package codec provides the low-level byte primitives shared by the Serato
// tag parsers and writers.
//
// The codec package implements the serato32 numeric encoding and a pair of
// cursor types for reading and building the big-endian binary structures
// found inside Serato's metadata tags. This is the foundation the tag
// package builds on.
//
// # Serato32 Format
//
// Several tags store 24-bit quantities (cue positions in milliseconds, RGB
// colors) in a widened 4-byte form. The three plaintext bytes are spread
// over four encoded bytes of seven payload bits each, and the high bit of
// every encoded byte stays zero:
//
//	plaintext:  p1=aaaaaaaa  p2=bbbbbbbb  p3=cccccccc
//	encoded:    e1=00000aaa  e2=0aaaaabb  e3=0bbbbbbc  e4=0ccccccc
//
// Decoding rejects any byte with a reserved bit set, which keeps the
// encoding canonical: every value that decodes successfully re-encodes to
// the identical four bytes, and every 24-bit value survives an
// encode/decode round trip unchanged.
//
// # Byte Cursor
//
// Reader walks a byte slice sequentially and exposes the primitive shapes
// the tag formats are made of: unsigned integers and IEEE floats in
// big-endian order, single-byte booleans, NUL-terminated byte and UTF-8
// text runs, raw RGB color triples, and fixed-length spans. Writer is the
// symmetric append-only builder; its zero value is ready to use.
//
// Reads fail with ErrShortInput when the remaining input is too short and
// never consume past the failure point. Slices returned by ReadBytes,
// ReadCString and Rest alias the reader's underlying data; callers that
// keep the bytes beyond the life of the input must copy them.
//
// # Error Handling
//
// The package exposes sentinel error values (ErrShortInput, ErrInvalidUTF8,
// ErrReservedBit) that callers can match with errors.Is after any amount of
// fmt.Errorf wrapping. Higher layers attach positional context; the
// sentinels carry the failure kind.
//
// # Thread Safety
//
// Readers and Writers are single-goroutine cursors. The package-level
// encode and decode functions are pure and safe for concurrent use.
package codec
