package codec

import (
	"bytes"
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// Reader is a sequential cursor over a byte slice. Multi-byte integers and
// floats are read big-endian. A failed read returns an error and leaves the
// cursor where it was; the reader never consumes past a failure point.
//
// Slices returned by ReadBytes, ReadCString and Rest alias the underlying
// data. Callers that keep those bytes beyond the life of the input must
// copy them.
type Reader struct {
	data []byte
	off  int
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.data) - r.off
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.off
}

// Peek returns the next byte without consuming it. The second return value
// is false at end of input.
func (r *Reader) Peek() (byte, bool) {
	if r.off >= len(r.data) {
		return 0, false
	}

	return r.data[r.off], true
}

// Rest returns the unread remainder without consuming it.
func (r *Reader) Rest() []byte {
	return r.data[r.off:]
}

// ReadBytes consumes and returns the next n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.Len() < n {
		return nil, ErrShortInput
	}

	b := r.data[r.off : r.off+n]
	r.off += n

	return b, nil
}

// ReadUint8 consumes a single byte.
func (r *Reader) ReadUint8() (uint8, error) {
	if r.off >= len(r.data) {
		return 0, ErrShortInput
	}

	b := r.data[r.off]
	r.off++

	return b, nil
}

// ReadBool consumes a single byte; any non-zero value is true.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadUint8()

	return b != 0, err
}

// ReadUint32 consumes four bytes as a big-endian unsigned integer.
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint32(b), nil
}

// ReadFloat32 consumes four bytes as a big-endian IEEE 754 float.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(v), nil
}

// ReadFloat64 consumes eight bytes as a big-endian IEEE 754 double.
func (r *Reader) ReadFloat64() (float64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

// ReadColor consumes three bytes as a plain red, green, blue triple.
func (r *Reader) ReadColor() (Color, error) {
	b, err := r.ReadBytes(3)
	if err != nil {
		return Color{}, err
	}

	return Color{Red: b[0], Green: b[1], Blue: b[2]}, nil
}

// ReadCString consumes bytes up to and including the next NUL terminator
// and returns them without the terminator. It returns ErrShortInput when no
// terminator exists in the remaining input.
func (r *Reader) ReadCString() ([]byte, error) {
	i := bytes.IndexByte(r.data[r.off:], 0)
	if i < 0 {
		return nil, ErrShortInput
	}

	b := r.data[r.off : r.off+i]
	r.off += i + 1

	return b, nil
}

// ReadText reads a NUL-terminated run and returns it as a string. It
// returns ErrInvalidUTF8 when the run is not valid UTF-8.
func (r *Reader) ReadText() (string, error) {
	b, err := r.ReadCString()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}

	return string(b), nil
}
