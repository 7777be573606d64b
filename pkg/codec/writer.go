package codec

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Writer is an append-only builder for the binary tag structures. The zero
// value is ready to use. Multi-byte integers and floats are written
// big-endian, mirroring Reader.
type Writer struct {
	buf bytes.Buffer
}

// Bytes returns the accumulated output. The slice is valid until the next
// write.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// WriteBytes appends p verbatim.
func (w *Writer) WriteBytes(p []byte) {
	w.buf.Write(p)
}

// WriteUint8 appends a single byte.
func (w *Writer) WriteUint8(v uint8) {
	w.buf.WriteByte(v)
}

// WriteBool appends one byte: 0x01 for true, 0x00 for false.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf.WriteByte(1)
		return
	}
	w.buf.WriteByte(0)
}

// WriteUint32 appends a big-endian unsigned integer.
func (w *Writer) WriteUint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

// WriteFloat32 appends a big-endian IEEE 754 float.
func (w *Writer) WriteFloat32(v float32) {
	w.WriteUint32(math.Float32bits(v))
}

// WriteFloat64 appends a big-endian IEEE 754 double.
func (w *Writer) WriteFloat64(v float64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], math.Float64bits(v))
	w.buf.Write(b[:])
}

// WriteCString appends s followed by a NUL terminator.
func (w *Writer) WriteCString(s string) {
	w.buf.WriteString(s)
	w.buf.WriteByte(0)
}

// WriteColor appends the color as three plain red, green, blue bytes.
func (w *Writer) WriteColor(c Color) {
	w.buf.WriteByte(c.Red)
	w.buf.WriteByte(c.Green)
	w.buf.WriteByte(c.Blue)
}
