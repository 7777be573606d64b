package codec

// EncodeSerato32 packs a 3-byte plaintext value into the widened 4-byte
// form. Each encoded byte carries seven payload bits; the high bit is
// always zero.
func EncodeSerato32(plain [3]byte) [4]byte {
	p1, p2, p3 := plain[0], plain[1], plain[2]

	return [4]byte{
		p1 >> 5,
		((p2 >> 6) | (p1 << 2)) & 0x7f,
		((p3 >> 7) | (p2 << 1)) & 0x7f,
		p3 & 0x7f,
	}
}

// DecodeSerato32 unpacks a widened 4-byte value back into its 3-byte
// plaintext. It returns ErrReservedBit unless the input is canonical: the
// high bit of every byte must be clear, and the first byte carries only
// three payload bits.
func DecodeSerato32(enc [4]byte) ([3]byte, error) {
	for _, b := range enc {
		if b&0x80 != 0 {
			return [3]byte{}, ErrReservedBit
		}
	}
	if enc[0] > 0x07 {
		return [3]byte{}, ErrReservedBit
	}

	e1, e2, e3, e4 := enc[0], enc[1], enc[2], enc[3]

	return [3]byte{
		(e2 >> 2) | (e1 << 5),
		(e3 >> 1) | (e2 << 6),
		e4 | (e3 << 7),
	}, nil
}

// EncodeSerato32Uint32 encodes the low 24 bits of v. Values of 2^24 or more
// have no representation; passing one is a programming error.
func EncodeSerato32Uint32(v uint32) [4]byte {
	if v > 0xffffff {
		panic("codec: serato32 value exceeds 24 bits")
	}

	return EncodeSerato32([3]byte{byte(v >> 16), byte(v >> 8), byte(v)})
}

// DecodeSerato32Uint32 decodes a widened 4-byte value into a uint32 in the
// range [0, 2^24).
func DecodeSerato32Uint32(enc [4]byte) (uint32, error) {
	p, err := DecodeSerato32(enc)
	if err != nil {
		return 0, err
	}

	return uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2]), nil
}

// DecodeSerato32Color decodes a widened 4-byte value into a Color. The
// plaintext bytes map to red, green and blue in that order.
func DecodeSerato32Color(enc [4]byte) (Color, error) {
	p, err := DecodeSerato32(enc)
	if err != nil {
		return Color{}, err
	}

	return Color{Red: p[0], Green: p[1], Blue: p[2]}, nil
}
