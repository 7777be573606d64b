package codec

// Errors
var (
	ErrShortInput  = &DecodeError{"input shorter than required"}
	ErrInvalidUTF8 = &DecodeError{"text run is not valid UTF-8"}
	ErrReservedBit = &DecodeError{"reserved bit set in serato32 data"}
)

// DecodeError represents a low-level decoding failure
type DecodeError struct {
	Message string
}

func (e *DecodeError) Error() string {
	return e.Message
}
