package tag

import (
	"bytes"
	"fmt"

	"github.com/cratekit/seratag/pkg/codec"
)

// Version is the two-byte header every tag body starts with.
type Version struct {
	Major uint8 `json:"major"`
	Minor uint8 `json:"minor"`
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

func readVersion(r *codec.Reader) (Version, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return Version{}, fmt.Errorf("version header: %w", err)
	}

	return Version{Major: b[0], Minor: b[1]}, nil
}

func writeVersion(w *codec.Writer, v Version) {
	w.WriteUint8(v.Major)
	w.WriteUint8(v.Minor)
}

// takeFooter returns an owned copy of everything the body decoder left
// unread. Tags often carry trailing padding or bytes whose meaning is
// unknown; keeping them verbatim lets Encode reproduce the input exactly.
func takeFooter(r *codec.Reader) []byte {
	rest := r.Rest()
	if len(rest) == 0 {
		return nil
	}

	return bytes.Clone(rest)
}

// expectBytes consumes len(want) bytes and checks them against the fixed
// bytes of a layout.
func expectBytes(r *codec.Reader, want []byte) error {
	got, err := r.ReadBytes(len(want))
	if err != nil {
		return err
	}
	if !bytes.Equal(got, want) {
		return fmt.Errorf("fixed bytes are % x, want % x: %w", got, want, ErrInvalidData)
	}

	return nil
}

func expectByte(r *codec.Reader, want byte) error {
	got, err := r.ReadUint8()
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("fixed byte is %#x, want %#x: %w", got, want, ErrInvalidData)
	}

	return nil
}
