package tag

import (
	"encoding/base64"
	"fmt"

	"github.com/cratekit/seratag/pkg/codec"
)

// Serato writes the base64 body in fixed-width lines.
const base64LineWidth = 72

func isBase64Byte(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	case b == '+', b == '/', b == '=':
		return true
	}

	return false
}

// readBase64Body consumes the base64 region of a tag body and returns the
// decoded content. The text is taken in groups of four alphabet characters;
// a single newline between groups is the line separator and is skipped when
// more base64 follows it. A NUL or any byte outside the alphabet ends the
// region and stays unconsumed for the caller's footer.
func readBase64Body(r *codec.Reader) ([]byte, error) {
	var text []byte

scan:
	for {
		c, ok := r.Peek()
		if !ok {
			break
		}

		switch {
		case isBase64Byte(c):
			for i := 0; i < 4; i++ {
				g, ok := r.Peek()
				if !ok || !isBase64Byte(g) {
					break
				}
				text = append(text, g)
				_, _ = r.ReadUint8()
			}

		case c == '\n':
			rest := r.Rest()
			if len(rest) < 2 || !isBase64Byte(rest[1]) {
				break scan
			}
			_, _ = r.ReadUint8()

		default:
			break scan
		}
	}

	if len(text)%4 != 0 {
		return nil, fmt.Errorf("base64 region is %d characters: %w", len(text), ErrLengthMismatch)
	}

	decoded, err := base64.StdEncoding.Strict().DecodeString(string(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBase64, err)
	}

	return decoded, nil
}

// writeBase64Body appends content as base64 text in fixed-width lines with
// no trailing newline.
func writeBase64Body(w *codec.Writer, content []byte) {
	text := base64.StdEncoding.EncodeToString(content)
	for len(text) > base64LineWidth {
		w.WriteBytes([]byte(text[:base64LineWidth]))
		w.WriteUint8('\n')
		text = text[base64LineWidth:]
	}
	w.WriteBytes([]byte(text))
}
