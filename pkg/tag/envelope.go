package tag

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/cratekit/seratag/pkg/codec"
)

// FLAC comments and MP4 atoms store tag bodies inside a base64 envelope.
// The decoded form is a MIME marker, the tag name and the raw body:
//
//	application/octet-stream 00 00 <name> 00 <body>
var envelopeHeader = []byte("application/octet-stream\x00\x00")

// UnwrapEnvelope decodes an envelope and returns the tag name and body it
// carries. Trailing NUL padding and line breaks are dropped before
// decoding, and base64 without padding characters is accepted.
func UnwrapEnvelope(data []byte) (string, []byte, error) {
	text := make([]byte, 0, len(data))
	for _, b := range bytes.TrimRight(data, "\x00") {
		if b == '\n' || b == '\r' {
			continue
		}
		text = append(text, b)
	}

	enc := base64.StdEncoding.Strict()
	if len(text)%4 != 0 {
		enc = base64.RawStdEncoding.Strict()
	}
	decoded, err := enc.DecodeString(string(text))
	if err != nil {
		return "", nil, fmt.Errorf("envelope: %w: %v", ErrInvalidBase64, err)
	}

	r := codec.NewReader(decoded)
	if err := expectBytes(r, envelopeHeader); err != nil {
		return "", nil, fmt.Errorf("envelope: mime header: %w", err)
	}
	name, err := r.ReadText()
	if err != nil {
		return "", nil, fmt.Errorf("envelope: tag name: %w", err)
	}

	return name, bytes.Clone(r.Rest()), nil
}

// WrapEnvelope encodes a tag body for storage in a FLAC comment or MP4
// atom.
func WrapEnvelope(name string, body []byte) []byte {
	var w codec.Writer
	w.WriteBytes(envelopeHeader)
	w.WriteCString(name)
	w.WriteBytes(body)

	return []byte(base64.StdEncoding.EncodeToString(w.Bytes()))
}
