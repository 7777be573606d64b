// Package extract moves Serato tag bodies in and out of ID3v2 metadata.
// Serato DJ stores each tag as a GEOB (General Encapsulated Object) frame
// whose description names the tag, such as "Serato Markers2". The package
// decodes the GEOB frame body and hands the enclosed tag bytes to callers;
// pkg/tag turns those bytes into typed values.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/bogem/id3v2/v2"

	"github.com/cratekit/seratag/pkg/codec"
	"github.com/cratekit/seratag/pkg/tag"
)

// octetStream is the mime type Serato writes into every GEOB frame.
const octetStream = "application/octet-stream"

// Object is one decoded GEOB frame body.
type Object struct {
	Encoding    uint8
	MimeType    string
	Filename    string
	Description string
	Data        []byte
}

// ParseObject decodes a raw GEOB frame body: an encoding byte followed by
// NUL-terminated mime type, filename and description, then the object data.
func ParseObject(body []byte) (Object, error) {
	r := codec.NewReader(body)

	encoding, err := r.ReadUint8()
	if err != nil {
		return Object{}, fmt.Errorf("geob: encoding: %w", err)
	}
	mimeType, err := r.ReadText()
	if err != nil {
		return Object{}, fmt.Errorf("geob: mime type: %w", err)
	}
	filename, err := r.ReadText()
	if err != nil {
		return Object{}, fmt.Errorf("geob: filename: %w", err)
	}
	description, err := r.ReadText()
	if err != nil {
		return Object{}, fmt.Errorf("geob: description: %w", err)
	}

	return Object{
		Encoding:    encoding,
		MimeType:    mimeType,
		Filename:    filename,
		Description: description,
		Data:        bytes.Clone(r.Rest()),
	}, nil
}

// FrameBody serializes the object back into a GEOB frame body.
func (o Object) FrameBody() []byte {
	var w codec.Writer
	w.WriteUint8(o.Encoding)
	w.WriteCString(o.MimeType)
	w.WriteCString(o.Filename)
	w.WriteCString(o.Description)
	w.WriteBytes(o.Data)

	return w.Bytes()
}

// IsSerato reports whether the object's description marks a Serato tag.
func (o Object) IsSerato() bool {
	return strings.HasPrefix(o.Description, "Serato ")
}

// FromTag collects the Serato objects of a parsed ID3v2 tag. GEOB frames
// that do not decode, and objects written by other software, are skipped.
func FromTag(t *id3v2.Tag) []Object {
	var objects []Object
	for _, frame := range t.GetFrames("GEOB") {
		unknown, ok := frame.(id3v2.UnknownFrame)
		if !ok {
			continue
		}
		o, err := ParseObject(unknown.Body)
		if err != nil || !o.IsSerato() {
			continue
		}
		objects = append(objects, o)
	}

	return objects
}

// FromReader parses an ID3v2 stream and returns its Serato objects.
func FromReader(rd io.Reader) ([]Object, error) {
	t, err := id3v2.ParseReader(rd, id3v2.Options{Parse: true, ParseFrames: []string{"GEOB"}})
	if err != nil {
		return nil, fmt.Errorf("parse id3: %w", err)
	}

	return FromTag(t), nil
}

// FromFile opens an audio file with an ID3v2 header and returns its Serato
// objects.
func FromFile(path string) ([]Object, error) {
	t, err := id3v2.Open(path, id3v2.Options{Parse: true, ParseFrames: []string{"GEOB"}})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer t.Close()

	return FromTag(t), nil
}

// Embed stores each tag in the ID3v2 tag as a GEOB frame under the tag's
// name, replacing any Serato frame already stored under that name. Frames
// written by other software stay untouched.
func Embed(t *id3v2.Tag, tags ...tag.Tag) {
	replaced := make(map[string]bool, len(tags))
	for _, tg := range tags {
		replaced[tg.Name()] = true
	}

	var kept []id3v2.Framer
	for _, frame := range t.GetFrames("GEOB") {
		unknown, ok := frame.(id3v2.UnknownFrame)
		if ok {
			o, err := ParseObject(unknown.Body)
			if err == nil && replaced[o.Description] {
				continue
			}
		}
		kept = append(kept, frame)
	}

	t.DeleteFrames("GEOB")
	for _, frame := range kept {
		t.AddFrame("GEOB", frame)
	}
	for _, tg := range tags {
		o := Object{
			MimeType:    octetStream,
			Description: tg.Name(),
			Data:        tg.Encode(),
		}
		t.AddFrame("GEOB", id3v2.UnknownFrame{Body: o.FrameBody()})
	}
}
