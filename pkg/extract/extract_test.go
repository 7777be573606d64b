package extract

import (
	"bytes"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cratekit/seratag/pkg/codec"
	"github.com/cratekit/seratag/pkg/tag"
)

// geobFrame wraps a GEOB body in an ID3v2.3 frame header.
func geobFrame(body []byte) []byte {
	n := len(body)
	frame := []byte{
		'G', 'E', 'O', 'B',
		byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n),
		0x00, 0x00,
	}

	return append(frame, body...)
}

// id3v23Stream prefixes frames with an ID3v2.3 header. The header size is
// synchsafe, seven payload bits per byte.
func id3v23Stream(frames ...[]byte) []byte {
	var body []byte
	for _, f := range frames {
		body = append(body, f...)
	}
	n := len(body)
	header := []byte{
		'I', 'D', '3', 0x03, 0x00, 0x00,
		byte((n >> 21) & 0x7F), byte((n >> 14) & 0x7F), byte((n >> 7) & 0x7F), byte(n & 0x7F),
	}

	return append(header, body...)
}

func TestParseObject_RoundTrip(t *testing.T) {
	in := Object{
		Encoding:    0,
		MimeType:    octetStream,
		Filename:    "",
		Description: tag.AnalysisName,
		Data:        []byte{0x02, 0x01},
	}

	out, err := ParseObject(in.FrameBody())
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestParseObject_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body []byte
		want error
	}{
		{"empty", nil, codec.ErrShortInput},
		{"unterminated mime type", []byte{0x00, 'a', 'b'}, codec.ErrShortInput},
		{"mime type not utf8", []byte{0x00, 0x61, 0xFF, 0x00}, codec.ErrInvalidUTF8},
		{"missing description", append([]byte{0x00}, "application/octet-stream\x00\x00"...), codec.ErrShortInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseObject(tt.body)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFromTag(t *testing.T) {
	markers2 := tag.NewMarkers2([]tag.Marker{
		tag.Cue{Index: 0, PositionMillis: 1000, Label: "Drop"},
	})

	id3 := id3v2.NewEmptyTag()
	id3.AddFrame("GEOB", id3v2.UnknownFrame{Body: Object{
		MimeType:    octetStream,
		Description: tag.Markers2Name,
		Data:        markers2.Encode(),
	}.FrameBody()})
	id3.AddFrame("GEOB", id3v2.UnknownFrame{Body: []byte{0x00}})
	id3.AddFrame("GEOB", id3v2.UnknownFrame{Body: Object{
		MimeType:    "image/png",
		Description: "Album Cover",
		Data:        []byte{0x89, 0x50},
	}.FrameBody()})

	objects := FromTag(id3)
	require.Len(t, objects, 1)
	assert.Equal(t, tag.Markers2Name, objects[0].Description)

	parsed, err := tag.ParseMarkers2(objects[0].Data)
	require.NoError(t, err)
	require.Len(t, parsed.Cues(), 1)
	assert.Equal(t, "Drop", parsed.Cues()[0].Label)
}

func TestFromReader_RawStream(t *testing.T) {
	analysis := Object{
		MimeType:    octetStream,
		Description: tag.AnalysisName,
		Data:        []byte{0x02, 0x01},
	}
	autotags := Object{
		MimeType:    octetStream,
		Description: tag.AutotagsName,
		Data:        tag.NewAutotags(115, -3.257, 0).Encode(),
	}
	stream := id3v23Stream(
		geobFrame(analysis.FrameBody()),
		geobFrame(autotags.FrameBody()),
	)

	objects, err := FromReader(bytes.NewReader(stream))
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, tag.AnalysisName, objects[0].Description)
	assert.Equal(t, tag.AutotagsName, objects[1].Description)

	for _, o := range objects {
		decoded, err := tag.Parse(o.Description, o.Data)
		require.NoError(t, err)
		assert.Equal(t, o.Data, decoded.Encode())
	}
}

func TestFromReader_NoID3Header(t *testing.T) {
	objects, err := FromReader(bytes.NewReader([]byte("not an id3 stream")))
	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestEmbed(t *testing.T) {
	id3 := id3v2.NewEmptyTag()
	id3.AddFrame("GEOB", id3v2.UnknownFrame{Body: Object{
		MimeType:    "image/png",
		Description: "Album Cover",
		Data:        []byte{0x89, 0x50},
	}.FrameBody()})

	Embed(id3,
		tag.NewMarkers2([]tag.Marker{tag.Cue{Index: 0, PositionMillis: 1000, Label: "Drop"}}),
		tag.NewAutotags(120, 0, 0),
	)
	require.Len(t, id3.GetFrames("GEOB"), 3)

	objects := FromTag(id3)
	require.Len(t, objects, 2, "foreign objects are not Serato tags")
	assert.Equal(t, octetStream, objects[0].MimeType)
	assert.Equal(t, "", objects[0].Filename)

	t.Run("replaces same description", func(t *testing.T) {
		Embed(id3, tag.NewMarkers2([]tag.Marker{
			tag.Cue{Index: 1, PositionMillis: 2000, Label: "Build"},
		}))

		require.Len(t, id3.GetFrames("GEOB"), 3)
		var markers2 *tag.Markers2
		for _, o := range FromTag(id3) {
			if o.Description != tag.Markers2Name {
				continue
			}
			parsed, err := tag.ParseMarkers2(o.Data)
			require.NoError(t, err)
			markers2 = parsed
		}
		require.NotNil(t, markers2)
		require.Len(t, markers2.Cues(), 1)
		assert.Equal(t, "Build", markers2.Cues()[0].Label)
	})
}
