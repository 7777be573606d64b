package tag

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cratekit/seratag/pkg/codec"
)

// Decoded body: a CUE "Drop" at 125000 ms colored #cc0000, an unlocked
// BPMLOCK and the NUL terminator.
const markers2GoldenBody = "AQFDVUUAAAAAEQAAAAHoSADMAAAAAERyb3AAQlBNTE9DSwAAAAABAAA="

// Decoded body: COLOR #999999, CUE 1 "Intro", LOOP "Verse", an
// unrecognized FUTR entry and a set BPMLOCK. Long enough to span two
// base64 lines.
const markers2MultiLineBody = "AQFDT0xPUgAAAAAEAJmZmUNVRQAAAAASAAEAAAPoAADMAAAASW50cm8ATE9PUAAAAAAaAAAA\n" +
	"AAPoAAATiP////8AJ6rhAAFWZXJzZQBGVVRSAAAAAATerb7vQlBNTE9DSwAAAAABAQA="

func markers2Bytes(body string, footer ...byte) []byte {
	data := append([]byte{0x01, 0x01}, body...)

	return append(data, footer...)
}

func TestParseMarkers2_Golden(t *testing.T) {
	input := markers2Bytes(markers2GoldenBody, 0x00, 0x00, 0x00)

	m, err := ParseMarkers2(input)
	require.NoError(t, err)

	assert.Equal(t, Version{Major: 1, Minor: 1}, m.Version)
	assert.Equal(t, Version{Major: 1, Minor: 1}, m.Content.Version)
	assert.Equal(t, []byte{0x00}, m.Content.Trailer)
	assert.Equal(t, []byte{0x00, 0x00, 0x00}, m.Footer)

	require.Len(t, m.Content.Markers, 2)
	cue, ok := m.Content.Markers[0].(Cue)
	require.True(t, ok, "entry 0 should be a cue")
	assert.Equal(t, Cue{
		Index:          0,
		PositionMillis: 125000,
		Color:          codec.Color{Red: 0xCC},
		Label:          "Drop",
	}, cue)

	lock, ok := m.Content.Markers[1].(BPMLock)
	require.True(t, ok, "entry 1 should be a bpm lock")
	assert.False(t, lock.IsLocked)

	assert.Equal(t, input, m.Encode())
}

func TestParseMarkers2_MultiLine(t *testing.T) {
	input := markers2Bytes(markers2MultiLineBody, 0x00, 0x00, 0x00, 0x00)

	m, err := ParseMarkers2(input)
	require.NoError(t, err)
	require.Len(t, m.Content.Markers, 5)

	color, ok := m.Content.Markers[0].(TrackColor)
	require.True(t, ok)
	assert.Equal(t, codec.Color{Red: 0x99, Green: 0x99, Blue: 0x99}, color.Color)

	cue, ok := m.Content.Markers[1].(Cue)
	require.True(t, ok)
	assert.Equal(t, Cue{
		Index:          1,
		PositionMillis: 1000,
		Color:          codec.Color{Green: 0xCC},
		Label:          "Intro",
	}, cue)

	loop, ok := m.Content.Markers[2].(Loop)
	require.True(t, ok)
	assert.Equal(t, Loop{
		Index:       0,
		StartMillis: 1000,
		EndMillis:   5000,
		Color:       codec.Color{Red: 0x27, Green: 0xAA, Blue: 0xE1},
		IsLocked:    true,
		Label:       "Verse",
	}, loop)

	unknown, ok := m.Content.Markers[3].(UnknownMarker)
	require.True(t, ok)
	assert.Equal(t, "FUTR", unknown.MarkerName)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, unknown.Data)

	lock, ok := m.Content.Markers[4].(BPMLock)
	require.True(t, ok)
	assert.True(t, lock.IsLocked)

	// Re-encoding restores the line break at the same position.
	assert.Equal(t, input, m.Encode())
}

func TestMarkers2_Accessors(t *testing.T) {
	m, err := ParseMarkers2(markers2Bytes(markers2MultiLineBody))
	require.NoError(t, err)

	cues := m.Cues()
	require.Len(t, cues, 1)
	assert.Equal(t, "Intro", cues[0].Label)

	loops := m.Loops()
	require.Len(t, loops, 1)
	assert.Equal(t, "Verse", loops[0].Label)

	assert.Empty(t, m.Flips())

	color, ok := m.TrackColor()
	require.True(t, ok)
	assert.Equal(t, "#999999", color.String())

	assert.True(t, m.BPMLocked())
}

func TestMarkers2_LenientKeepsMismatchedEntry(t *testing.T) {
	// The CUE payload carries a stray byte after the label terminator.
	input := markers2Bytes("AQFDVUUAAAAADwACAAAJxAAAAMwAAFgAqgA=")

	m, err := ParseMarkers2(input)
	require.NoError(t, err)
	require.Len(t, m.Content.Markers, 1)

	unknown, ok := m.Content.Markers[0].(UnknownMarker)
	require.True(t, ok, "mismatched cue should be kept raw")
	assert.Equal(t, "CUE", unknown.MarkerName)
	assert.Len(t, unknown.Data, 15)

	assert.Equal(t, input, m.Encode())
}

func TestMarkers2_StrictRejectsMismatchedEntry(t *testing.T) {
	input := markers2Bytes("AQFDVUUAAAAADwACAAAJxAAAAMwAAFgAqgA=")

	m, err := ParseMarkers2Strict(input)
	assert.Nil(t, m)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestMarkers2_ResyncAfterMismatchedEntry(t *testing.T) {
	// The same damaged CUE, now followed by a BPMLOCK. The declared length
	// still positions the cursor on the next entry.
	input := markers2Bytes("AQFDVUUAAAAADwACAAAJxAAAAMwAAFgAqkJQTUxPQ0sAAAAAAQEA")

	m, err := ParseMarkers2(input)
	require.NoError(t, err)
	require.Len(t, m.Content.Markers, 2)

	unknown, ok := m.Content.Markers[0].(UnknownMarker)
	require.True(t, ok)
	assert.Equal(t, "CUE", unknown.MarkerName)

	lock, ok := m.Content.Markers[1].(BPMLock)
	require.True(t, ok)
	assert.True(t, lock.IsLocked)

	assert.Equal(t, input, m.Encode())

	_, err = ParseMarkers2Strict(input)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestParseMarkers2_BadInput(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  error
	}{
		{
			name:  "truncated version",
			input: []byte{0x01},
			want:  codec.ErrShortInput,
		},
		{
			name:  "empty content",
			input: []byte{0x01, 0x01},
			want:  codec.ErrShortInput,
		},
		{
			name:  "non canonical base64",
			input: markers2Bytes("AB=="),
			want:  ErrInvalidBase64,
		},
		{
			name:  "partial base64 group",
			input: markers2Bytes("ABCDE"),
			want:  ErrLengthMismatch,
		},
		{
			name:  "entry length overruns content",
			input: markers2Bytes("AQFDVUUAAAAAYwAA"),
			want:  codec.ErrShortInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseMarkers2(tt.input)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, tt.want)

			// Framing damage fails in both modes.
			m, err = ParseMarkers2Strict(tt.input)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMarkers2_NewlinePreservedInFooter(t *testing.T) {
	// A newline with no base64 after it is padding, not a line break.
	input := markers2Bytes(markers2GoldenBody+"\n", 0x00, 0x00)

	m, err := ParseMarkers2(input)
	require.NoError(t, err)
	assert.Equal(t, []byte{'\n', 0x00, 0x00}, m.Footer)
	assert.Equal(t, input, m.Encode())
}

func TestNewMarkers2_RoundTrip(t *testing.T) {
	m := NewMarkers2([]Marker{
		Cue{Index: 0, PositionMillis: 1000, Color: codec.Color{Red: 0xCC}, Label: "Drop"},
		Cue{Index: 1, PositionMillis: 62500, Color: codec.Color{Blue: 0xCC}},
		Loop{Index: 0, StartMillis: 1000, EndMillis: 9000, Color: codec.Color{Red: 0x27, Green: 0xAA, Blue: 0xE1}, Label: "Outro"},
		TrackColor{Color: codec.Color{Red: 0xFF, Green: 0x99, Blue: 0x00}},
		BPMLock{IsLocked: true},
	})

	parsed, err := ParseMarkers2(m.Encode())
	require.NoError(t, err)
	assert.Equal(t, m, parsed)
}

func TestMarkers2Ogg_RoundTrip(t *testing.T) {
	// The OGG form has no outer version header.
	input := append([]byte(markers2GoldenBody), 0x00, 0x00)

	m, err := ParseMarkers2Ogg(input)
	require.NoError(t, err)
	require.Len(t, m.Content.Markers, 2)

	cue, ok := m.Content.Markers[0].(Cue)
	require.True(t, ok)
	assert.Equal(t, "Drop", cue.Label)

	assert.Equal(t, input, m.Encode())
}

func TestMarkers2Ogg_LongContentStaysSingleLine(t *testing.T) {
	markers := make([]Marker, 0, 8)
	for i := uint8(0); i < 8; i++ {
		markers = append(markers, Cue{Index: i, PositionMillis: uint32(i) * 4000, Label: "Cue"})
	}
	m := &Markers2Ogg{Content: NewMarkers2Content(markers)}

	encoded := m.Encode()
	assert.Greater(t, len(encoded), base64LineWidth)
	assert.NotContains(t, string(encoded), "\n")

	parsed, err := ParseMarkers2Ogg(encoded)
	require.NoError(t, err)
	assert.Equal(t, m, parsed)
}
