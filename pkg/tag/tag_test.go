package tag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Dispatch(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{
			name:  AnalysisName,
			input: []byte{0x02, 0x01},
		},
		{
			name:  AutotagsName,
			input: []byte("\x01\x01115.00\x00-3.257\x000.000\x00"),
		},
		{
			name: BeatgridName,
			input: []byte{
				0x01, 0x00, 0x00, 0x00, 0x00, 0x01,
				0x3F, 0x00, 0x00, 0x00, 0x42, 0xF0, 0x00, 0x00,
			},
		},
		{
			name: MarkersName,
			input: []byte{
				0x02, 0x05, 0x00, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x00,
			},
		},
		{
			name:  Markers2Name,
			input: markers2Bytes(markers2GoldenBody, 0x00),
		},
		{
			name:  OverviewName,
			input: []byte{0x01, 0x05},
		},
		{
			name:  RelVolAdName,
			input: []byte{0x01, 0x01, 0x01, 0x00, 0x00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Parse(tt.name, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.name, parsed.Name())
			assert.Equal(t, tt.input, parsed.Encode())
		})
	}
}

func TestParse_UnknownName(t *testing.T) {
	parsed, err := Parse("Serato Playcount", []byte{0x01, 0x01})
	assert.Nil(t, parsed)
	assert.ErrorIs(t, err, ErrUnknownTag)
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Equal(t, []string{
		AnalysisName,
		AutotagsName,
		BeatgridName,
		MarkersName,
		Markers2Name,
		OverviewName,
		RelVolAdName,
	}, names)

	for _, name := range names {
		_, err := Parse(name, nil)
		assert.NotErrorIs(t, err, ErrUnknownTag)
	}
}

func TestParseStrict(t *testing.T) {
	mismatched := markers2Bytes("AQFDVUUAAAAADwACAAAJxAAAAMwAAFgAqgA=")

	lenient, err := Parse(Markers2Name, mismatched)
	require.NoError(t, err)
	assert.Equal(t, mismatched, lenient.Encode())

	_, err = ParseStrict(Markers2Name, mismatched)
	assert.ErrorIs(t, err, ErrLengthMismatch)

	parsed, err := ParseStrict(AnalysisName, []byte{0x02, 0x01})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x01}, parsed.Encode())

	_, err = ParseStrict("Serato Playcount", []byte{0x01})
	assert.ErrorIs(t, err, ErrUnknownTag)
}
