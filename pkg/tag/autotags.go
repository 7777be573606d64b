package tag

import (
	"fmt"
	"strconv"

	"github.com/cratekit/seratag/pkg/codec"
)

// Autotags carries the analyzer's BPM and gain results, stored as
// NUL-terminated ASCII decimals.
type Autotags struct {
	Version  Version `json:"version"`
	BPM      float64 `json:"bpm"`
	AutoGain float64 `json:"auto_gain"`
	GainDB   float64 `json:"gain_db"`

	Footer []byte `json:"footer,omitempty"`
}

// NewAutotags returns a tag carrying the version current Serato releases
// write.
func NewAutotags(bpm, autoGain, gainDB float64) *Autotags {
	return &Autotags{
		Version:  Version{Major: 1, Minor: 1},
		BPM:      bpm,
		AutoGain: autoGain,
		GainDB:   gainDB,
	}
}

// ParseAutotags decodes the Autotags tag.
func ParseAutotags(data []byte) (*Autotags, error) {
	r := codec.NewReader(data)

	version, err := readVersion(r)
	if err != nil {
		return nil, fmt.Errorf("autotags: %w", err)
	}
	bpm, err := readASCIIFloat(r)
	if err != nil {
		return nil, fmt.Errorf("autotags: bpm: %w", err)
	}
	autoGain, err := readASCIIFloat(r)
	if err != nil {
		return nil, fmt.Errorf("autotags: auto gain: %w", err)
	}
	gainDB, err := readASCIIFloat(r)
	if err != nil {
		return nil, fmt.Errorf("autotags: gain db: %w", err)
	}

	return &Autotags{
		Version:  version,
		BPM:      bpm,
		AutoGain: autoGain,
		GainDB:   gainDB,
		Footer:   takeFooter(r),
	}, nil
}

func readASCIIFloat(r *codec.Reader) (float64, error) {
	b, err := r.ReadCString()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", b, ErrInvalidData)
	}

	return v, nil
}

// Name returns the GEOB description of the tag.
func (a *Autotags) Name() string { return AutotagsName }

// Encode serializes the tag. Values are formatted the way the host writes
// them: two decimal places for the BPM, three for the gains.
func (a *Autotags) Encode() []byte {
	var w codec.Writer
	writeVersion(&w, a.Version)
	w.WriteCString(strconv.FormatFloat(a.BPM, 'f', 2, 64))
	w.WriteCString(strconv.FormatFloat(a.AutoGain, 'f', 3, 64))
	w.WriteCString(strconv.FormatFloat(a.GainDB, 'f', 3, 64))
	w.WriteBytes(a.Footer)

	return w.Bytes()
}
