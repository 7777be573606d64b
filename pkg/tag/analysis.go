package tag

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cratekit/seratag/pkg/codec"
)

// Analysis records the analysis version a track was last scanned with.
// Serato re-analyzes a track when the stored version is older than its own.
type Analysis struct {
	Version Version `json:"version"`

	// Footer preserves any bytes after the version header verbatim.
	Footer []byte `json:"footer,omitempty"`
}

// ParseAnalysis decodes the ID3 form of the Analysis tag.
func ParseAnalysis(data []byte) (*Analysis, error) {
	r := codec.NewReader(data)

	version, err := readVersion(r)
	if err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}

	return &Analysis{Version: version, Footer: takeFooter(r)}, nil
}

// ParseAnalysisOgg decodes the OGG comment form of the Analysis tag, an
// ASCII "major.minor" string such as "2.1".
func ParseAnalysisOgg(data []byte) (*Analysis, error) {
	text := string(data)
	major, minor, ok := strings.Cut(text, ".")
	if !ok {
		return nil, fmt.Errorf("analysis ogg: %q: %w", text, ErrInvalidData)
	}
	maj, err := strconv.ParseUint(major, 10, 8)
	if err != nil {
		return nil, fmt.Errorf("analysis ogg: major %q: %w", major, ErrInvalidData)
	}
	mnr, err := strconv.ParseUint(minor, 10, 8)
	if err != nil {
		return nil, fmt.Errorf("analysis ogg: minor %q: %w", minor, ErrInvalidData)
	}

	return &Analysis{Version: Version{Major: uint8(maj), Minor: uint8(mnr)}}, nil
}

// Name returns the GEOB description of the tag.
func (a *Analysis) Name() string { return AnalysisName }

// Encode serializes the tag in its ID3 form.
func (a *Analysis) Encode() []byte {
	var w codec.Writer
	writeVersion(&w, a.Version)
	w.WriteBytes(a.Footer)

	return w.Bytes()
}

// EncodeOgg serializes the tag in its OGG comment form.
func (a *Analysis) EncodeOgg() []byte {
	return []byte(a.Version.String())
}
