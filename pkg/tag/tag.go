package tag

import "fmt"

// GEOB descriptions under which Serato stores each tag in ID3 containers.
const (
	AnalysisName = "Serato Analysis"
	AutotagsName = "Serato Autotags"
	BeatgridName = "Serato BeatGrid"
	MarkersName  = "Serato Markers_"
	Markers2Name = "Serato Markers2"
	OverviewName = "Serato Overview"
	RelVolAdName = "Serato RelVolAd"
)

// Tag is implemented by every decoded Serato tag type.
type Tag interface {
	// Name returns the GEOB description the tag is stored under.
	Name() string

	// Encode serializes the tag back to its binary form. Encoding a tag
	// that was just parsed reproduces the original input byte for byte.
	Encode() []byte
}

// Errors
var (
	ErrInvalidBase64  = &FormatError{"malformed base64 content"}
	ErrLengthMismatch = &FormatError{"declared length does not match content"}
	ErrInvalidData    = &FormatError{"malformed tag data"}
	ErrUnknownTag     = &FormatError{"unrecognized tag name"}
)

// FormatError represents a structural decoding failure
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string {
	return e.Message
}

// Names lists the tag names Parse recognizes, in tag name order.
func Names() []string {
	return []string{
		AnalysisName,
		AutotagsName,
		BeatgridName,
		MarkersName,
		Markers2Name,
		OverviewName,
		RelVolAdName,
	}
}

// Parse decodes data as the named tag. The name is the GEOB description
// the body was stored under, such as "Serato Markers2".
func Parse(name string, data []byte) (Tag, error) {
	var (
		t   Tag
		err error
	)

	switch name {
	case AnalysisName:
		t, err = ParseAnalysis(data)
	case AutotagsName:
		t, err = ParseAutotags(data)
	case BeatgridName:
		t, err = ParseBeatgrid(data)
	case MarkersName:
		t, err = ParseMarkers(data)
	case Markers2Name:
		t, err = ParseMarkers2(data)
	case OverviewName:
		t, err = ParseOverview(data)
	case RelVolAdName:
		t, err = ParseRelVolAd(data)
	default:
		return nil, fmt.Errorf("tag name %q: %w", name, ErrUnknownTag)
	}
	if err != nil {
		return nil, err
	}

	return t, nil
}

// ParseStrict decodes data as the named tag like Parse, but rejects known
// marker entries whose payload length does not match instead of keeping
// them as unknown entries. Only Markers2 distinguishes the two modes.
func ParseStrict(name string, data []byte) (Tag, error) {
	if name == Markers2Name {
		t, err := ParseMarkers2Strict(data)
		if err != nil {
			return nil, err
		}

		return t, nil
	}

	return Parse(name, data)
}
