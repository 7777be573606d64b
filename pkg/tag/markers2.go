package tag

import (
	"encoding/base64"
	"fmt"

	"github.com/cratekit/seratag/pkg/codec"
)

// Markers2 is the main cue metadata tag: hot cues, saved loops, flips, the
// track color and the BPM lock. The outer layer is a version header, a
// base64 region and padding; the decoded region is versioned again and
// holds the marker entries.
type Markers2 struct {
	Version Version         `json:"version"`
	Content Markers2Content `json:"content"`

	// Footer holds the padding after the base64 region, normally a run of
	// NUL bytes up to the tag's allocated size. It is preserved verbatim.
	Footer []byte `json:"footer,omitempty"`
}

// Markers2Content is the decoded base64 region of the Markers2 tag.
type Markers2Content struct {
	Version Version    `json:"version"`
	Markers MarkerList `json:"markers"`

	// Trailer holds the bytes after the last entry, normally a single NUL.
	// It is preserved verbatim.
	Trailer []byte `json:"trailer,omitempty"`
}

// NewMarkers2 returns an empty tag carrying the version and terminator
// bytes current Serato releases write.
func NewMarkers2(markers []Marker) *Markers2 {
	return &Markers2{
		Version: Version{Major: 1, Minor: 1},
		Content: NewMarkers2Content(markers),
	}
}

// NewMarkers2Content returns content carrying the version current Serato
// releases write and the single NUL terminator that follows the last entry
// in host files.
func NewMarkers2Content(markers []Marker) Markers2Content {
	return Markers2Content{
		Version: Version{Major: 1, Minor: 1},
		Markers: MarkerList(markers),
		Trailer: []byte{0},
	}
}

// ParseMarkers2 decodes the ID3 form of the Markers2 tag. Entries whose
// payload does not match the known layouts are preserved raw; see
// ParseMarkers2Strict for the rejecting variant.
func ParseMarkers2(data []byte) (*Markers2, error) {
	return parseMarkers2(data, false)
}

// ParseMarkers2Strict decodes like ParseMarkers2 but fails with
// ErrLengthMismatch or ErrInvalidData when a known entry's payload does not
// decode to exactly its declared length.
func ParseMarkers2Strict(data []byte) (*Markers2, error) {
	return parseMarkers2(data, true)
}

func parseMarkers2(data []byte, strict bool) (*Markers2, error) {
	r := codec.NewReader(data)

	version, err := readVersion(r)
	if err != nil {
		return nil, fmt.Errorf("markers2: %w", err)
	}
	encoded, err := readBase64Body(r)
	if err != nil {
		return nil, fmt.Errorf("markers2: %w", err)
	}
	footer := takeFooter(r)

	content, err := decodeMarkers2Content(encoded, strict)
	if err != nil {
		return nil, fmt.Errorf("markers2: %w", err)
	}

	return &Markers2{Version: version, Content: content, Footer: footer}, nil
}

// Name returns the GEOB description of the tag.
func (m *Markers2) Name() string { return Markers2Name }

// Encode serializes the tag in its ID3 form.
func (m *Markers2) Encode() []byte {
	var w codec.Writer
	writeVersion(&w, m.Version)
	writeBase64Body(&w, m.Content.encode())
	w.WriteBytes(m.Footer)

	return w.Bytes()
}

// Cues returns the cue entries in tag order.
func (m *Markers2) Cues() []Cue {
	var cues []Cue
	for _, marker := range m.Content.Markers {
		if c, ok := marker.(Cue); ok {
			cues = append(cues, c)
		}
	}

	return cues
}

// Loops returns the loop entries in tag order.
func (m *Markers2) Loops() []Loop {
	var loops []Loop
	for _, marker := range m.Content.Markers {
		if l, ok := marker.(Loop); ok {
			loops = append(loops, l)
		}
	}

	return loops
}

// Flips returns the flip entries in tag order.
func (m *Markers2) Flips() []Flip {
	var flips []Flip
	for _, marker := range m.Content.Markers {
		if f, ok := marker.(Flip); ok {
			flips = append(flips, f)
		}
	}

	return flips
}

// TrackColor returns the track color entry if the tag has one.
func (m *Markers2) TrackColor() (codec.Color, bool) {
	for _, marker := range m.Content.Markers {
		if t, ok := marker.(TrackColor); ok {
			return t.Color, true
		}
	}

	return codec.Color{}, false
}

// BPMLocked reports whether the tag carries a set BPM lock.
func (m *Markers2) BPMLocked() bool {
	for _, marker := range m.Content.Markers {
		if b, ok := marker.(BPMLock); ok {
			return b.IsLocked
		}
	}

	return false
}

// decodeMarkers2Content parses the decoded base64 region: a version header
// followed by name-tagged, length-prefixed entries. A NUL in name position
// ends the entry list; it and everything after it is kept as the trailer.
func decodeMarkers2Content(data []byte, strict bool) (Markers2Content, error) {
	r := codec.NewReader(data)

	version, err := readVersion(r)
	if err != nil {
		return Markers2Content{}, fmt.Errorf("content: %w", err)
	}

	var markers MarkerList
	for {
		b, ok := r.Peek()
		if !ok || b == 0 {
			break
		}

		name, err := r.ReadText()
		if err != nil {
			return Markers2Content{}, fmt.Errorf("entry name: %w", err)
		}
		length, err := r.ReadUint32()
		if err != nil {
			return Markers2Content{}, fmt.Errorf("%s entry length: %w", name, err)
		}
		payload, err := r.ReadBytes(int(length))
		if err != nil {
			return Markers2Content{}, fmt.Errorf("%s entry payload of %d bytes: %w", name, length, err)
		}

		m, err := decodeMarker(name, payload, strict)
		if err != nil {
			return Markers2Content{}, err
		}
		markers = append(markers, m)
	}

	return Markers2Content{
		Version: version,
		Markers: markers,
		Trailer: takeFooter(r),
	}, nil
}

func (c Markers2Content) encode() []byte {
	var w codec.Writer
	writeVersion(&w, c.Version)
	for _, m := range c.Markers {
		p := m.payload()
		w.WriteCString(m.Name())
		w.WriteUint32(uint32(len(p)))
		w.WriteBytes(p)
	}
	w.WriteBytes(c.Trailer)

	return w.Bytes()
}

// Markers2Ogg is the OGG comment form of the Markers2 tag. It omits the
// outer version header, writes the base64 region as a single line and is
// followed by padding.
type Markers2Ogg struct {
	Content Markers2Content `json:"content"`
	Footer  []byte          `json:"footer,omitempty"`
}

// ParseMarkers2Ogg decodes the OGG comment form of the Markers2 tag.
func ParseMarkers2Ogg(data []byte) (*Markers2Ogg, error) {
	r := codec.NewReader(data)

	encoded, err := readBase64Body(r)
	if err != nil {
		return nil, fmt.Errorf("markers2 ogg: %w", err)
	}
	footer := takeFooter(r)

	content, err := decodeMarkers2Content(encoded, false)
	if err != nil {
		return nil, fmt.Errorf("markers2 ogg: %w", err)
	}

	return &Markers2Ogg{Content: content, Footer: footer}, nil
}

// Encode serializes the tag in its OGG comment form.
func (m *Markers2Ogg) Encode() []byte {
	var w codec.Writer
	w.WriteBytes([]byte(base64.StdEncoding.EncodeToString(m.Content.encode())))
	w.WriteBytes(m.Footer)

	return w.Bytes()
}
