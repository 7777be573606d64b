package tag

import (
	"fmt"

	"github.com/cratekit/seratag/pkg/codec"
)

// Markers is the legacy cue tag. It stores a fixed table of cue and loop
// slots plus the track color; newer hosts keep writing it alongside
// Markers2 for older versions, and its values win when both tags disagree.
type Markers struct {
	Version    Version       `json:"version"`
	Entries    []MarkerEntry `json:"entries"`
	TrackColor codec.Color   `json:"track_color"`

	Footer []byte `json:"footer,omitempty"`
}

// MarkerEntry is one 22-byte slot of the legacy cue table. Start and end
// are nil for an empty slot.
type MarkerEntry struct {
	StartMillis *uint32     `json:"start_millis"`
	EndMillis   *uint32     `json:"end_millis"`
	Color       codec.Color `json:"color"`
	Type        EntryType   `json:"type"`
	IsLocked    bool        `json:"is_locked"`
}

// EntryType tells cue slots from loop slots. Values outside the known set
// are preserved as read.
type EntryType uint8

const (
	EntryTypeInvalid EntryType = 0
	EntryTypeCue     EntryType = 1
	EntryTypeLoop    EntryType = 3
)

func (t EntryType) String() string {
	switch t {
	case EntryTypeInvalid:
		return "invalid"
	case EntryTypeCue:
		return "cue"
	case EntryTypeLoop:
		return "loop"
	}

	return fmt.Sprintf("unknown(%d)", uint8(t))
}

// entryPadding sits between the end position and the color of every entry.
var entryPadding = []byte{0x00, 0x7f, 0x7f, 0x7f, 0x7f, 0x7f}

// ParseMarkers decodes the legacy Markers_ tag.
func ParseMarkers(data []byte) (*Markers, error) {
	r := codec.NewReader(data)

	version, err := readVersion(r)
	if err != nil {
		return nil, fmt.Errorf("markers: %w", err)
	}
	count, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("markers: entry count: %w", err)
	}

	// Every entry is 22 bytes and the track color follows the table. Check
	// the count against the remaining input before allocating for it.
	if uint64(r.Len()) < uint64(count)*22+4 {
		return nil, fmt.Errorf("markers: %d entries declared, %d bytes remain: %w", count, r.Len(), codec.ErrShortInput)
	}

	entries := make([]MarkerEntry, count)
	for i := range entries {
		e, err := readMarkerEntry(r)
		if err != nil {
			return nil, fmt.Errorf("markers: entry %d: %w", i, err)
		}
		entries[i] = e
	}
	if len(entries) == 0 {
		entries = nil
	}

	trackColor, err := readSerato32Color(r)
	if err != nil {
		return nil, fmt.Errorf("markers: track color: %w", err)
	}

	return &Markers{
		Version:    version,
		Entries:    entries,
		TrackColor: trackColor,
		Footer:     takeFooter(r),
	}, nil
}

func readMarkerEntry(r *codec.Reader) (MarkerEntry, error) {
	var e MarkerEntry
	var err error

	if e.StartMillis, err = readMarkerPosition(r); err != nil {
		return e, fmt.Errorf("start position: %w", err)
	}
	if e.EndMillis, err = readMarkerPosition(r); err != nil {
		return e, fmt.Errorf("end position: %w", err)
	}
	if err = expectBytes(r, entryPadding); err != nil {
		return e, err
	}
	if e.Color, err = readSerato32Color(r); err != nil {
		return e, fmt.Errorf("color: %w", err)
	}
	typ, err := r.ReadUint8()
	if err != nil {
		return e, fmt.Errorf("type: %w", err)
	}
	e.Type = EntryType(typ)
	if e.IsLocked, err = r.ReadBool(); err != nil {
		return e, fmt.Errorf("lock flag: %w", err)
	}

	return e, nil
}

// readMarkerPosition reads an optional position: a 0x00 prefix followed by
// a serato32 value, or a 0x7f prefix followed by four 0x7f bytes for an
// empty slot.
func readMarkerPosition(r *codec.Reader) (*uint32, error) {
	prefix, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}

	switch prefix {
	case 0x00:
		enc, err := r.ReadBytes(4)
		if err != nil {
			return nil, err
		}
		v, err := codec.DecodeSerato32Uint32([4]byte(enc))
		if err != nil {
			return nil, err
		}

		return &v, nil

	case 0x7f:
		if err := expectBytes(r, []byte{0x7f, 0x7f, 0x7f, 0x7f}); err != nil {
			return nil, err
		}

		return nil, nil
	}

	return nil, fmt.Errorf("position prefix %#02x: %w", prefix, ErrInvalidData)
}

func readSerato32Color(r *codec.Reader) (codec.Color, error) {
	enc, err := r.ReadBytes(4)
	if err != nil {
		return codec.Color{}, err
	}

	return codec.DecodeSerato32Color([4]byte(enc))
}

// Name returns the GEOB description of the tag.
func (m *Markers) Name() string { return MarkersName }

// Encode serializes the tag.
func (m *Markers) Encode() []byte {
	var w codec.Writer
	writeVersion(&w, m.Version)
	w.WriteUint32(uint32(len(m.Entries)))
	for _, e := range m.Entries {
		writeMarkerEntry(&w, e)
	}
	enc := m.TrackColor.EncodeSerato32()
	w.WriteBytes(enc[:])
	w.WriteBytes(m.Footer)

	return w.Bytes()
}

func writeMarkerEntry(w *codec.Writer, e MarkerEntry) {
	writeMarkerPosition(w, e.StartMillis)
	writeMarkerPosition(w, e.EndMillis)
	w.WriteBytes(entryPadding)
	enc := e.Color.EncodeSerato32()
	w.WriteBytes(enc[:])
	w.WriteUint8(uint8(e.Type))
	w.WriteBool(e.IsLocked)
}

func writeMarkerPosition(w *codec.Writer, millis *uint32) {
	if millis == nil {
		w.WriteBytes([]byte{0x7f, 0x7f, 0x7f, 0x7f, 0x7f})
		return
	}

	w.WriteUint8(0x00)
	enc := codec.EncodeSerato32Uint32(*millis)
	w.WriteBytes(enc[:])
}
