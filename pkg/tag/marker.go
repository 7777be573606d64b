package tag

import (
	"bytes"
	"fmt"

	"github.com/cratekit/seratag/pkg/codec"
)

// Entry names as stored on disk.
const (
	cueName        = "CUE"
	loopName       = "LOOP"
	flipName       = "FLIP"
	bpmLockName    = "BPMLOCK"
	trackColorName = "COLOR"
)

// Marker is a single entry in the Markers2 tag. The concrete types are Cue,
// Loop, Flip, BPMLock, TrackColor and UnknownMarker.
type Marker interface {
	// Name returns the entry's name tag as stored on disk.
	Name() string

	// payload serializes the entry body without the name and length header.
	payload() []byte
}

// Cue is a hot cue point.
type Cue struct {
	Index          uint8       `json:"index"`
	PositionMillis uint32      `json:"position_millis"`
	Color          codec.Color `json:"color"`
	Label          string      `json:"label"`
}

// Name returns "CUE".
func (c Cue) Name() string { return cueName }

func (c Cue) payload() []byte {
	var w codec.Writer
	w.WriteUint8(0)
	w.WriteUint8(c.Index)
	w.WriteUint32(c.PositionMillis)
	w.WriteUint8(0)
	w.WriteColor(c.Color)
	w.WriteBytes([]byte{0, 0})
	w.WriteCString(c.Label)

	return w.Bytes()
}

func decodeCue(payload []byte) (Cue, error) {
	r := codec.NewReader(payload)

	if err := expectByte(r, 0); err != nil {
		return Cue{}, err
	}
	index, err := r.ReadUint8()
	if err != nil {
		return Cue{}, err
	}
	position, err := r.ReadUint32()
	if err != nil {
		return Cue{}, err
	}
	if err := expectByte(r, 0); err != nil {
		return Cue{}, err
	}
	color, err := r.ReadColor()
	if err != nil {
		return Cue{}, err
	}
	if err := expectBytes(r, []byte{0, 0}); err != nil {
		return Cue{}, err
	}
	label, err := r.ReadText()
	if err != nil {
		return Cue{}, err
	}
	if r.Len() != 0 {
		return Cue{}, fmt.Errorf("%d bytes after label: %w", r.Len(), ErrLengthMismatch)
	}

	return Cue{
		Index:          index,
		PositionMillis: position,
		Color:          color,
		Label:          label,
	}, nil
}

// Loop is a saved loop region.
type Loop struct {
	Index       uint8       `json:"index"`
	StartMillis uint32      `json:"start_millis"`
	EndMillis   uint32      `json:"end_millis"`
	Color       codec.Color `json:"color"`
	IsLocked    bool        `json:"is_locked"`
	Label       string      `json:"label"`
}

// Name returns "LOOP".
func (l Loop) Name() string { return loopName }

func (l Loop) payload() []byte {
	var w codec.Writer
	w.WriteUint8(0)
	w.WriteUint8(l.Index)
	w.WriteUint32(l.StartMillis)
	w.WriteUint32(l.EndMillis)
	w.WriteBytes([]byte{0xFF, 0xFF, 0xFF, 0xFF})
	w.WriteUint8(0)
	w.WriteColor(l.Color)
	w.WriteUint8(0)
	w.WriteBool(l.IsLocked)
	w.WriteCString(l.Label)

	return w.Bytes()
}

func decodeLoop(payload []byte) (Loop, error) {
	r := codec.NewReader(payload)

	if err := expectByte(r, 0); err != nil {
		return Loop{}, err
	}
	index, err := r.ReadUint8()
	if err != nil {
		return Loop{}, err
	}
	start, err := r.ReadUint32()
	if err != nil {
		return Loop{}, err
	}
	end, err := r.ReadUint32()
	if err != nil {
		return Loop{}, err
	}
	if err := expectBytes(r, []byte{0xFF, 0xFF, 0xFF, 0xFF}); err != nil {
		return Loop{}, err
	}
	if err := expectByte(r, 0); err != nil {
		return Loop{}, err
	}
	color, err := r.ReadColor()
	if err != nil {
		return Loop{}, err
	}
	if err := expectByte(r, 0); err != nil {
		return Loop{}, err
	}
	locked, err := r.ReadBool()
	if err != nil {
		return Loop{}, err
	}
	label, err := r.ReadText()
	if err != nil {
		return Loop{}, err
	}
	if r.Len() != 0 {
		return Loop{}, fmt.Errorf("%d bytes after label: %w", r.Len(), ErrLengthMismatch)
	}

	return Loop{
		Index:       index,
		StartMillis: start,
		EndMillis:   end,
		Color:       color,
		IsLocked:    locked,
		Label:       label,
	}, nil
}

// BPMLock records whether the track's BPM is locked against re-analysis.
type BPMLock struct {
	IsLocked bool `json:"is_locked"`
}

// Name returns "BPMLOCK".
func (b BPMLock) Name() string { return bpmLockName }

func (b BPMLock) payload() []byte {
	var w codec.Writer
	w.WriteBool(b.IsLocked)

	return w.Bytes()
}

func decodeBPMLock(payload []byte) (BPMLock, error) {
	r := codec.NewReader(payload)

	locked, err := r.ReadBool()
	if err != nil {
		return BPMLock{}, err
	}
	if r.Len() != 0 {
		return BPMLock{}, fmt.Errorf("%d trailing bytes: %w", r.Len(), ErrLengthMismatch)
	}

	return BPMLock{IsLocked: locked}, nil
}

// TrackColor is the color shown for the whole track in the library.
type TrackColor struct {
	Color codec.Color `json:"color"`
}

// Name returns "COLOR".
func (t TrackColor) Name() string { return trackColorName }

func (t TrackColor) payload() []byte {
	var w codec.Writer
	w.WriteUint8(0)
	w.WriteColor(t.Color)

	return w.Bytes()
}

func decodeTrackColor(payload []byte) (TrackColor, error) {
	r := codec.NewReader(payload)

	if err := expectByte(r, 0); err != nil {
		return TrackColor{}, err
	}
	color, err := r.ReadColor()
	if err != nil {
		return TrackColor{}, err
	}
	if r.Len() != 0 {
		return TrackColor{}, fmt.Errorf("%d trailing bytes: %w", r.Len(), ErrLengthMismatch)
	}

	return TrackColor{Color: color}, nil
}

// UnknownMarker preserves an entry whose name or payload layout is not
// recognized. The raw bytes are kept verbatim so the tag re-encodes byte
// for byte.
type UnknownMarker struct {
	MarkerName string `json:"name"`
	Data       []byte `json:"data"`
}

// Name returns the entry name found on disk.
func (u UnknownMarker) Name() string { return u.MarkerName }

func (u UnknownMarker) payload() []byte { return u.Data }

// decodeMarker dispatches a named payload to its specific decoder. A known
// entry whose payload does not match the expected layout exactly is kept
// raw in the default mode and rejected in strict mode; entries with
// unrecognized names are always kept raw.
func decodeMarker(name string, payload []byte, strict bool) (Marker, error) {
	var (
		m   Marker
		err error
	)

	switch name {
	case cueName:
		m, err = decodeCue(payload)
	case loopName:
		m, err = decodeLoop(payload)
	case flipName:
		m, err = decodeFlip(payload, strict)
	case bpmLockName:
		m, err = decodeBPMLock(payload)
	case trackColorName:
		m, err = decodeTrackColor(payload)
	default:
		return UnknownMarker{MarkerName: name, Data: bytes.Clone(payload)}, nil
	}

	if err != nil {
		if strict {
			return nil, fmt.Errorf("%s entry: %w", name, err)
		}
		return UnknownMarker{MarkerName: name, Data: bytes.Clone(payload)}, nil
	}

	return m, nil
}
