package tag

import (
	"encoding/json"
	"fmt"
)

// JSON kind discriminators for the polymorphic entry lists.
const (
	markerKindCue        = "cue"
	markerKindLoop       = "loop"
	markerKindFlip       = "flip"
	markerKindBPMLock    = "bpm_lock"
	markerKindTrackColor = "track_color"
	markerKindUnknown    = "unknown"

	actionKindJump    = "jump"
	actionKindCensor  = "censor"
	actionKindUnknown = "unknown"
)

// MarkerList is the entry list of a Markers2 tag. Its JSON form tags every
// entry with a "type" discriminator so the list survives a round trip
// through encoding/json.
type MarkerList []Marker

// MarshalJSON implements json.Marshaler.
func (l MarkerList) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, len(l))
	for i, m := range l {
		raw, err := marshalMarker(m)
		if err != nil {
			return nil, err
		}
		out[i] = raw
	}

	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *MarkerList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*l = nil
		return nil
	}

	out := make(MarkerList, len(raw))
	for i, r := range raw {
		m, err := unmarshalMarker(r)
		if err != nil {
			return fmt.Errorf("marker %d: %w", i, err)
		}
		out[i] = m
	}
	*l = out

	return nil
}

func marshalMarker(m Marker) (json.RawMessage, error) {
	switch m := m.(type) {
	case Cue:
		return json.Marshal(struct {
			Type string `json:"type"`
			Cue
		}{markerKindCue, m})
	case Loop:
		return json.Marshal(struct {
			Type string `json:"type"`
			Loop
		}{markerKindLoop, m})
	case Flip:
		return json.Marshal(struct {
			Type string `json:"type"`
			Flip
		}{markerKindFlip, m})
	case BPMLock:
		return json.Marshal(struct {
			Type string `json:"type"`
			BPMLock
		}{markerKindBPMLock, m})
	case TrackColor:
		return json.Marshal(struct {
			Type string `json:"type"`
			TrackColor
		}{markerKindTrackColor, m})
	case UnknownMarker:
		return json.Marshal(struct {
			Type string `json:"type"`
			UnknownMarker
		}{markerKindUnknown, m})
	}

	return nil, fmt.Errorf("marker type %T has no JSON form", m)
}

func unmarshalMarker(data []byte) (Marker, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	switch probe.Type {
	case markerKindCue:
		var m Cue
		return m, json.Unmarshal(data, &m)
	case markerKindLoop:
		var m Loop
		return m, json.Unmarshal(data, &m)
	case markerKindFlip:
		var m Flip
		return m, json.Unmarshal(data, &m)
	case markerKindBPMLock:
		var m BPMLock
		return m, json.Unmarshal(data, &m)
	case markerKindTrackColor:
		var m TrackColor
		return m, json.Unmarshal(data, &m)
	case markerKindUnknown:
		var m UnknownMarker
		return m, json.Unmarshal(data, &m)
	}

	return nil, fmt.Errorf("marker type %q: %w", probe.Type, ErrInvalidData)
}

// FlipActions is the action list of a Flip entry, JSON-tagged the same way
// as MarkerList.
type FlipActions []FlipAction

// MarshalJSON implements json.Marshaler.
func (l FlipActions) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, len(l))
	for i, a := range l {
		raw, err := marshalFlipAction(a)
		if err != nil {
			return nil, err
		}
		out[i] = raw
	}

	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *FlipActions) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*l = nil
		return nil
	}

	out := make(FlipActions, len(raw))
	for i, r := range raw {
		a, err := unmarshalFlipAction(r)
		if err != nil {
			return fmt.Errorf("action %d: %w", i, err)
		}
		out[i] = a
	}
	*l = out

	return nil
}

func marshalFlipAction(a FlipAction) (json.RawMessage, error) {
	switch a := a.(type) {
	case JumpAction:
		return json.Marshal(struct {
			Type string `json:"type"`
			JumpAction
		}{actionKindJump, a})
	case CensorAction:
		return json.Marshal(struct {
			Type string `json:"type"`
			CensorAction
		}{actionKindCensor, a})
	case UnknownAction:
		return json.Marshal(struct {
			Type string `json:"type"`
			UnknownAction
		}{actionKindUnknown, a})
	}

	return nil, fmt.Errorf("flip action type %T has no JSON form", a)
}

func unmarshalFlipAction(data []byte) (FlipAction, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	switch probe.Type {
	case actionKindJump:
		var a JumpAction
		return a, json.Unmarshal(data, &a)
	case actionKindCensor:
		var a CensorAction
		return a, json.Unmarshal(data, &a)
	case actionKindUnknown:
		var a UnknownAction
		return a, json.Unmarshal(data, &a)
	}

	return nil, fmt.Errorf("flip action type %q: %w", probe.Type, ErrInvalidData)
}

// UnmarshalTag decodes the JSON form of the named tag, the inverse of
// marshaling a parsed tag with encoding/json.
func UnmarshalTag(name string, data []byte) (Tag, error) {
	var t Tag
	switch name {
	case AnalysisName:
		t = &Analysis{}
	case AutotagsName:
		t = &Autotags{}
	case BeatgridName:
		t = &Beatgrid{}
	case MarkersName:
		t = &Markers{}
	case Markers2Name:
		t = &Markers2{}
	case OverviewName:
		t = &Overview{}
	case RelVolAdName:
		t = &RelVolAd{}
	default:
		return nil, fmt.Errorf("tag name %q: %w", name, ErrUnknownTag)
	}

	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return t, nil
}
