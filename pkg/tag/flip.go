package tag

import (
	"bytes"
	"fmt"

	"github.com/cratekit/seratag/pkg/codec"
)

// Flip action ids as stored on disk.
const (
	jumpActionID   = 0
	censorActionID = 1
)

// Flip is a recorded Serato Flip performance: an entry point plus a list of
// edit actions replayed during playback.
type Flip struct {
	Index     uint8       `json:"index"`
	IsEnabled bool        `json:"is_enabled"`
	Label     string      `json:"label"`
	IsLoop    bool        `json:"is_loop"`
	Actions   FlipActions `json:"actions"`
}

// Name returns "FLIP".
func (f Flip) Name() string { return flipName }

func (f Flip) payload() []byte {
	var w codec.Writer
	w.WriteUint8(0)
	w.WriteUint8(f.Index)
	w.WriteBool(f.IsEnabled)
	w.WriteCString(f.Label)
	w.WriteBool(f.IsLoop)
	w.WriteUint32(uint32(len(f.Actions)))
	for _, a := range f.Actions {
		p := a.payload()
		w.WriteUint8(a.id())
		w.WriteUint32(uint32(len(p)))
		w.WriteBytes(p)
	}

	return w.Bytes()
}

func decodeFlip(payload []byte, strict bool) (Flip, error) {
	r := codec.NewReader(payload)

	if err := expectByte(r, 0); err != nil {
		return Flip{}, err
	}
	index, err := r.ReadUint8()
	if err != nil {
		return Flip{}, err
	}
	enabled, err := r.ReadBool()
	if err != nil {
		return Flip{}, err
	}
	label, err := r.ReadText()
	if err != nil {
		return Flip{}, err
	}
	isLoop, err := r.ReadBool()
	if err != nil {
		return Flip{}, err
	}
	count, err := r.ReadUint32()
	if err != nil {
		return Flip{}, err
	}

	var actions FlipActions
	for i := uint32(0); i < count; i++ {
		a, err := decodeFlipAction(r, strict)
		if err != nil {
			return Flip{}, fmt.Errorf("action %d: %w", i, err)
		}
		actions = append(actions, a)
	}
	if r.Len() != 0 {
		return Flip{}, fmt.Errorf("%d bytes after actions: %w", r.Len(), ErrLengthMismatch)
	}

	return Flip{
		Index:     index,
		IsEnabled: enabled,
		Label:     label,
		IsLoop:    isLoop,
		Actions:   actions,
	}, nil
}

// FlipAction is one step of a Flip recording. The concrete types are
// JumpAction, CensorAction and UnknownAction.
type FlipAction interface {
	id() uint8
	payload() []byte
}

// JumpAction moves playback from a source position to a target position.
type JumpAction struct {
	SourceMillis float64 `json:"source_millis"`
	TargetMillis float64 `json:"target_millis"`
}

func (a JumpAction) id() uint8 { return jumpActionID }

func (a JumpAction) payload() []byte {
	var w codec.Writer
	w.WriteFloat64(a.SourceMillis)
	w.WriteFloat64(a.TargetMillis)

	return w.Bytes()
}

func decodeJumpAction(payload []byte) (JumpAction, error) {
	r := codec.NewReader(payload)

	source, err := r.ReadFloat64()
	if err != nil {
		return JumpAction{}, err
	}
	target, err := r.ReadFloat64()
	if err != nil {
		return JumpAction{}, err
	}
	if r.Len() != 0 {
		return JumpAction{}, fmt.Errorf("%d trailing bytes: %w", r.Len(), ErrLengthMismatch)
	}

	return JumpAction{SourceMillis: source, TargetMillis: target}, nil
}

// CensorAction plays a region at an altered speed, typically reversed, to
// mask explicit content.
type CensorAction struct {
	StartMillis float64 `json:"start_millis"`
	EndMillis   float64 `json:"end_millis"`
	Speed       float64 `json:"speed"`
}

func (a CensorAction) id() uint8 { return censorActionID }

func (a CensorAction) payload() []byte {
	var w codec.Writer
	w.WriteFloat64(a.StartMillis)
	w.WriteFloat64(a.EndMillis)
	w.WriteFloat64(a.Speed)

	return w.Bytes()
}

func decodeCensorAction(payload []byte) (CensorAction, error) {
	r := codec.NewReader(payload)

	start, err := r.ReadFloat64()
	if err != nil {
		return CensorAction{}, err
	}
	end, err := r.ReadFloat64()
	if err != nil {
		return CensorAction{}, err
	}
	speed, err := r.ReadFloat64()
	if err != nil {
		return CensorAction{}, err
	}
	if r.Len() != 0 {
		return CensorAction{}, fmt.Errorf("%d trailing bytes: %w", r.Len(), ErrLengthMismatch)
	}

	return CensorAction{StartMillis: start, EndMillis: end, Speed: speed}, nil
}

// UnknownAction preserves an action with an unrecognized id or payload
// layout, byte for byte.
type UnknownAction struct {
	ID   uint8  `json:"id"`
	Data []byte `json:"data"`
}

func (a UnknownAction) id() uint8 { return a.ID }

func (a UnknownAction) payload() []byte { return a.Data }

// decodeFlipAction reads one id-tagged, length-prefixed action from the
// cursor. The cursor always advances by the declared payload length; a
// known action whose payload does not decode exactly is kept raw in the
// default mode and rejected in strict mode.
func decodeFlipAction(r *codec.Reader, strict bool) (FlipAction, error) {
	id, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	length, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	payload, err := r.ReadBytes(int(length))
	if err != nil {
		return nil, err
	}

	var a FlipAction
	switch id {
	case jumpActionID:
		a, err = decodeJumpAction(payload)
	case censorActionID:
		a, err = decodeCensorAction(payload)
	default:
		return UnknownAction{ID: id, Data: bytes.Clone(payload)}, nil
	}

	if err != nil {
		if strict {
			return nil, err
		}
		return UnknownAction{ID: id, Data: bytes.Clone(payload)}, nil
	}

	return a, nil
}
