package tag

import (
	"fmt"

	"github.com/cratekit/seratag/pkg/codec"
)

// Beatgrid stores the beat positions the host aligns loops and sync to.
// Every marker but the last carries the number of beats until the next one;
// the last carries the tempo that extends the grid to the end of the track.
type Beatgrid struct {
	Version     Version             `json:"version"`
	NonTerminal []NonTerminalMarker `json:"non_terminal,omitempty"`
	Terminal    TerminalMarker      `json:"terminal"`

	// Footer preserves the single byte the host writes after the last
	// marker. Its value varies between files.
	Footer []byte `json:"footer,omitempty"`
}

// NonTerminalMarker anchors a grid section and counts the beats to the next
// marker.
type NonTerminalMarker struct {
	PositionSecs  float32 `json:"position_secs"`
	BeatsTillNext uint32  `json:"beats_till_next"`
}

// TerminalMarker anchors the last grid section with a tempo instead of a
// beat count.
type TerminalMarker struct {
	PositionSecs float32 `json:"position_secs"`
	BPM          float32 `json:"bpm"`
}

// NewBeatgrid returns a tag carrying the version and footer byte current
// Serato releases write.
func NewBeatgrid(nonTerminal []NonTerminalMarker, terminal TerminalMarker) *Beatgrid {
	return &Beatgrid{
		Version:     Version{Major: 1, Minor: 0},
		NonTerminal: nonTerminal,
		Terminal:    terminal,
		Footer:      []byte{0},
	}
}

// ParseBeatgrid decodes the BeatGrid tag. A grid always holds at least the
// terminal marker; a zero count is rejected.
func ParseBeatgrid(data []byte) (*Beatgrid, error) {
	r := codec.NewReader(data)

	version, err := readVersion(r)
	if err != nil {
		return nil, fmt.Errorf("beatgrid: %w", err)
	}
	count, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("beatgrid: marker count: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("beatgrid: marker count is zero: %w", ErrInvalidData)
	}

	// Every marker is eight bytes. Check the count against the remaining
	// input before allocating for it.
	if uint64(r.Len()) < uint64(count)*8 {
		return nil, fmt.Errorf("beatgrid: %d markers declared, %d bytes remain: %w", count, r.Len(), codec.ErrShortInput)
	}

	nonTerminal := make([]NonTerminalMarker, count-1)
	for i := range nonTerminal {
		pos, err := r.ReadFloat32()
		if err != nil {
			return nil, fmt.Errorf("beatgrid: marker %d position: %w", i, err)
		}
		beats, err := r.ReadUint32()
		if err != nil {
			return nil, fmt.Errorf("beatgrid: marker %d beat count: %w", i, err)
		}
		nonTerminal[i] = NonTerminalMarker{PositionSecs: pos, BeatsTillNext: beats}
	}

	var terminal TerminalMarker
	if terminal.PositionSecs, err = r.ReadFloat32(); err != nil {
		return nil, fmt.Errorf("beatgrid: terminal position: %w", err)
	}
	if terminal.BPM, err = r.ReadFloat32(); err != nil {
		return nil, fmt.Errorf("beatgrid: terminal bpm: %w", err)
	}

	if len(nonTerminal) == 0 {
		nonTerminal = nil
	}

	return &Beatgrid{
		Version:     version,
		NonTerminal: nonTerminal,
		Terminal:    terminal,
		Footer:      takeFooter(r),
	}, nil
}

// Name returns the GEOB description of the tag.
func (b *Beatgrid) Name() string { return BeatgridName }

// Encode serializes the tag.
func (b *Beatgrid) Encode() []byte {
	var w codec.Writer
	writeVersion(&w, b.Version)
	w.WriteUint32(uint32(len(b.NonTerminal)) + 1)
	for _, m := range b.NonTerminal {
		w.WriteFloat32(m.PositionSecs)
		w.WriteUint32(m.BeatsTillNext)
	}
	w.WriteFloat32(b.Terminal.PositionSecs)
	w.WriteFloat32(b.Terminal.BPM)
	w.WriteBytes(b.Footer)

	return w.Bytes()
}
