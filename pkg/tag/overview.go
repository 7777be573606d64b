package tag

import (
	"bytes"
	"fmt"

	"github.com/cratekit/seratag/pkg/codec"
)

// Overview holds the track's waveform preview as rows of column
// intensities.
type Overview struct {
	Version Version `json:"version"`

	// Rows are the waveform slices, 16 bytes each in host files.
	Rows [][]byte `json:"rows"`

	// Footer preserves a remainder shorter than a full row.
	Footer []byte `json:"footer,omitempty"`
}

// ParseOverview decodes the Overview tag. Rows are taken until less than a
// full row remains.
func ParseOverview(data []byte) (*Overview, error) {
	r := codec.NewReader(data)

	version, err := readVersion(r)
	if err != nil {
		return nil, fmt.Errorf("overview: %w", err)
	}

	var rows [][]byte
	for r.Len() >= 16 {
		row, err := r.ReadBytes(16)
		if err != nil {
			return nil, fmt.Errorf("overview: row %d: %w", len(rows), err)
		}
		rows = append(rows, bytes.Clone(row))
	}

	return &Overview{Version: version, Rows: rows, Footer: takeFooter(r)}, nil
}

// Name returns the GEOB description of the tag.
func (o *Overview) Name() string { return OverviewName }

// Encode serializes the tag.
func (o *Overview) Encode() []byte {
	var w codec.Writer
	writeVersion(&w, o.Version)
	for _, row := range o.Rows {
		w.WriteBytes(row)
	}
	w.WriteBytes(o.Footer)

	return w.Bytes()
}
