package tag

import (
	"fmt"

	"github.com/cratekit/seratag/pkg/codec"
)

// RelVolAd is the relative volume adjustment tag. Beyond the version header
// only three fixed bytes have been observed; the tag is kept for exact
// re-encoding rather than for its values.
type RelVolAd struct {
	Version Version `json:"version"`

	Footer []byte `json:"footer,omitempty"`
}

var relVolAdBody = []byte{0x01, 0x00, 0x00}

// ParseRelVolAd decodes the RelVolAd tag.
func ParseRelVolAd(data []byte) (*RelVolAd, error) {
	r := codec.NewReader(data)

	version, err := readVersion(r)
	if err != nil {
		return nil, fmt.Errorf("relvolad: %w", err)
	}
	if err := expectBytes(r, relVolAdBody); err != nil {
		return nil, fmt.Errorf("relvolad: %w", err)
	}

	return &RelVolAd{Version: version, Footer: takeFooter(r)}, nil
}

// Name returns the GEOB description of the tag.
func (v *RelVolAd) Name() string { return RelVolAdName }

// Encode serializes the tag.
func (v *RelVolAd) Encode() []byte {
	var w codec.Writer
	writeVersion(&w, v.Version)
	w.WriteBytes(relVolAdBody)
	w.WriteBytes(v.Footer)

	return w.Bytes()
}
