package codec

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Color is a 24-bit RGB color as used by cue points, loops and the track
// color tags.
type Color struct {
	Red   uint8
	Green uint8
	Blue  uint8
}

// EncodeSerato32 returns the color in the widened 4-byte form used by the
// legacy markers tag.
func (c Color) EncodeSerato32() [4]byte {
	return EncodeSerato32([3]byte{c.Red, c.Green, c.Blue})
}

// String formats the color as a lowercase "#rrggbb" hex triple.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.Red, c.Green, c.Blue)
}

// ParseColor parses a "#rrggbb" hex triple as produced by Color.String.
func ParseColor(s string) (Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return Color{}, fmt.Errorf("malformed color %q", s)
	}

	v, err := strconv.ParseUint(s[1:], 16, 24)
	if err != nil {
		return Color{}, fmt.Errorf("malformed color %q", s)
	}

	return Color{
		Red:   uint8(v >> 16),
		Green: uint8(v >> 8),
		Blue:  uint8(v),
	}, nil
}

// MarshalJSON encodes the color as a "#rrggbb" string.
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a "#rrggbb" string.
func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}

	*c = parsed

	return nil
}
