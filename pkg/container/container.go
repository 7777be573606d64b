// Package container merges the tags of one track into the values Serato DJ
// actually shows. Cue points, loops and the track color are stored twice,
// once in the legacy "Serato Markers_" tag and once in "Serato Markers2".
// When the two disagree the host prefers the legacy values, and the merged
// accessors follow that rule: a legacy slot overrides position and color at
// its index, and an empty legacy slot hides the entry entirely. Labels only
// exist in Markers2 and survive the merge.
package container

import (
	"sort"

	"github.com/cratekit/seratag/pkg/codec"
	"github.com/cratekit/seratag/pkg/tag"
)

// Container holds at most one decoded tag per kind.
type Container struct {
	Analysis *tag.Analysis
	Autotags *tag.Autotags
	Beatgrid *tag.Beatgrid
	Markers  *tag.Markers
	Markers2 *tag.Markers2
	Overview *tag.Overview
	RelVolAd *tag.RelVolAd
}

// New creates an empty container.
func New() *Container {
	return &Container{}
}

// Add files a decoded tag under its kind, replacing any previous value.
func (c *Container) Add(t tag.Tag) {
	switch t := t.(type) {
	case *tag.Analysis:
		c.Analysis = t
	case *tag.Autotags:
		c.Autotags = t
	case *tag.Beatgrid:
		c.Beatgrid = t
	case *tag.Markers:
		c.Markers = t
	case *tag.Markers2:
		c.Markers2 = t
	case *tag.Overview:
		c.Overview = t
	case *tag.RelVolAd:
		c.RelVolAd = t
	}
}

// Decode parses data as the named tag and files the result. Tag names the
// container does not know are reported as tag.ErrUnknownTag.
func (c *Container) Decode(name string, data []byte) error {
	t, err := tag.Parse(name, data)
	if err != nil {
		return err
	}
	c.Add(t)

	return nil
}

// AutoGain returns the auto gain value when an Autotags tag is present.
func (c *Container) AutoGain() (float64, bool) {
	if c.Autotags == nil {
		return 0, false
	}

	return c.Autotags.AutoGain, true
}

// GainDB returns the gain dB value when an Autotags tag is present.
func (c *Container) GainDB() (float64, bool) {
	if c.Autotags == nil {
		return 0, false
	}

	return c.Autotags.GainDB, true
}

// Cues returns the merged cue list in index order. Markers2 supplies the
// base set. Each filled legacy cue slot then overrides the position and
// color at its index, and each empty legacy slot removes the index.
func (c *Container) Cues() []tag.Cue {
	byIndex := map[uint8]tag.Cue{}
	if c.Markers2 != nil {
		for _, cue := range c.Markers2.Cues() {
			byIndex[cue.Index] = cue
		}
	}

	if c.Markers != nil {
		for i, entry := range legacyCueSlots(c.Markers) {
			index := uint8(i)
			if entry.StartMillis == nil {
				delete(byIndex, index)
				continue
			}
			cue, ok := byIndex[index]
			if !ok {
				cue = tag.Cue{Index: index}
			}
			cue.PositionMillis = *entry.StartMillis
			cue.Color = entry.Color
			byIndex[index] = cue
		}
	}

	if len(byIndex) == 0 {
		return nil
	}
	cues := make([]tag.Cue, 0, len(byIndex))
	for _, cue := range byIndex {
		cues = append(cues, cue)
	}
	sort.Slice(cues, func(i, j int) bool { return cues[i].Index < cues[j].Index })

	return cues
}

// Loops returns the merged loop list in index order. The merge works like
// Cues, except that a filled legacy slot overrides only the start and end
// positions so the Markers2 color, label and lock state stay visible.
func (c *Container) Loops() []tag.Loop {
	byIndex := map[uint8]tag.Loop{}
	if c.Markers2 != nil {
		for _, lp := range c.Markers2.Loops() {
			byIndex[lp.Index] = lp
		}
	}

	if c.Markers != nil {
		for i, entry := range legacyLoopSlots(c.Markers) {
			index := uint8(i)
			if entry.StartMillis == nil || entry.EndMillis == nil {
				delete(byIndex, index)
				continue
			}
			lp, ok := byIndex[index]
			if !ok {
				lp = tag.Loop{Index: index, Color: entry.Color, IsLocked: entry.IsLocked}
			}
			lp.StartMillis = *entry.StartMillis
			lp.EndMillis = *entry.EndMillis
			byIndex[index] = lp
		}
	}

	if len(byIndex) == 0 {
		return nil
	}
	loops := make([]tag.Loop, 0, len(byIndex))
	for _, lp := range byIndex {
		loops = append(loops, lp)
	}
	sort.Slice(loops, func(i, j int) bool { return loops[i].Index < loops[j].Index })

	return loops
}

// TrackColor returns the track color. The legacy tag always carries one
// and wins over a Markers2 COLOR entry.
func (c *Container) TrackColor() (codec.Color, bool) {
	if c.Markers != nil {
		return c.Markers.TrackColor, true
	}
	if c.Markers2 != nil {
		return c.Markers2.TrackColor()
	}

	return codec.Color{}, false
}

// BPMLocked reports whether the track's beatgrid is locked. Only Markers2
// stores the flag, so a track without that tag reads as unlocked.
func (c *Container) BPMLocked() bool {
	return c.Markers2 != nil && c.Markers2.BPMLocked()
}

// legacyCueSlots returns the cue slots of the legacy table in slot order.
// The host writes empty cue slots with the invalid entry type, and they
// still occupy an index, so both types count.
func legacyCueSlots(m *tag.Markers) []tag.MarkerEntry {
	var entries []tag.MarkerEntry
	for _, e := range m.Entries {
		if e.Type == tag.EntryTypeCue || e.Type == tag.EntryTypeInvalid {
			entries = append(entries, e)
		}
	}

	return entries
}

// legacyLoopSlots returns the loop slots of the legacy table in slot order.
// Loop slots keep the loop entry type even when empty.
func legacyLoopSlots(m *tag.Markers) []tag.MarkerEntry {
	var entries []tag.MarkerEntry
	for _, e := range m.Entries {
		if e.Type == tag.EntryTypeLoop {
			entries = append(entries, e)
		}
	}

	return entries
}
