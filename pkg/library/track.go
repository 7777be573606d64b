package library

import (
	"time"

	"github.com/cratekit/seratag/pkg/codec"
	"github.com/cratekit/seratag/pkg/container"
	"github.com/cratekit/seratag/pkg/tag"
)

// Track is one scanned track's summary.
type Track struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	ScannedAt time.Time `json:"scanned_at"`

	TagNames   []string     `json:"tag_names,omitempty"`
	BPM        float64      `json:"bpm,omitempty"`
	AutoGain   float64      `json:"auto_gain,omitempty"`
	GainDB     float64      `json:"gain_db,omitempty"`
	TrackColor *codec.Color `json:"track_color,omitempty"`
	CueCount   int          `json:"cue_count"`
	LoopCount  int          `json:"loop_count"`
	BPMLocked  bool         `json:"bpm_locked"`
}

// Summarize condenses a track's decoded tags into a summary ready for
// Library.Put. The id and scan time are left for Put to fill in.
func Summarize(path string, c *container.Container) Track {
	track := Track{Path: path}
	if c == nil {
		return track
	}

	if c.Analysis != nil {
		track.TagNames = append(track.TagNames, tag.AnalysisName)
	}
	if c.Autotags != nil {
		track.TagNames = append(track.TagNames, tag.AutotagsName)
		track.BPM = c.Autotags.BPM
		track.AutoGain = c.Autotags.AutoGain
		track.GainDB = c.Autotags.GainDB
	}
	if c.Beatgrid != nil {
		track.TagNames = append(track.TagNames, tag.BeatgridName)
	}
	if c.Markers != nil {
		track.TagNames = append(track.TagNames, tag.MarkersName)
	}
	if c.Markers2 != nil {
		track.TagNames = append(track.TagNames, tag.Markers2Name)
	}
	if c.Overview != nil {
		track.TagNames = append(track.TagNames, tag.OverviewName)
	}
	if c.RelVolAd != nil {
		track.TagNames = append(track.TagNames, tag.RelVolAdName)
	}

	track.CueCount = len(c.Cues())
	track.LoopCount = len(c.Loops())
	track.BPMLocked = c.BPMLocked()
	if color, ok := c.TrackColor(); ok {
		track.TrackColor = &color
	}

	return track
}
