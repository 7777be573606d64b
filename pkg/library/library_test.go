package library

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cratekit/seratag/pkg/codec"
	"github.com/cratekit/seratag/pkg/container"
	"github.com/cratekit/seratag/pkg/tag"
)

func openTestLibrary(t *testing.T) *Library {
	t.Helper()

	l, err := Open(filepath.Join(t.TempDir(), "library"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, l.Close()) })

	return l
}

func TestLibrary_PutGet(t *testing.T) {
	l := openTestLibrary(t)

	stored, err := l.Put(Track{Path: "/music/a.mp3", BPM: 120})
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	assert.False(t, stored.ScannedAt.IsZero())

	got, err := l.Get("/music/a.mp3")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
	assert.InDelta(t, 120, got.BPM, 1e-9)
}

func TestLibrary_RescanKeepsID(t *testing.T) {
	l := openTestLibrary(t)

	first, err := l.Put(Track{Path: "/music/a.mp3"})
	require.NoError(t, err)
	second, err := l.Put(Track{Path: "/music/a.mp3", CueCount: 3})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	got, err := l.Get("/music/a.mp3")
	require.NoError(t, err)
	assert.Equal(t, 3, got.CueCount)
}

func TestLibrary_GetMissing(t *testing.T) {
	l := openTestLibrary(t)

	_, err := l.Get("/music/missing.mp3")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLibrary_List(t *testing.T) {
	l := openTestLibrary(t)

	paths := []string{
		"/music/house/a.mp3",
		"/music/house/b.mp3",
		"/music/techno/c.mp3",
	}
	for _, path := range paths {
		_, err := l.Put(Track{Path: path})
		require.NoError(t, err)
	}

	t.Run("prefix", func(t *testing.T) {
		tracks, err := l.List("/music/house/")
		require.NoError(t, err)
		require.Len(t, tracks, 2)
		assert.Equal(t, "/music/house/a.mp3", tracks[0].Path)
		assert.Equal(t, "/music/house/b.mp3", tracks[1].Path)
	})

	t.Run("all", func(t *testing.T) {
		tracks, err := l.List("")
		require.NoError(t, err)
		assert.Len(t, tracks, 3)
	})

	t.Run("no match", func(t *testing.T) {
		tracks, err := l.List("/video/")
		require.NoError(t, err)
		assert.Empty(t, tracks)
	})
}

func TestLibrary_Delete(t *testing.T) {
	l := openTestLibrary(t)

	_, err := l.Put(Track{Path: "/music/a.mp3"})
	require.NoError(t, err)
	require.NoError(t, l.Delete("/music/a.mp3"))

	_, err = l.Get("/music/a.mp3")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, l.Delete("/music/a.mp3"), "deleting an absent path is not an error")
}

func TestLibrary_EmptyPath(t *testing.T) {
	l := openTestLibrary(t)

	_, err := l.Put(Track{})
	assert.Error(t, err)
}

func TestLibrary_Stats(t *testing.T) {
	l := openTestLibrary(t)

	stats, err := l.Stats()
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)

	_, err = l.Put(Track{Path: "/music/a.mp3"})
	require.NoError(t, err)
	_, err = l.Put(Track{Path: "/music/b.mp3"})
	require.NoError(t, err)

	stats, err = l.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Tracks)
	assert.Greater(t, stats.DataSize, int64(0))
}

func TestPrefixUpperBound(t *testing.T) {
	assert.Equal(t, []byte("/music0"), prefixUpperBound([]byte("/music/")))
	assert.Equal(t, []byte{0x62}, prefixUpperBound([]byte{0x61, 0xFF}))
	assert.Nil(t, prefixUpperBound([]byte{0xFF, 0xFF}))
	assert.Nil(t, prefixUpperBound(nil))
}

func TestSummarize(t *testing.T) {
	c := container.New()
	c.Add(tag.NewAutotags(115, -3.25, 0.5))
	c.Add(tag.NewMarkers2([]tag.Marker{
		tag.Cue{Index: 0, PositionMillis: 1000, Label: "Intro"},
		tag.Cue{Index: 1, PositionMillis: 5000, Label: "Drop"},
		tag.Loop{Index: 0, StartMillis: 1000, EndMillis: 2000},
		tag.TrackColor{Color: codec.Color{Red: 0x99, Green: 0x99, Blue: 0x99}},
		tag.BPMLock{IsLocked: true},
	}))

	track := Summarize("/music/a.mp3", c)
	assert.Equal(t, "/music/a.mp3", track.Path)
	assert.ElementsMatch(t, []string{tag.AutotagsName, tag.Markers2Name}, track.TagNames)
	assert.InDelta(t, 115, track.BPM, 1e-9)
	assert.InDelta(t, -3.25, track.AutoGain, 1e-9)
	assert.Equal(t, 2, track.CueCount)
	assert.Equal(t, 1, track.LoopCount)
	assert.True(t, track.BPMLocked)
	require.NotNil(t, track.TrackColor)
	assert.Equal(t, codec.Color{Red: 0x99, Green: 0x99, Blue: 0x99}, *track.TrackColor)
}

func TestSummarize_NilContainer(t *testing.T) {
	track := Summarize("/music/a.mp3", nil)
	assert.Equal(t, "/music/a.mp3", track.Path)
	assert.Empty(t, track.TagNames)
	assert.Nil(t, track.TrackColor)
}
