// Package library keeps a small on-disk index of scanned tracks. Each
// track's decoded tags are condensed to a Track summary and stored under
// the track's file path, so a collection can be listed without reopening
// the audio files.
package library

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
)

// ErrNotFound is returned when no track is stored under a path.
var ErrNotFound = errors.New("track not found")

// Library is a pebble-backed track index. It is safe for concurrent use.
type Library struct {
	mu sync.Mutex
	db *pebble.DB
}

// Open opens or creates the index at path.
func Open(path string) (*Library, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("library: open %s: %w", path, err)
	}

	return &Library{db: db}, nil
}

// Close closes the index.
func (l *Library) Close() error {
	return l.db.Close()
}

// Put stores the summary under its path. A track seen for the first time
// gets a fresh KSUID id; rescans keep the id already on record. The stored
// summary, with id and scan time filled in, is returned.
func (l *Library) Put(track Track) (Track, error) {
	if track.Path == "" {
		return Track{}, errors.New("library: empty track path")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if track.ID == "" {
		existing, err := l.Get(track.Path)
		switch {
		case err == nil:
			track.ID = existing.ID
		case errors.Is(err, ErrNotFound):
			track.ID = ksuid.New().String()
		default:
			return Track{}, err
		}
	}
	track.ScannedAt = time.Now().UTC()

	data, err := json.Marshal(track)
	if err != nil {
		return Track{}, fmt.Errorf("library: encode %q: %w", track.Path, err)
	}
	if err := l.db.Set([]byte(track.Path), data, pebble.NoSync); err != nil {
		return Track{}, fmt.Errorf("library: put %q: %w", track.Path, err)
	}

	return track, nil
}

// Get returns the summary stored under path.
func (l *Library) Get(path string) (Track, error) {
	data, closer, err := l.db.Get([]byte(path))
	if errors.Is(err, pebble.ErrNotFound) {
		return Track{}, fmt.Errorf("library: %q: %w", path, ErrNotFound)
	}
	if err != nil {
		return Track{}, fmt.Errorf("library: get %q: %w", path, err)
	}
	defer closer.Close()

	var track Track
	if err := json.Unmarshal(data, &track); err != nil {
		return Track{}, fmt.Errorf("library: decode %q: %w", path, err)
	}

	return track, nil
}

// Delete removes the summary stored under path. Deleting a path with no
// record is not an error.
func (l *Library) Delete(path string) error {
	if err := l.db.Delete([]byte(path), pebble.NoSync); err != nil {
		return fmt.Errorf("library: delete %q: %w", path, err)
	}

	return nil
}

// List returns the summaries whose path starts with prefix, in path order.
// An empty prefix lists the whole index.
func (l *Library) List(prefix string) ([]Track, error) {
	opts := &pebble.IterOptions{}
	if prefix != "" {
		opts.LowerBound = []byte(prefix)
		opts.UpperBound = prefixUpperBound([]byte(prefix))
	}

	iter, err := l.db.NewIter(opts)
	if err != nil {
		return nil, fmt.Errorf("library: iterator: %w", err)
	}

	var tracks []Track
	for iter.First(); iter.Valid(); iter.Next() {
		var track Track
		if err := json.Unmarshal(iter.Value(), &track); err != nil {
			iter.Close()
			return nil, fmt.Errorf("library: decode %q: %w", iter.Key(), err)
		}
		tracks = append(tracks, track)
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("library: iterator: %w", err)
	}

	return tracks, nil
}

// Stats describes the size of the index.
type Stats struct {
	Tracks   int   `json:"tracks"`
	DataSize int64 `json:"data_size"`
}

// Stats counts the stored summaries and the bytes they occupy.
func (l *Library) Stats() (Stats, error) {
	iter, err := l.db.NewIter(nil)
	if err != nil {
		return Stats{}, fmt.Errorf("library: iterator: %w", err)
	}

	var stats Stats
	for iter.First(); iter.Valid(); iter.Next() {
		stats.Tracks++
		stats.DataSize += int64(len(iter.Key()) + len(iter.Value()))
	}
	if err := iter.Close(); err != nil {
		return Stats{}, fmt.Errorf("library: iterator: %w", err)
	}

	return stats, nil
}

// prefixUpperBound returns the smallest key greater than every key with
// the given prefix, or nil when no such key exists.
func prefixUpperBound(prefix []byte) []byte {
	end := bytes.Clone(prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}

	return nil
}
