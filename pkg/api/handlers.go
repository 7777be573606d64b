package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cratekit/seratag/pkg/library"
	"github.com/cratekit/seratag/pkg/tag"
)

// Server exposes the tag codec and the track library over HTTP.
type Server struct {
	library ILibrary
	config  ServerConfig
	metrics *Metrics
}

// NewServer wires the handlers to a library and a metrics set.
func NewServer(library ILibrary, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		library: library,
		config:  config,
		metrics: metrics,
	}
}

// handleHealth reports service liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleKinds lists the tag names the codec understands.
func (s *Server) handleKinds(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]interface{}{"kinds": tag.Names()})
}

// handleDecode parses a raw tag payload and returns its JSON form.
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req DecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		sendError(w, "name is required", http.StatusBadRequest)
		return
	}

	parsed, err := s.parse(req.Name, req.Data)
	if err != nil {
		s.metrics.RecordTagOperation("decode", metricKind(req.Name), false, time.Since(start))
		sendError(w, fmt.Sprintf("Failed to decode tag: %v", err), http.StatusBadRequest)
		return
	}

	encoded, err := json.Marshal(parsed)
	if err != nil {
		s.metrics.RecordTagOperation("decode", metricKind(req.Name), false, time.Since(start))
		sendError(w, fmt.Sprintf("Failed to marshal tag: %v", err), http.StatusInternalServerError)
		return
	}

	s.metrics.RecordTagOperation("decode", metricKind(req.Name), true, time.Since(start))
	sendSuccess(w, DecodeResponse{Name: req.Name, Tag: encoded})
}

// handleEncode turns a tag's JSON form back into its raw payload bytes.
func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req EncodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		sendError(w, "name is required", http.StatusBadRequest)
		return
	}

	decoded, err := tag.UnmarshalTag(req.Name, req.Tag)
	if err != nil {
		s.metrics.RecordTagOperation("encode", metricKind(req.Name), false, time.Since(start))
		sendError(w, fmt.Sprintf("Failed to unmarshal tag: %v", err), http.StatusBadRequest)
		return
	}

	s.metrics.RecordTagOperation("encode", metricKind(req.Name), true, time.Since(start))
	sendSuccess(w, EncodeResponse{Name: req.Name, Data: decoded.Encode()})
}

// handlePutTrack stores a track summary in the library.
func (s *Server) handlePutTrack(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var track library.Track
	if err := json.NewDecoder(r.Body).Decode(&track); err != nil {
		sendError(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}
	if track.Path == "" {
		sendError(w, "path is required", http.StatusBadRequest)
		return
	}

	stored, err := s.library.Put(track)
	if err != nil {
		s.metrics.RecordLibraryOperation("put", false, time.Since(start))
		sendError(w, fmt.Sprintf("Failed to store track: %v", err), http.StatusInternalServerError)
		return
	}

	s.metrics.RecordLibraryOperation("put", true, time.Since(start))
	sendSuccess(w, stored)
}

// handleGetTrack returns the summary stored for ?path=.
func (s *Server) handleGetTrack(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	path := r.URL.Query().Get("path")
	if path == "" {
		sendError(w, "path parameter is required", http.StatusBadRequest)
		return
	}

	track, err := s.library.Get(path)
	if err != nil {
		s.metrics.RecordLibraryOperation("get", false, time.Since(start))
		if errors.Is(err, library.ErrNotFound) {
			sendError(w, "Track not found", http.StatusNotFound)
		} else {
			sendError(w, fmt.Sprintf("Failed to get track: %v", err), http.StatusInternalServerError)
		}
		return
	}

	s.metrics.RecordLibraryOperation("get", true, time.Since(start))
	sendSuccess(w, track)
}

// handleDeleteTrack removes the summary stored for ?path=. Deleting an
// absent path succeeds.
func (s *Server) handleDeleteTrack(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	path := r.URL.Query().Get("path")
	if path == "" {
		sendError(w, "path parameter is required", http.StatusBadRequest)
		return
	}

	if err := s.library.Delete(path); err != nil {
		s.metrics.RecordLibraryOperation("delete", false, time.Since(start))
		sendError(w, fmt.Sprintf("Failed to delete track: %v", err), http.StatusInternalServerError)
		return
	}

	s.metrics.RecordLibraryOperation("delete", true, time.Since(start))
	sendSuccess(w, map[string]string{"message": "Track deleted successfully"})
}

// handleListTracks lists track summaries, optionally under ?prefix=.
func (s *Server) handleListTracks(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")

	tracks, err := s.library.List(prefix)
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to list tracks: %v", err), http.StatusInternalServerError)
		return
	}

	sendSuccess(w, map[string]interface{}{"tracks": tracks})
}

// handleStats reports library statistics.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.library.Stats()
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to get stats: %v", err), http.StatusInternalServerError)
		return
	}

	s.metrics.UpdateLibraryStats(stats.Tracks, stats.DataSize)
	sendSuccess(w, stats)
}

// parse decodes a payload in the mode the server is configured for.
func (s *Server) parse(name string, data []byte) (tag.Tag, error) {
	if s.config.Strict {
		return tag.ParseStrict(name, data)
	}
	return tag.Parse(name, data)
}

// metricKind folds arbitrary request names into a bounded label set.
func metricKind(name string) string {
	for _, known := range tag.Names() {
		if name == known {
			return name
		}
	}
	return "unknown"
}

// startMetricsUpdater periodically refreshes the library gauges.
func (s *Server) startMetricsUpdater() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		stats, err := s.library.Stats()
		if err != nil {
			continue
		}
		s.metrics.UpdateLibraryStats(stats.Tracks, stats.DataSize)
	}
}
