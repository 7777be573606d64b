package api

import (
	"encoding/json"

	"github.com/cratekit/seratag/pkg/library"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// DecodeRequest asks for a raw tag payload to be parsed. Data carries the
// payload bytes, base64 encoded on the wire.
type DecodeRequest struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
}

// DecodeResponse carries the parsed tag in its JSON form.
type DecodeResponse struct {
	Name string          `json:"name"`
	Tag  json.RawMessage `json:"tag"`
}

// EncodeRequest asks for a tag in its JSON form to be encoded back to raw
// payload bytes.
type EncodeRequest struct {
	Name string          `json:"name"`
	Tag  json.RawMessage `json:"tag"`
}

// EncodeResponse carries the encoded payload bytes, base64 encoded on the
// wire.
type EncodeResponse struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Bind   string
	Port   int
	APIKey string // An empty key disables authentication
	Strict bool   // Reject payloads whose entries misstate their length
}

// ILibrary defines the interface for the track index operations
type ILibrary interface {
	Put(track library.Track) (library.Track, error)
	Get(path string) (library.Track, error)
	Delete(path string) error
	List(prefix string) ([]library.Track, error)
	Stats() (library.Stats, error)
}
