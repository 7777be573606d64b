// Package tag decodes and encodes the Serato DJ metadata tags that travel
// inside audio files.
//
// Serato stores its per-track state (cue points, saved loops, flips, the
// beatgrid, waveform previews, analyzer results) in a family of binary
// blobs. In MP3 files each blob is an ID3 GEOB frame whose description
// names the tag, for example "Serato Markers2"; FLAC and MP4 wrap the same
// bodies in a base64 envelope, and OGG stores two of them in stripped-down
// comment forms. This package implements the blob bodies. Container
// handling lives in the extract package.
//
// # Parsing Model
//
// Every tag kind has a ParseX function returning a typed structure and an
// Encode method producing bytes. The pair is loss-free: whatever ParseX
// accepted, Encode reproduces byte for byte. To get there the structures
// keep more than the useful values. Trailing padding is held in Footer
// fields and the terminator region of Markers2 in a Trailer field, while
// entries and flip actions that do not match a known layout are kept raw
// as UnknownMarker and UnknownAction values instead of being dropped.
//
// The Markers2 entry list is open-ended, so unknown entry names are normal
// and always preserved. For known names the default parser is forgiving:
// an entry whose payload does not decode exactly is demoted to an
// UnknownMarker rather than failing the whole tag. ParseMarkers2Strict
// rejects such entries with ErrLengthMismatch instead. Damage to the
// framing itself (truncated headers, malformed base64, a bad entry length)
// is an error in both modes.
//
// # Ownership
//
// Decoded structures never alias the input slice; every variable-length
// run is copied. Parsing the same bytes twice yields fully independent
// values, and callers may mutate or discard the input afterwards.
package tag
