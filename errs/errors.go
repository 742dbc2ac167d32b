// Package errs defines the sentinel errors returned by voxpal.
//
// Only data-dependent failures are reported through these errors, typically
// while decoding a persisted chunk blob. Contract violations inside the
// in-memory containers (an index past the end, a value wider than the packed
// width) panic instead, since they indicate a bug rather than bad input.
package errs

import "errors"

var (
	// ErrInvalidHeaderSize is returned when a blob is shorter than the fixed header.
	ErrInvalidHeaderSize = errors.New("invalid header size")
	// ErrInvalidHeaderFlags is returned when the header magic, encoding or compression is unknown.
	ErrInvalidHeaderFlags = errors.New("invalid header flags")
	// ErrChecksumMismatch is returned when the stored payload checksum does not match.
	ErrChecksumMismatch = errors.New("payload checksum mismatch")
	// ErrInvalidPayload is returned when the payload is truncated or has trailing bytes.
	ErrInvalidPayload = errors.New("invalid payload")
	// ErrInvalidPalette is returned when a palette and its index array disagree.
	ErrInvalidPalette = errors.New("invalid palette")
	// ErrInvalidPackedData is returned when packed words do not match the declared width and length.
	ErrInvalidPackedData = errors.New("invalid packed data")
	// ErrInvalidCompression is returned for an unsupported compression type.
	ErrInvalidCompression = errors.New("invalid compression type")
	// ErrNilChunk is returned when a nil chunk is passed to an encoder or store.
	ErrNilChunk = errors.New("nil chunk")
	// ErrChunkNotFound is returned by the store when no chunk is saved under a key.
	ErrChunkNotFound = errors.New("chunk not found")
)
