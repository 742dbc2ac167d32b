// Package codec serializes chunks into self-describing binary blobs and back.
//
// A blob is a fixed 32-byte header (see package header) followed by the
// payload, optionally compressed. The payload holds one record per populated
// section, in ascending section order:
//
//	paletteLen  u16
//	palette     paletteLen x (tile id u64, state format u8)
//	width       u8, bits per packed index
//	wordCount   u16
//	words       wordCount x u64, packed indices in bitpack layout
//
// Every record describes exactly 4096 cells. Void sections are not stored;
// the header's section mask says which sections are present. Multi-byte
// fields use the byte order recorded in the header.
//
// The header carries an xxHash64 of the stored payload, so corruption is
// detected before decompression. Decoding errors wrap the sentinels in
// package errs and can be tested with errors.Is.
//
// Encoders and decoders hold no per-call state and are safe for concurrent use.
package codec
