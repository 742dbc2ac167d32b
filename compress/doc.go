// Package compress provides the codecs that can be applied to a chunk payload
// after palette encoding.
//
// Palette encoding already removes most redundancy from voxel data: a section
// of stone with a few ores costs one or two bits per block. What remains is a
// stream of packed index words with long runs, plus short palette tables, and
// general-purpose compressors still shrink it considerably. The header of each
// chunk blob records which codec was used, so decoders pick the right one
// automatically.
//
// Supported codecs:
//   - None (format.CompressionNone): payload stored as is
//   - Zstd (format.CompressionZstd): best ratio, for chunks written to disk
//   - S2 (format.CompressionS2): fast with a good ratio, for network transfer
//   - LZ4 (format.CompressionLZ4): fastest decompression, for hot chunk caches
//
// Every codec implements Codec:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	blob, err = codec.Compress(blob, payload)
//	payload, err = codec.Decompress(blob[header.HeaderSize:], int(h.PayloadSize))
//
// Zstd uses the pure-Go github.com/klauspost/compress/zstd implementation. Build
// with the gozstd tag (and cgo) to use the libzstd binding from
// github.com/valyala/gozstd instead; both produce standard zstd frames.
//
// All codecs are stateless values and safe for concurrent use. Encoders and
// decoders that keep internal state are pooled.
package compress
