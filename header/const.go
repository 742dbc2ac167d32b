package header

const (
	// Bit masks of the Options field.
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1)
	ReservedBitsMask = 0x000D // Mask for reserved bits (bits 0, 2, 3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicChunkV1Opt identifies version 1 of the chunk blob format.
	MagicChunkV1Opt = 0xC510
)

const (
	HeaderSize    = 32         // fixed header size in bytes
	PayloadOffset = HeaderSize // byte offset where the payload starts
)
