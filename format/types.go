// Package format enumerates the payload encodings and compression codecs a
// chunk blob header can declare.
package format

type (
	EncodingType    uint8
	CompressionType uint8
)

const (
	EncodingPalette EncodingType = 0x1 // EncodingPalette stores each section as palette entries plus packed indices.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (e EncodingType) String() string {
	switch e {
	case EncodingPalette:
		return "Palette"
	default:
		return "Unknown"
	}
}

// IsValid reports whether e is a known encoding.
func (e EncodingType) IsValid() bool {
	return e == EncodingPalette
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// IsValid reports whether c is a known compression codec.
func (c CompressionType) IsValid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}

// ParseCompression maps a name as returned by String, or its lower-case form,
// to a CompressionType. The empty string means CompressionNone.
func ParseCompression(name string) (CompressionType, bool) {
	switch name {
	case "None", "none", "":
		return CompressionNone, true
	case "Zstd", "zstd":
		return CompressionZstd, true
	case "S2", "s2":
		return CompressionS2, true
	case "LZ4", "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
