// Package endian selects the byte order used for the multi-byte fields of a
// chunk blob.
//
// Chunk blobs are little-endian by default. The header records which order
// the writer used, so a decoder picks the matching engine from the header
// instead of assuming the host order:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint64(buf, word)
//
// All functions are safe for concurrent use; engines are stateless.
package endian

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder.
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness returns the host byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 stores 0x01 first only on big-endian hosts.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// CompareNativeEndian reports whether engine matches the host byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// IsBigEndian reports whether engine writes the most significant byte first.
func IsBigEndian(engine EndianEngine) bool {
	return engine == binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// PutFloat32 writes the IEEE 754 bits of f into b[:4].
func PutFloat32(engine EndianEngine, b []byte, f float32) {
	engine.PutUint32(b, math.Float32bits(f))
}

// Float32 reads a float32 written by PutFloat32.
func Float32(engine EndianEngine, b []byte) float32 {
	return math.Float32frombits(engine.Uint32(b))
}
