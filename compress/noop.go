package compress

// NoOpCompressor stores payloads uncompressed.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor returns a codec that passes data through.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress appends data to dst unchanged.
func (c NoOpCompressor) Compress(dst, data []byte) ([]byte, error) {
	return append(dst, data...), nil
}

// Decompress returns data itself, without copying, once its length matches size.
func (c NoOpCompressor) Decompress(data []byte, size int) ([]byte, error) {
	if err := checkSize("uncompressed", len(data), size); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	return data, nil
}
