package ports

// Defines the interface for compression operations.
// This allows us to swap compression algorithms without changing the snapshot format.
type CompressionPort interface {
	// Compress reduces data size.
	// Returns the resulting bytes and whether they are compressed. Data that
	// would not shrink is returned as-is with compressed set to false.
	Compress(data []byte) (out []byte, compressed bool, err error)

	// Decompress restores data produced by Compress with compressed set to true.
	Decompress(data []byte) ([]byte, error)

	// Close cleans up compression resources.
	Close() error

	// Level returns current compression level.
	Level() uint8
}
