package domain

// CompressionOptions configures the compression behavior for persisted snapshots.
// Compression settings affect both storage efficiency and system performance.
type CompressionOptions struct {
	// Enable toggles compression of snapshot payloads.
	// Payloads that do not shrink are stored raw regardless of this flag.
	Enable bool

	// Level defines the compression level for zstd when compression is enabled.
	// Supported levels:
	//   - 1: Fastest compression, equivalent to zstd's fastest mode
	//   - 2: Default balanced compression (≈ zstd level 3)
	//   - 3: Better compression ratio (≈ zstd level 7-8) with 2x-3x CPU usage
	//   - 4: Maximum compression regardless of CPU cost
	// If not specified, the default level will be used.
	Level uint8

	// EncoderConcurrency specifies the number of concurrent compression operations.
	// Must be between 1 and the number of CPU cores.
	EncoderConcurrency uint8

	// DecoderConcurrency specifies the number of concurrent decompression operations.
	// Zero lets the decoder pick GOMAXPROCS.
	DecoderConcurrency uint8
}
