// Package compression provides snapshot compression using the zstd algorithm.
// It offers a thread-safe implementation with configurable compression levels
// and falls back to raw bytes whenever compression would not pay off.
package compression

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/iamNilotpal/lthash/internal/core/domain"
)

// minCompressSize is the smallest input worth handing to the encoder.
const minCompressSize = 64

// ZstdCompression implements CompressionPort using the zstd compression algorithm.
// Compression and decompression may be called concurrently; Close must not race with them.
type ZstdCompression struct {
	level   uint8         // Current encoder level (1-4)
	mu      sync.RWMutex  // Protects concurrent access to compression state
	decoder *zstd.Decoder // Thread-safe decoder instance for decompression
	encoder *zstd.Encoder // Thread-safe encoder instance for compression
}

// Compression level constants map onto zstd's encoder levels.
const (
	FastestLevel uint8 = uint8(zstd.SpeedFastest)
	DefaultLevel uint8 = uint8(zstd.SpeedDefault)
	BestLevel    uint8 = uint8(zstd.SpeedBestCompression)
)

// NewZstdCompression creates a new zstd compression instance from opts.
//
// Returns an error if:
// - The compression level or concurrency is invalid
// - The encoder or decoder initialization fails
func NewZstdCompression(opts *domain.CompressionOptions) (*ZstdCompression, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	if err := Validate(opts); err != nil {
		return nil, err
	}

	concurrency := int(opts.EncoderConcurrency)
	if concurrency == 0 {
		concurrency = 1
	}

	encoder, err := zstd.NewWriter(
		nil,
		zstd.WithEncoderLevel(zstd.EncoderLevel(opts.Level)),
		zstd.WithEncoderConcurrency(concurrency),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(int(opts.DecoderConcurrency)))
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	return &ZstdCompression{encoder: encoder, decoder: decoder, level: opts.Level}, nil
}

// Compress compresses the input data using zstd compression.
// Small inputs, and inputs that do not shrink (digest output is close to
// random), are returned unchanged with compressed set to false.
func (z *ZstdCompression) Compress(data []byte) ([]byte, bool, error) {
	z.mu.RLock()
	defer z.mu.RUnlock()

	if len(data) < minCompressSize {
		return data, false, nil
	}

	compressed := z.encoder.EncodeAll(data, nil)
	if len(compressed) < len(data) {
		return compressed, true, nil
	}

	return data, false, nil
}

// Decompress restores the original data from its compressed form.
//
// Returns an error if the input data is not valid zstd compressed data.
func (z *ZstdCompression) Decompress(data []byte) ([]byte, error) {
	z.mu.RLock()
	defer z.mu.RUnlock()

	decompressed, err := z.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompression failed: %w", err)
	}

	return decompressed, nil
}

// Level returns the current compression level.
func (z *ZstdCompression) Level() uint8 {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return z.level
}

// Close releases all resources used by the compression instance.
// After closing, the instance cannot be used for compression or decompression.
func (z *ZstdCompression) Close() error {
	z.mu.Lock()
	defer z.mu.Unlock()

	if err := z.encoder.Close(); err != nil {
		return fmt.Errorf("error closing encoder : %w", err)
	}

	z.decoder.Close()
	return nil
}
