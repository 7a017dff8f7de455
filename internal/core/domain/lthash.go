// Package domain defines the core types and configurations for the LtHash engine.
package domain

import (
	"go.uber.org/zap"

	"github.com/iamNilotpal/lthash/internal/core/ports"
)

const (
	// ChecksumSize is the width of the accumulator in bytes (512 32-bit words).
	ChecksumSize = 2048

	// WordSize is the width of a single accumulator word in bytes.
	WordSize = 4
)

// FoldMode selects the word-wise operation used when a digest is folded
// into the accumulator.
type FoldMode uint8

const (
	// FoldAdd adds the digest words to the accumulator modulo 2^32.
	FoldAdd FoldMode = iota + 1

	// FoldSubtract subtracts the digest words from the accumulator modulo 2^32.
	FoldSubtract
)

// String returns the string representation of the FoldMode.
func (m FoldMode) String() string {
	switch m {
	case FoldAdd:
		return "add"
	case FoldSubtract:
		return "subtract"
	default:
		return "unknown"
	}
}

// ByteOrder names the endianness used to read and write accumulator words.
type ByteOrder string

const (
	LittleEndian ByteOrder = "little-endian"
	BigEndian    ByteOrder = "big-endian"
)

// LtHashOptions defines the configuration parameters for a checksum engine.
type LtHashOptions struct {
	// DigestOptions selects the function used to digest every element.
	DigestOptions *DigestOptions

	// ByteOrder selects the endianness of the word view used by the fold.
	// Accumulators are only comparable when produced with the same order.
	//
	// Default: little-endian
	ByteOrder ByteOrder

	// WordView allows using a custom WordViewPort implementation.
	// If provided, it takes precedence over ByteOrder.
	WordView ports.WordViewPort

	// Logger receives debug output from the engine. Defaults to a no-op logger.
	Logger *zap.SugaredLogger
}
