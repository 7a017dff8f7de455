package domain

import (
	"github.com/iamNilotpal/lthash/internal/core/ports"
)

// DigestAlgorithm represents supported element digest algorithms.
type DigestAlgorithm string

// DigestOptions defines how each element is digested before it is folded
// into the accumulator.
type DigestOptions struct {
	// Algorithm specifies which digest algorithm to use.
	// Defaults to BLAKE3 with a 32-byte output if not specified.
	Algorithm DigestAlgorithm

	// Custom allows using a custom DigestPort implementation.
	// If provided, it takes precedence over Algorithm. Its Size must be a
	// positive multiple of WordSize no larger than ChecksumSize.
	Custom ports.DigestPort
}
