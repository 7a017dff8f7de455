package digest

import (
	"fmt"

	"github.com/iamNilotpal/lthash/internal/core/domain"
	"github.com/iamNilotpal/lthash/internal/core/ports"
	"github.com/iamNilotpal/lthash/pkg/errors"
)

const (
	// BLAKE3 uses BLAKE3 with its standard 256-bit output.
	BLAKE3 domain.DigestAlgorithm = "blake3"

	// BLAKE3XOF uses BLAKE3 in extendable-output mode producing a digest as
	// wide as the accumulator, so every accumulator word is folded.
	BLAKE3XOF domain.DigestAlgorithm = "blake3-xof"

	// BLAKE2b256 provides BLAKE2b checksums (256-bit)
	BLAKE2b256 domain.DigestAlgorithm = "blake2b-256"

	// SHA256 provides SHA-256 checksums (256-bit)
	SHA256 domain.DigestAlgorithm = "sha256"

	// SHA3256 provides SHA3-256 checksums (256-bit)
	SHA3256 domain.DigestAlgorithm = "sha3-256"
)

// Returns recommended digest settings.
func DefaultOptions() *domain.DigestOptions {
	return &domain.DigestOptions{Algorithm: BLAKE3}
}

// Validate checks that the options name a supported algorithm, or carry a
// custom digest whose size the engine can fold.
func Validate(input *domain.DigestOptions) error {
	if input.Custom != nil {
		return ValidateSize(input.Custom.Size())
	}

	switch input.Algorithm {
	case BLAKE3, BLAKE3XOF, BLAKE2b256, SHA256, SHA3256:
	default:
		return errors.NewValidationError(
			"algorithm", input.Algorithm, fmt.Errorf("unsupported digest algorithm: %s", input.Algorithm),
		)
	}
	return nil
}

// ValidateSize ensures a digest of the given length can be folded word by
// word into the accumulator.
func ValidateSize(size int) error {
	if size <= 0 || size > domain.ChecksumSize {
		return errors.NewValidationError(
			"size", size, fmt.Errorf("digest size must be between 1 and %d bytes, got %d", domain.ChecksumSize, size),
		)
	}

	if size%domain.WordSize != 0 {
		return errors.NewValidationError(
			"size", size, fmt.Errorf("digest size must be a multiple of %d bytes, got %d", domain.WordSize, size),
		)
	}

	return nil
}

// New returns the digest selected by opts. A custom digest takes precedence
// over the named algorithm.
func New(opts *domain.DigestOptions) (ports.DigestPort, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	if err := Validate(opts); err != nil {
		return nil, err
	}

	if opts.Custom != nil {
		return opts.Custom, nil
	}

	switch opts.Algorithm {
	case BLAKE3XOF:
		return NewBLAKE3XOF(domain.ChecksumSize), nil
	case BLAKE2b256:
		return NewBLAKE2b256(), nil
	case SHA256:
		return NewSHA256(), nil
	case SHA3256:
		return NewSHA3256(), nil
	default:
		return NewBLAKE3(), nil
	}
}
