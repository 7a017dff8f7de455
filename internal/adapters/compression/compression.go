package compression

import (
	"fmt"
	"runtime"

	"github.com/iamNilotpal/lthash/internal/core/domain"
	"github.com/iamNilotpal/lthash/pkg/errors"
)

// Returns CompressionOptions initialized with values that suit snapshots:
// a single small payload, so one encoder goroutine is enough.
func DefaultOptions() *domain.CompressionOptions {
	return &domain.CompressionOptions{
		Enable:             true,
		Level:              DefaultLevel,
		EncoderConcurrency: 1,
		DecoderConcurrency: 1,
	}
}

// Checks if the compression options are valid and returns an error if any option
// is outside acceptable bounds.
func Validate(input *domain.CompressionOptions) error {
	if input.Level < FastestLevel || input.Level > BestLevel {
		return errors.NewValidationError(
			"level", input.Level,
			fmt.Errorf("compression level must be between %d and %d, got %d", FastestLevel, BestLevel, input.Level),
		)
	}

	if int(input.EncoderConcurrency) > runtime.NumCPU() {
		return errors.NewValidationError(
			"encoderConcurrency", input.EncoderConcurrency,
			fmt.Errorf("encoder concurrency must be between 0 and %d, got %d", runtime.NumCPU(), input.EncoderConcurrency),
		)
	}

	if int(input.DecoderConcurrency) > runtime.NumCPU() {
		return errors.NewValidationError(
			"decoderConcurrency", input.DecoderConcurrency,
			fmt.Errorf("decoder concurrency must be between 0 and %d, got %d", runtime.NumCPU(), input.DecoderConcurrency),
		)
	}

	return nil
}
