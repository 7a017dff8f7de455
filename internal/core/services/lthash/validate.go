package lthash

import (
	"github.com/iamNilotpal/lthash/internal/adapters/digest"
	"github.com/iamNilotpal/lthash/internal/adapters/wordview"
	"github.com/iamNilotpal/lthash/internal/core/domain"
)

// Validate checks engine options before defaults are applied. Empty fields
// are allowed and filled in by New.
func Validate(opts *domain.LtHashOptions) error {
	if opts.DigestOptions != nil && (opts.DigestOptions.Custom != nil || opts.DigestOptions.Algorithm != "") {
		if err := digest.Validate(opts.DigestOptions); err != nil {
			return err
		}
	}

	if opts.WordView == nil {
		if err := wordview.Validate(opts.ByteOrder); err != nil {
			return err
		}
	}

	return nil
}
