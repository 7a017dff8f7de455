package lthash

import (
	"go.uber.org/zap"

	"github.com/iamNilotpal/lthash/internal/adapters/digest"
	"github.com/iamNilotpal/lthash/internal/core/domain"
)

const DefaultByteOrder = domain.LittleEndian

func prepareDefaults(opts *domain.LtHashOptions) *domain.LtHashOptions {
	if opts.DigestOptions == nil {
		opts.DigestOptions = digest.DefaultOptions()
	} else if opts.DigestOptions.Custom == nil && opts.DigestOptions.Algorithm == "" {
		opts.DigestOptions.Algorithm = digest.BLAKE3
	}

	if opts.ByteOrder == "" {
		opts.ByteOrder = DefaultByteOrder
	}

	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}

	return opts
}
