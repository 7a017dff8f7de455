// Package wordview reads and writes 32-bit accumulator words with a fixed byte order.
package wordview

import (
	"encoding/binary"
	"fmt"

	"github.com/iamNilotpal/lthash/internal/core/domain"
	"github.com/iamNilotpal/lthash/internal/core/ports"
	"github.com/iamNilotpal/lthash/pkg/errors"
)

type view struct {
	name  domain.ByteOrder
	order binary.ByteOrder
}

// NewLittleEndian returns the default word view.
func NewLittleEndian() *view {
	return &view{name: domain.LittleEndian, order: binary.LittleEndian}
}

func NewBigEndian() *view {
	return &view{name: domain.BigEndian, order: binary.BigEndian}
}

// New returns the word view for order. An empty order selects little-endian.
func New(order domain.ByteOrder) (ports.WordViewPort, error) {
	if err := Validate(order); err != nil {
		return nil, err
	}

	if order == domain.BigEndian {
		return NewBigEndian(), nil
	}
	return NewLittleEndian(), nil
}

func Validate(order domain.ByteOrder) error {
	switch order {
	case "", domain.LittleEndian, domain.BigEndian:
		return nil
	default:
		return errors.NewValidationError("byteOrder", order, fmt.Errorf("unsupported byte order: %s", order))
	}
}

func (v *view) ReadWord(buf []byte, offset int) uint32 {
	return v.order.Uint32(buf[offset : offset+domain.WordSize])
}

func (v *view) WriteWord(buf []byte, offset int, value uint32) {
	v.order.PutUint32(buf[offset:offset+domain.WordSize], value)
}

func (v *view) Name() string {
	return string(v.name)
}
