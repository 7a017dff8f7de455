package snapshot

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/iamNilotpal/lthash/internal/core/domain"
	"github.com/iamNilotpal/lthash/pkg/checksum"
	"github.com/iamNilotpal/lthash/pkg/errors"
)

// Snapshot fields use protobuf wire encoding:
//
//	message Snapshot {
//	  uint32 version    = 1;
//	  string algorithm  = 2;
//	  string byte_order = 3;
//	  bytes  checksum   = 4;
//	  int64  created_at = 5; // unix nanoseconds
//	  fixed32 crc32c    = 6; // over every preceding byte
//	}
const (
	fieldVersion   protowire.Number = 1
	fieldAlgorithm protowire.Number = 2
	fieldByteOrder protowire.Number = 3
	fieldChecksum  protowire.Number = 4
	fieldCreatedAt protowire.Number = 5
	fieldCRC       protowire.Number = 6
)

var (
	ErrMissingCRC         = stderrors.New("snapshot has no integrity checksum")
	ErrCorrupted          = stderrors.New("snapshot integrity checksum mismatch")
	ErrUnsupportedVersion = stderrors.New("unsupported snapshot version")
)

// Encode serializes s. The CRC field is always written last.
func Encode(s *Snapshot) []byte {
	return appendCRC(appendFields(nil, s))
}

func appendFields(b []byte, s *Snapshot) []byte {
	b = protowire.AppendTag(b, fieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(Version))
	b = protowire.AppendTag(b, fieldAlgorithm, protowire.BytesType)
	b = protowire.AppendString(b, s.Algorithm)
	b = protowire.AppendTag(b, fieldByteOrder, protowire.BytesType)
	b = protowire.AppendString(b, string(s.ByteOrder))
	b = protowire.AppendTag(b, fieldChecksum, protowire.BytesType)
	b = protowire.AppendBytes(b, s.Checksum)
	b = protowire.AppendTag(b, fieldCreatedAt, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(s.CreatedAt.UnixNano()))
	return b
}

func appendCRC(b []byte) []byte {
	sum := checksum.Checksum(b)
	b = protowire.AppendTag(b, fieldCRC, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, sum)
}

// Decode parses a snapshot produced by Encode. Unknown fields are skipped.
// Failures are reported as ErrorEncoding errors.
func Decode(data []byte) (*Snapshot, error) {
	s, err := decode(data)
	if err != nil {
		return nil, errors.New(errors.ErrorEncoding, "decode snapshot", err)
	}
	return s, nil
}

func decode(data []byte) (*Snapshot, error) {
	s := &Snapshot{}
	crcAt := -1
	var crc uint32

	for off := 0; off < len(data); {
		start := off
		num, typ, n := protowire.ConsumeTag(data[off:])
		if n < 0 {
			return nil, fmt.Errorf("tag at offset %d: %w", off, protowire.ParseError(n))
		}
		off += n

		switch {
		case num == fieldVersion && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data[off:])
			if n < 0 {
				return nil, fmt.Errorf("version: %w", protowire.ParseError(n))
			}
			s.Version = uint32(v)
			off += n

		case num == fieldAlgorithm && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(data[off:])
			if n < 0 {
				return nil, fmt.Errorf("algorithm: %w", protowire.ParseError(n))
			}
			s.Algorithm = v
			off += n

		case num == fieldByteOrder && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(data[off:])
			if n < 0 {
				return nil, fmt.Errorf("byte order: %w", protowire.ParseError(n))
			}
			s.ByteOrder = domain.ByteOrder(v)
			off += n

		case num == fieldChecksum && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data[off:])
			if n < 0 {
				return nil, fmt.Errorf("checksum: %w", protowire.ParseError(n))
			}
			s.Checksum = bytes.Clone(v)
			off += n

		case num == fieldCreatedAt && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data[off:])
			if n < 0 {
				return nil, fmt.Errorf("created at: %w", protowire.ParseError(n))
			}
			s.CreatedAt = time.Unix(0, int64(v)).UTC()
			off += n

		case num == fieldCRC && typ == protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(data[off:])
			if n < 0 {
				return nil, fmt.Errorf("crc: %w", protowire.ParseError(n))
			}
			crc, crcAt = v, start
			off += n

			// Nothing may follow the CRC it does not cover.
			if off != len(data) {
				return nil, ErrCorrupted
			}

		default:
			n := protowire.ConsumeFieldValue(num, typ, data[off:])
			if n < 0 {
				return nil, fmt.Errorf("field %d: %w", num, protowire.ParseError(n))
			}
			off += n
		}
	}

	if crcAt < 0 {
		return nil, ErrMissingCRC
	}

	if !checksum.VerifyChecksum(data[:crcAt], crc) {
		return nil, ErrCorrupted
	}

	if s.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, s.Version)
	}

	if n := len(s.Checksum); n != 0 && n != domain.ChecksumSize {
		return nil, fmt.Errorf("checksum must be empty or %d bytes, got %d", domain.ChecksumSize, n)
	}

	return s, nil
}
