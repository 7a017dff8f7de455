// Package checksum computes the CRC32 guarding persisted snapshots against
// torn or corrupted writes.
package checksum

import "hash/crc32"

var table = crc32.MakeTable(crc32.Castagnoli)

func Checksum(data []byte) uint32 {
	return crc32.Checksum(data, table)
}

func VerifyChecksum(data []byte, checksum uint32) bool {
	return crc32.Checksum(data, table) == checksum
}
