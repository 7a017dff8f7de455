package ports

// Defines an interface for reading and writing 32-bit words at byte offsets
// within a buffer. Implementations use one fixed endianness for both
// directions.
type WordViewPort interface {
	// ReadWord returns the word stored at buf[offset:offset+4].
	ReadWord(buf []byte, offset int) uint32

	// WriteWord stores value at buf[offset:offset+4].
	WriteWord(buf []byte, offset int, value uint32)

	// Name returns the byte order identifier, e.g. "little-endian".
	Name() string
}
