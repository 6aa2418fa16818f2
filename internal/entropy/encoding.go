package entropy

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Encoding selects the fixed-width per-cell layout fed to the compressor.
// Cells are always written in row-major order with no header.
type Encoding string

const (
	// U8 writes one byte per cell.
	U8 Encoding = "u8"
	// F64 writes each cell as a little-endian IEEE-754 float64, the layout of a
	// dense floating point matrix dumped to bytes.
	F64 Encoding = "f64"
)

// DefaultEncoding is used when no encoding is configured.
const DefaultEncoding = U8

// ParseEncoding validates s. An empty string selects DefaultEncoding.
func ParseEncoding(s string) (Encoding, error) {
	switch Encoding(s) {
	case "":
		return DefaultEncoding, nil
	case U8, F64:
		return Encoding(s), nil
	}
	return "", fmt.Errorf("unknown encoding %q (want %s or %s)", s, U8, F64)
}

// Width returns the number of bytes written per cell.
func (e Encoding) Width() int {
	if e == F64 {
		return 8
	}
	return 1
}

// AppendCells appends the encoding of cells to dst and returns the extended
// buffer.
func (e Encoding) AppendCells(dst []byte, cells []uint8) []byte {
	if e != F64 {
		return append(dst, cells...)
	}
	for _, c := range cells {
		dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(float64(c)))
	}
	return dst
}
