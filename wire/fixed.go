package wire

import (
	"math"

	"github.com/nsd20463/cpuendian"
)

// Fixed32/Fixed64 are little-endian on the wire regardless of host
// endianness. This mirrors protobuf3/decode.go's le32tocpu/le64tocpu,
// which only byte-swap when cpuendian.Big is true (i.e. never on the
// amd64/arm64 hosts this runtime targets in practice, but correct on any
// big-endian host too).

func le32tocpu(x uint32) uint32 {
	if cpuendian.Big {
		x = (x&0xff)<<24 | (x&0xff00)<<8 | (x&0xff0000)>>8 | (x&0xff000000)>>24
	}
	return x
}

func cputole32(x uint32) uint32 { return le32tocpu(x) } // the swap is its own inverse

func le64tocpu(x uint64) uint64 {
	if cpuendian.Big {
		x = (x&0xff)<<56 | (x&0xff00)<<40 | (x&0xff0000)<<24 | (x&0xff000000)<<8 |
			(x&0xff00000000)>>8 | (x&0xff0000000000)>>24 | (x&0xff000000000000)>>40 | (x&0xff00000000000000)>>56
	}
	return x
}

func cputole64(x uint64) uint64 { return le64tocpu(x) }

// ConsumeFixed32 reads 4 little-endian bytes at off.
func ConsumeFixed32(buf []byte, off int) (x uint32, next int, err error) {
	end := off + 4
	if end < off || end > len(buf) {
		return 0, off, ErrTruncated
	}
	x = uint32(buf[off]) | uint32(buf[off+1])<<8 | uint32(buf[off+2])<<16 | uint32(buf[off+3])<<24
	return le32tocpu(x), end, nil
}

// ConsumeFixed64 reads 8 little-endian bytes at off.
func ConsumeFixed64(buf []byte, off int) (x uint64, next int, err error) {
	end := off + 8
	if end < off || end > len(buf) {
		return 0, off, ErrTruncated
	}
	x = uint64(buf[off]) | uint64(buf[off+1])<<8 | uint64(buf[off+2])<<16 | uint64(buf[off+3])<<24 |
		uint64(buf[off+4])<<32 | uint64(buf[off+5])<<40 | uint64(buf[off+6])<<48 | uint64(buf[off+7])<<56
	return le64tocpu(x), end, nil
}

// AppendFixed32 appends 4 little-endian bytes to dst.
func AppendFixed32(dst []byte, x uint32) []byte {
	x = cputole32(x)
	return append(dst, byte(x), byte(x>>8), byte(x>>16), byte(x>>24))
}

// AppendFixed64 appends 8 little-endian bytes to dst.
func AppendFixed64(dst []byte, x uint64) []byte {
	x = cputole64(x)
	return append(dst, byte(x), byte(x>>8), byte(x>>16), byte(x>>24), byte(x>>32), byte(x>>40), byte(x>>48), byte(x>>56))
}

// Float32bits/Float32frombits and Float64bits/Float64frombits round out the
// fixed32/fixed64 family for the float/double proto types; these are
// thin aliases over math.Float*bits so codec field encoders never import
// math directly.
func Float32bits(f float32) uint32     { return math.Float32bits(f) }
func Float32frombits(b uint32) float32 { return math.Float32frombits(b) }
func Float64bits(f float64) uint64     { return math.Float64bits(f) }
func Float64frombits(b uint64) float64 { return math.Float64frombits(b) }
