package pbjson

import (
	"fmt"
	"math"
	"strconv"

	pbjbytes "github.com/hashgraph/pbj-go/bytes"
)

// AppendInt64String appends the JSON-string form of a 64-bit value
// (spec.md §4.4: int64/uint64/sint64/fixed64/sfixed64 are JSON strings on
// write).
func AppendInt64String(dst []byte, v int64) []byte {
	dst = append(dst, '"')
	dst = strconv.AppendInt(dst, v, 10)
	return append(dst, '"')
}

func AppendUint64String(dst []byte, v uint64) []byte {
	dst = append(dst, '"')
	dst = strconv.AppendUint(dst, v, 10)
	return append(dst, '"')
}

// AppendInt32 appends a plain JSON number, the 32-bit row of §4.4.
func AppendInt32(dst []byte, v int32) []byte { return strconv.AppendInt(dst, int64(v), 10) }
func AppendUint32(dst []byte, v uint32) []byte {
	return strconv.AppendUint(dst, uint64(v), 10)
}

// AppendFloat appends a double/float per §4.4: a JSON number, or one of
// the three special-value strings for NaN/+Inf/-Inf.
func AppendFloat(dst []byte, v float64, bitSize int) []byte {
	switch {
	case math.IsNaN(v):
		return append(dst, `"NaN"`...)
	case math.IsInf(v, 1):
		return append(dst, `"Infinity"`...)
	case math.IsInf(v, -1):
		return append(dst, `"-Infinity"`...)
	default:
		return strconv.AppendFloat(dst, v, 'g', -1, bitSize)
	}
}

// AppendBool appends true/false.
func AppendBool(dst []byte, v bool) []byte {
	if v {
		return append(dst, "true"...)
	}
	return append(dst, "false"...)
}

// AppendJSONString appends a double-quoted, escaped JSON string.
func AppendJSONString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for _, r := range s {
		switch r {
		case '"':
			dst = append(dst, '\\', '"')
		case '\\':
			dst = append(dst, '\\', '\\')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\t':
			dst = append(dst, '\\', 't')
		case '\r':
			dst = append(dst, '\\', 'r')
		default:
			if r < 0x20 {
				dst = append(dst, []byte(fmt.Sprintf(`\u%04x`, r))...)
			} else {
				dst = appendRune(dst, r)
			}
		}
	}
	return append(dst, '"')
}

// AppendBytesBase64 appends the base64 (standard, padded) encoding of b,
// the form spec.md §4.4 mandates on write, though decode accepts URL-safe
// and/or unpadded too (see DecodeBytesBase64).
func AppendBytesBase64(dst []byte, b pbjbytes.Bytes) []byte {
	return AppendJSONString(dst, b.Base64())
}

// DecodeBytesBase64 accepts any of the four base64 alphabets, matching
// spec.md §4.4's read leniency.
func DecodeBytesBase64(s string) (pbjbytes.Bytes, error) {
	return pbjbytes.DecodeBase64(s)
}

// ParseInt64 accepts a JSON number or a JSON string of decimal digits
// (spec.md §4.4 read row for the 64-bit integer types).
func ParseInt64(text string, wasString bool) (int64, error) {
	return strconv.ParseInt(text, 10, 64)
}

func ParseUint64(text string) (uint64, error) {
	return strconv.ParseUint(text, 10, 64)
}

// ParseFloat accepts a JSON number or one of the three special-value
// strings.
func ParseFloat(text string, bitSize int) (float64, error) {
	switch text {
	case "NaN":
		return math.NaN(), nil
	case "Infinity":
		return math.Inf(1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	default:
		return strconv.ParseFloat(text, bitSize)
	}
}

// ParseBool accepts a JSON bool literal's text form ("true"/"false") as
// produced by the lexer, or the string variants spec.md §4.4 allows on
// read.
func ParseBool(text string) (bool, error) {
	switch text {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("pbjson: invalid bool literal %q", text)
	}
}
