// Package nmea implements the wire-level primitives for NMEA 0183 AIVDM
// sentences: bit-string conversions, the AIS six-bit ASCII character set,
// payload armoring and sentence framing with checksums.
package nmea

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidChar is returned for characters outside the 64-glyph AIS
	// six-bit ASCII set.
	ErrInvalidChar = errors.New("character outside six-bit ASCII set")
	// ErrOutOfRange is returned when a value does not fit the requested bit
	// width. Field values are bounded during track validation so hitting this
	// from a payload encoder indicates a bug in the encoder itself.
	ErrOutOfRange = errors.New("value does not fit into given bit count")
)

// IntToBits converts num to an unsigned binary string of exactly bitCount
// characters, most significant bit first.
func IntToBits(num int64, bitCount int) (string, error) {
	if num < 0 || (bitCount < 64 && num >= 1<<uint(bitCount)) {
		return "", fmt.Errorf("%w: %d does not fit %d bits", ErrOutOfRange, num, bitCount)
	}
	bits := strconv.FormatInt(num, 2)
	if len(bits) < bitCount {
		bits = strings.Repeat("0", bitCount-len(bits)) + bits
	}
	return bits, nil
}

// SignedIntToBits converts num to a two's-complement binary string of exactly
// bitCount characters. Negative values are encoded as num AND (2^bitCount - 1).
func SignedIntToBits(num int64, bitCount int) (string, error) {
	limit := int64(1) << uint(bitCount-1)
	if num < -limit || num >= limit {
		return "", fmt.Errorf("%w: %d does not fit %d signed bits", ErrOutOfRange, num, bitCount)
	}
	if num < 0 {
		num &= 1<<uint(bitCount) - 1
	}
	return IntToBits(num, bitCount)
}

// BitsToInt parses a binary string as an unsigned integer.
func BitsToInt(bits string) (int64, error) {
	return strconv.ParseInt(bits, 2, 64)
}

// ASCIIToSixBit maps an ASCII character to its AIS six-bit code. Valid input
// characters are `@A..Z[\]^_` (codes 0-31) and ` !..?` (codes 32-63).
func ASCIIToSixBit(c byte) (byte, error) {
	switch {
	case c >= 64 && c <= 95:
		return c - 64, nil
	case c >= 32 && c <= 63:
		return c, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidChar, c)
}

// SixBitToArmor maps a six-bit value to its AIVDM payload armoring byte.
// Values 0-39 map to '0'..'W', values 40-63 to '`'..'w'.
func SixBitToArmor(v byte) (byte, error) {
	if v > 63 {
		return 0, fmt.Errorf("%w: six-bit value %d", ErrOutOfRange, v)
	}
	if v > 39 {
		v += 8
	}
	return v + 48, nil
}

// ArmorToSixBit is the inverse of SixBitToArmor. Bytes inside the armoring
// gap (88-95) or outside '0'..'w' are rejected.
func ArmorToSixBit(c byte) (byte, error) {
	if c < 48 || (c > 87 && c < 96) || c > 119 {
		return 0, fmt.Errorf("%w: armor byte %d", ErrInvalidChar, c)
	}
	v := c - 48
	if v > 40 {
		v -= 8
	}
	return v, nil
}

// PadText right-pads text with spaces to the required length.
func PadText(text string, requiredLength int) (string, error) {
	return PadTextWith(text, requiredLength, ' ')
}

// PadTextWith right-pads text with the given character to the required
// length. Text longer than the required length is an error.
func PadTextWith(text string, requiredLength int, padding byte) (string, error) {
	if len(text) > requiredLength {
		return "", fmt.Errorf("text %q is longer than required length %d", text, requiredLength)
	}
	return text + strings.Repeat(string(padding), requiredLength-len(text)), nil
}

// PadZeroBits right-pads a bit string with '0' to the required length and
// returns the padded string with the number of bits added.
func PadZeroBits(bits string, requiredLength int) (string, int) {
	added := requiredLength - len(bits)
	if added <= 0 {
		return bits, 0
	}
	return bits + strings.Repeat("0", added), added
}

// Armor converts a payload bit string into its armored ASCII form. The bit
// string is consumed in six-bit groups left to right; a final short group is
// right-padded with zero bits, reported as the fill-bit count (0-5).
func Armor(bits string) (payload string, fillBits int, err error) {
	buf := strings.Builder{}
	buf.Grow((len(bits) + 5) / 6)
	for i := 0; i < len(bits); i += 6 {
		end := i + 6
		if end > len(bits) {
			end = len(bits)
		}
		group, added := PadZeroBits(bits[i:end], 6)
		fillBits += added
		v, err := BitsToInt(group)
		if err != nil {
			return "", 0, err
		}
		armored, err := SixBitToArmor(byte(v))
		if err != nil {
			return "", 0, err
		}
		buf.WriteByte(armored)
	}
	return buf.String(), fillBits, nil
}

// PayloadToBits de-armors a payload back into its bit string. Fill bits are
// not removed as the payload does not carry the count itself.
func PayloadToBits(payload string) (string, error) {
	buf := strings.Builder{}
	buf.Grow(len(payload) * 6)
	for i := 0; i < len(payload); i++ {
		v, err := ArmorToSixBit(payload[i])
		if err != nil {
			return "", err
		}
		bits, err := IntToBits(int64(v), 6)
		if err != nil {
			return "", err
		}
		buf.WriteString(bits)
	}
	return buf.String(), nil
}
