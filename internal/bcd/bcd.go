// Package bcd converts between decimal integers and 16-bit packed BCD.
//
// Packed BCD stores one decimal digit per 4-bit nibble, least significant
// digit in the lowest nibble. Transponder codes are exchanged with the
// simulator in this form: squawk 1200 is 0x1200.
package bcd

// MaxDigits is the number of decimal digits a 16-bit value can carry.
const MaxDigits = 4

// Encode packs value into up to four nibbles, least significant digit first.
// Digits beyond the fourth are dropped, so Encode(12345) == 0x2345.
// Negative values encode as 0.
func Encode(value int) uint16 {
	var out uint16
	for shift := 0; value > 0 && shift < 4*MaxDigits; shift += 4 {
		out |= uint16(value%10) << shift
		value /= 10
	}
	return out
}

// Decode unpacks a packed BCD value. Nibbles above 9 are weighted as-is,
// matching what the simulator reports for malformed codes.
func Decode(packed uint16) int {
	result := 0
	multiplier := 1
	for packed > 0 {
		result += int(packed&0xF) * multiplier
		multiplier *= 10
		packed >>= 4
	}
	return result
}
