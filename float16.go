package sketch

import "math"

// IEEE 754 binary16 conversion used by the RGBA16Float pixel codec.
// No third-party half-float package exists in the gogpu ecosystem, and
// the codec needs the exact bit layout, so the conversion is done here.

// float32ToHalf converts a float32 to its binary16 bit pattern with
// round-to-nearest-even. Values beyond the half range become infinity;
// NaN is preserved.
func float32ToHalf(f float32) uint16 {
	bits := math.Float32bits(f)
	sign := uint16(bits>>16) & 0x8000
	exp := int32(bits>>23&0xff) - 127
	mant := bits & 0x7fffff

	switch {
	case exp == 128: // inf or NaN
		if mant != 0 {
			return sign | 0x7e00
		}
		return sign | 0x7c00
	case exp > 15: // overflow to inf
		return sign | 0x7c00
	case exp >= -14: // normal
		h := sign | uint16(exp+15)<<10 | uint16(mant>>13)
		// Round to nearest even on the truncated 13 bits.
		round := mant & 0x1fff
		if round > 0x1000 || (round == 0x1000 && h&1 == 1) {
			h++
		}
		return h
	case exp >= -24: // subnormal
		mant |= 0x800000
		shift := uint32(-exp - 1) // 14..23
		h := sign | uint16(mant>>shift)
		round := mant & (1<<shift - 1)
		halfway := uint32(1) << (shift - 1)
		if round > halfway || (round == halfway && h&1 == 1) {
			h++
		}
		return h
	default: // underflow to signed zero
		return sign
	}
}

// halfToFloat32 converts a binary16 bit pattern to float32.
func halfToFloat32(h uint16) float32 {
	sign := uint32(h&0x8000) << 16
	exp := uint32(h >> 10 & 0x1f)
	mant := uint32(h & 0x3ff)

	switch exp {
	case 0:
		if mant == 0 {
			return math.Float32frombits(sign)
		}
		// Subnormal: normalize.
		e := uint32(127 - 15 + 1)
		for mant&0x400 == 0 {
			mant <<= 1
			e--
		}
		mant &= 0x3ff
		return math.Float32frombits(sign | e<<23 | mant<<13)
	case 0x1f:
		if mant == 0 {
			return math.Float32frombits(sign | 0x7f800000)
		}
		return math.Float32frombits(sign | 0x7fc00000 | mant<<13)
	default:
		return math.Float32frombits(sign | (exp+127-15)<<23 | mant<<13)
	}
}
