package bmp280

// Fixed-point compensation from the BMP280 datasheet, 32-bit integer path.
//
// Everything here must stay in 32-bit registers: Go's int32/uint32 wrap
// two's-complement and >> on int32 is arithmetic, which reproduces the
// reference output bit-for-bit. Widening any intermediate changes results.
// The functions are pure: no bus I/O, no allocation, no retained state.

// fineTemp computes the shared fine-resolution temperature value both the
// temperature and pressure conversions depend on.
func fineTemp(rawT int32, c CalibrationParams) int32 {
	v1 := (((rawT >> 3) - (int32(c.T1) << 1)) * int32(c.T2)) >> 11
	d := (rawT >> 4) - int32(c.T1)
	v2 := (((d * d) >> 12) * int32(c.T3)) >> 14
	return v1 + v2
}

// compensateTemp converts a fine temperature to hundredths of a degree
// Celsius (2508 = 25.08 C).
func compensateTemp(fine int32) int32 {
	return (fine*5 + 128) >> 8
}

// compensatePressure converts a raw pressure sample to Q24.8 fixed-point
// pascals. A result of exactly 0 means compensation was unavailable: a
// degenerate trim set drove the divisor to zero and the reference
// implementation returns 0 rather than dividing. Callers must treat 0 as
// "no reading", not as a physical pressure.
func compensatePressure(rawP, fine int32, c CalibrationParams) uint32 {
	v1 := (fine >> 1) - 64000
	v2 := (((v1 >> 2) * (v1 >> 2)) >> 11) * int32(c.P6)
	v2 += (v1 * int32(c.P5)) << 1
	v2 = (v2 >> 2) + (int32(c.P4) << 16)
	v1 = (((int32(c.P3) * (((v1 >> 2) * (v1 >> 2)) >> 13)) >> 3) +
		((int32(c.P2) * v1) >> 1)) >> 18
	v1 = ((32768 + v1) * int32(c.P1)) >> 15
	if v1 == 0 {
		return 0
	}
	p := (uint32(1048576-rawP) - uint32(v2>>12)) * 3125
	// Choose which side of the division carries the factor of two so the
	// unsigned multiply cannot lose the top bit.
	if p < 0x80000000 {
		p = (p << 1) / uint32(v1)
	} else {
		p = (p / uint32(v1)) * 2
	}
	v1 = (int32(c.P9) * (int32((p>>3)*(p>>3)) >> 13)) >> 12
	v2 = (int32(p>>2) * int32(c.P8)) >> 13
	return uint32(int32(p) + ((v1 + v2 + int32(c.P7)) >> 4))
}
