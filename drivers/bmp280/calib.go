package bmp280

// CalibrationParams holds the per-device factory trim read from the
// 0x88..0x9F block. T1 and P1 are unsigned; every other coefficient is a
// signed two's-complement word. The set is loaded once per session and
// never mutated afterwards.
type CalibrationParams struct {
	T1 uint16
	T2 int16
	T3 int16

	P1 uint16
	P2 int16
	P3 int16
	P4 int16
	P5 int16
	P6 int16
	P7 int16
	P8 int16
	P9 int16
}

// decodeCalibration unpacks the 24-byte trim block. Word n is stored
// little-endian: byte 2n is the LSB, byte 2n+1 the MSB.
func decodeCalibration(buf []byte) CalibrationParams {
	w := func(n int) uint16 {
		return uint16(buf[2*n]) | uint16(buf[2*n+1])<<8
	}
	return CalibrationParams{
		T1: w(0),
		T2: int16(w(1)),
		T3: int16(w(2)),

		P1: w(3),
		P2: int16(w(4)),
		P3: int16(w(5)),
		P4: int16(w(6)),
		P5: int16(w(7)),
		P6: int16(w(8)),
		P7: int16(w(9)),
		P8: int16(w(10)),
		P9: int16(w(11)),
	}
}
