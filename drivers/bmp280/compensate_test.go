package bmp280

import "testing"

// Trim set from the BMP280 datasheet's worked example (section 3.12).
func datasheetCalib() CalibrationParams {
	return CalibrationParams{
		T1: 27504, T2: 26435, T3: -1000,
		P1: 36477, P2: -10685, P3: 3024,
		P4: 2855, P5: 140, P6: -7,
		P7: 15500, P8: -14600, P9: 6000,
	}
}

func TestFineTempDatasheetExample(t *testing.T) {
	got := fineTemp(519888, datasheetCalib())
	if got != 128422 {
		t.Fatalf("fineTemp = %d, want 128422", got)
	}
}

func TestFineTempDeterministic(t *testing.T) {
	c := datasheetCalib()
	first := fineTemp(519888, c)
	for i := 0; i < 100; i++ {
		if got := fineTemp(519888, c); got != first {
			t.Fatalf("fineTemp varied: %d then %d", first, got)
		}
	}
}

func TestCompensateTemp(t *testing.T) {
	c := datasheetCalib()
	cases := []struct {
		rawT int32
		want int32
	}{
		{519888, 2508}, // 25.08 C, datasheet example
		{400000, -1264},
	}
	for _, tc := range cases {
		if got := compensateTemp(fineTemp(tc.rawT, c)); got != tc.want {
			t.Errorf("compensateTemp(rawT=%d) = %d, want %d", tc.rawT, got, tc.want)
		}
	}
}

func TestCompensatePressure(t *testing.T) {
	c := datasheetCalib()
	cases := []struct {
		rawT, rawP int32
		want       uint32
	}{
		{519888, 415148, 100656}, // datasheet example
		{400000, 300000, 113636},
	}
	for _, tc := range cases {
		fine := fineTemp(tc.rawT, c)
		if got := compensatePressure(tc.rawP, fine, c); got != tc.want {
			t.Errorf("compensatePressure(rawP=%d, rawT=%d) = %d, want %d",
				tc.rawP, tc.rawT, got, tc.want)
		}
	}
}

func TestCompensatePressureDegenerateTrim(t *testing.T) {
	// P1 = 0 drives the divisor to zero; the reference returns the 0
	// sentinel instead of dividing.
	c := datasheetCalib()
	c.P1 = 0
	fine := fineTemp(519888, c)
	if got := compensatePressure(415148, fine, c); got != 0 {
		t.Fatalf("degenerate trim: got %d, want 0", got)
	}
}
