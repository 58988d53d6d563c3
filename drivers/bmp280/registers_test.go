package bmp280

import "testing"

// Miscopying a register address or a shift in the config bytes corrupts
// readings without any visible failure, so every literal gets pinned.
func TestRegisterMap(t *testing.T) {
	cases := []struct {
		name string
		got  int
		want int
	}{
		{"Address", Address, 0x76},
		{"AddressAlt", AddressAlt, 0x77},
		{"regChipID", regChipID, 0xD0},
		{"chipID", chipID, 0x58},
		{"regReset", regReset, 0xE0},
		{"regCtrlMeas", regCtrlMeas, 0xF4},
		{"regConfig", regConfig, 0xF5},
		{"regPressMSB", regPressMSB, 0xF7},
		{"regPressLSB", regPressLSB, 0xF8},
		{"regPressXLSB", regPressXLSB, 0xF9},
		{"regTempMSB", regTempMSB, 0xFA},
		{"regTempLSB", regTempLSB, 0xFB},
		{"regTempXLSB", regTempXLSB, 0xFC},
		{"regCalib", regCalib, 0x88},
		{"calibLen", calibLen, 24},
		{"resetCmd", resetCmd, 0xB6},
		{"configValue", configValue, 0x94},
		{"ctrlMeasValue", ctrlMeasValue, 0x2F},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("%s = %#x, want %#x", tc.name, tc.got, tc.want)
		}
	}
}
