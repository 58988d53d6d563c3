package bmp280

const (
	// 7-bit I2C addresses. SDO strapped low selects 0x76, high selects 0x77.
	Address    = 0x76
	AddressAlt = 0x77

	// Chip identity.
	regChipID = 0xD0
	chipID    = 0x58

	// Control registers.
	regReset    = 0xE0
	regCtrlMeas = 0xF4
	regConfig   = 0xF5

	// Measurement registers, auto-incrementing 0xF7..0xFC:
	// pressure MSB/LSB/XLSB then temperature MSB/LSB/XLSB.
	regPressMSB  = 0xF7
	regPressLSB  = 0xF8
	regPressXLSB = 0xF9
	regTempMSB   = 0xFA
	regTempLSB   = 0xFB
	regTempXLSB  = 0xFC

	// Factory trim block: 12 little-endian 16-bit words at 0x88..0x9F.
	regCalib = 0x88
	calibLen = 24

	// Writing this to regReset triggers the power-on-reset procedure.
	resetCmd = 0xB6

	// "Handheld device dynamic" profile from the datasheet:
	// 500 ms standby, x16 IIR filter. Bit 0 is reserved and kept clear.
	configValue = ((0x04 << 5) | (0x05 << 2)) & 0xFC

	// Temperature oversampling x1, pressure oversampling x4, normal mode.
	ctrlMeasValue = (0x01 << 5) | (0x03 << 2) | 0x03
)
