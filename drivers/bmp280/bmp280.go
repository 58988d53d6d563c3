// Package bmp280 provides a driver for the Bosch BMP280 pressure and
// temperature sensor over I2C.
//
//	d := bmp280.New(bus)
//	d.Reset()
//	d.Configure()              // 500 ms standby, x16 filter, normal mode
//	d.Calibrate()              // load factory trim, once per session
//	var r bmp280.Reading
//	d.Poll(&r)                 // repeatable; r.CentiCelsius, r.PascalsQ24_8
//
// NOTE: I2C.Tx MUST perform a write followed by a repeated-start read when
// both w and r are provided, without releasing the bus. The driver issues
// every register-select-then-read as a single Tx for that reason.
//
// Compensation uses the datasheet's 32-bit fixed-point path only; the float
// helpers on Reading are for display and never feed back into conversion.
package bmp280

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

// Errors returned by the driver. Bus errors pass through unchanged; the
// driver never retries on its own.
var (
	ErrUninitialized = errors.New("bmp280: not initialized")
	ErrNotDetected   = errors.New("bmp280: chip not detected")
)

// StandbyPeriod is the data refresh interval implied by configValue.
// In normal mode the sensor free-runs at this cadence; polling faster
// returns the same sample again.
const StandbyPeriod = 500 * time.Millisecond

// Reading is one compensated sample.
type Reading struct {
	// CentiCelsius is the temperature in hundredths of a degree Celsius.
	CentiCelsius int32
	// PascalsQ24_8 is the pressure in pascals with 8 fractional bits
	// (Pa * 256). A value of exactly 0 means compensation was unavailable.
	PascalsQ24_8 uint32
}

// Celsius returns the temperature as a float, for display only.
func (r Reading) Celsius() float32 { return float32(r.CentiCelsius) / 100 }

// KiloPascals returns the pressure as a float, for display only.
func (r Reading) KiloPascals() float32 { return float32(r.PascalsQ24_8) / 256000 }

// Device wraps an I2C connection to a BMP280. The zero value is not usable;
// construct with New.
type Device struct {
	bus     drivers.I2C
	Address uint16

	configured bool
	calibrated bool
	calib      CalibrationParams

	// Fixed buffers to avoid per-call heap allocations.
	wbuf [2]byte
	rbuf [calibLen]byte
}

// New creates a BMP280 connection at the default address. The I2C bus must
// already be configured. This only creates the Device object; it does not
// touch the device.
func New(bus drivers.I2C) Device {
	return Device{bus: bus, Address: Address}
}

// Connected probes the chip ID register and reports whether a BMP280
// answered. Sibling parts (BME280 etc.) carry different IDs and are
// rejected: their register maps differ.
func (d *Device) Connected() bool {
	var id [1]byte
	if err := d.readReg(regChipID, id[:]); err != nil {
		return false
	}
	return id[0] == chipID
}

// Reset triggers the power-on-reset procedure. Any earlier configuration
// and calibration no longer apply and must be redone.
func (d *Device) Reset() error {
	if err := d.writeReg(regReset, resetCmd); err != nil {
		return err
	}
	d.configured = false
	d.calibrated = false
	return nil
}

// Configure writes the config and ctrl_meas registers, in that order,
// putting the sensor in normal mode with x1 temperature and x4 pressure
// oversampling. The order follows the datasheet example; the device itself
// does not require it.
func (d *Device) Configure() error {
	if err := d.writeReg(regConfig, configValue); err != nil {
		return err
	}
	if err := d.writeReg(regCtrlMeas, ctrlMeasValue); err != nil {
		return err
	}
	d.configured = true
	return nil
}

// Calibrate loads the factory trim block in a single 24-byte read and
// caches the decoded coefficients. It requires Configure to have run.
func (d *Device) Calibrate() error {
	if !d.configured {
		return ErrUninitialized
	}
	if err := d.readReg(regCalib, d.rbuf[:calibLen]); err != nil {
		return err
	}
	d.calib = decodeCalibration(d.rbuf[:calibLen])
	d.calibrated = true
	return nil
}

// Calibration returns the cached trim. Zero value until Calibrate succeeds.
func (d *Device) Calibration() CalibrationParams { return d.calib }

// Poll reads one raw sample and compensates it into out. Calling Poll
// before Calibrate is a programming error: it fails with ErrUninitialized
// without touching the bus.
func (d *Device) Poll(out *Reading) error {
	if !d.calibrated {
		return ErrUninitialized
	}
	rawT, rawP, err := d.readRaw()
	if err != nil {
		return err
	}
	fine := fineTemp(rawT, d.calib)
	out.CentiCelsius = compensateTemp(fine)
	out.PascalsQ24_8 = compensatePressure(rawP, fine, d.calib)
	return nil
}

// readRaw fetches the six auto-incrementing data registers starting at the
// pressure MSB and unpacks the two 20-bit ADC values, right-justified in
// 32-bit containers. No unit interpretation happens here.
func (d *Device) readRaw() (rawT, rawP int32, err error) {
	buf := d.rbuf[:6]
	if err := d.readReg(regPressMSB, buf); err != nil {
		return 0, 0, err
	}
	rawP = int32(buf[0])<<12 | int32(buf[1])<<4 | int32(buf[2])>>4
	rawT = int32(buf[3])<<12 | int32(buf[4])<<4 | int32(buf[5])>>4
	return rawT, rawP, nil
}

// I2C register helpers. A combined write+read Tx is the register-select
// write holding the bus (repeated start) plus the read that releases it.

func (d *Device) writeReg(reg, val byte) error {
	d.wbuf[0] = reg
	d.wbuf[1] = val
	return d.bus.Tx(d.Address, d.wbuf[:2], nil)
}

func (d *Device) readReg(reg byte, dst []byte) error {
	d.wbuf[0] = reg
	return d.bus.Tx(d.Address, d.wbuf[:1], dst)
}
