// services/hal/adaptor_bmp280_driver.go
package hal

import (
	"context"
	"time"

	"github.com/mucahitdemir/pico-examples/drivers/bmp280"
	"github.com/mucahitdemir/pico-examples/x/mathx"

	"tinygo.org/x/drivers"
)

// One conversion at osrs_t x1 / osrs_p x4 takes ~12 ms; round up for the
// first sample after configuration.
const bmp280CollectHint = 20 * time.Millisecond

type bmp280Adaptor struct {
	id    string
	dev   bmp280.Device
	ready bool
}

// NewBMP280Adaptor wraps a BMP280 driver instance. The first Trigger
// configures the sensor and loads its calibration; in normal mode the
// device free-runs afterwards and Collect just drains the latest sample.
func NewBMP280Adaptor(id string, bus drivers.I2C, addr uint16) Adaptor {
	dev := bmp280.New(bus)
	if addr != 0 {
		dev.Address = addr
	}
	return &bmp280Adaptor{id: id, dev: dev}
}

func (a *bmp280Adaptor) ID() string { return a.id }

func (a *bmp280Adaptor) Capabilities() []CapInfo {
	return []CapInfo{
		{Kind: "temperature", Info: map[string]any{"unit": "C", "precision": 0.01, "schema_version": 1, "driver": "bmp280"}},
		{Kind: "pressure", Info: map[string]any{"unit": "Pa", "encoding": "q24.8", "schema_version": 1, "driver": "bmp280"}},
	}
}

func (a *bmp280Adaptor) Trigger(ctx context.Context) (time.Duration, error) {
	if !a.ready {
		if err := a.dev.Configure(); err != nil {
			return 0, err
		}
		if err := a.dev.Calibrate(); err != nil {
			return 0, err
		}
		a.ready = true
	}
	return bmp280CollectHint, nil
}

func (a *bmp280Adaptor) Collect(ctx context.Context) (Sample, error) {
	var r bmp280.Reading
	if err := a.dev.Poll(&r); err != nil {
		return nil, err
	}
	ts := time.Now().UnixMilli()
	centi := int32(mathx.Clamp(int(r.CentiCelsius), -32768, 32767))
	return Sample{
		{Kind: "temperature", Payload: map[string]any{"centi_c": int16(centi), "ts_ms": ts}, TsMs: ts},
		// A zero pressure is the driver's "compensation unavailable"
		// sentinel, surfaced as valid=false rather than an error.
		{Kind: "pressure", Payload: map[string]any{"pa_q24_8": r.PascalsQ24_8, "valid": r.PascalsQ24_8 != 0, "ts_ms": ts}, TsMs: ts},
	}, nil
}

func (a *bmp280Adaptor) Control(kind, method string, payload any) (any, error) {
	switch method {
	case "reset":
		if err := a.dev.Reset(); err != nil {
			return nil, err
		}
		a.ready = false
		return nil, nil
	case "connected":
		return a.dev.Connected(), nil
	default:
		return nil, ErrUnsupported
	}
}
