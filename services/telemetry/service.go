// Package telemetry owns the BMP280 lifecycle and publishes compensated
// readings onto the message bus.
//
// Topics:
//
//	env/<id>/temperature  TemperatureValue (retained)
//	env/<id>/pressure     PressureValue (retained)
//	env/<id>/error        string errcode (not retained)
//	config/telemetry      map with "interval_ms" to change the cadence
package telemetry

import (
	"context"
	"time"

	"github.com/mucahitdemir/pico-examples/bus"
	"github.com/mucahitdemir/pico-examples/drivers/bmp280"
	"github.com/mucahitdemir/pico-examples/errcode"
)

var topicConfig = bus.Topic{"config", "telemetry"}

// TemperatureValue is the published temperature payload.
type TemperatureValue struct {
	CentiC int32 // hundredths of a degree Celsius
}

// PressureValue is the published pressure payload. Valid is false when the
// driver returned its "compensation unavailable" sentinel.
type PressureValue struct {
	PaQ24_8 uint32 // pascals, Q24.8 fixed point
	Valid   bool
}

// Config for the service. Zero fields take defaults.
type Config struct {
	ID       string        // sensor instance id, default "bmp0"
	Interval time.Duration // poll cadence; the sensor refreshes every 500 ms
}

type Service struct {
	cfg Config
	dev *bmp280.Device
}

func New(dev *bmp280.Device, cfg Config) *Service {
	if cfg.ID == "" {
		cfg.ID = "bmp0"
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 750 * time.Millisecond
	}
	return &Service{cfg: cfg, dev: dev}
}

// Start brings the sensor up (reset, configure, calibrate) and launches the
// polling loop. Bringup errors are returned to the caller; the driver never
// retries on its own and neither does Start.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	if err := s.dev.Reset(); err != nil {
		return err
	}
	if err := s.dev.Configure(); err != nil {
		return err
	}
	if err := s.dev.Calibrate(); err != nil {
		return err
	}
	go s.serviceLoop(ctx, conn)
	return nil
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfig)
	defer conn.Unsubscribe(cfgSub)

	topicTemp := bus.Topic{"env", s.cfg.ID, "temperature"}
	topicPress := bus.Topic{"env", s.cfg.ID, "pressure"}
	topicErr := bus.Topic{"env", s.cfg.ID, "error"}

	tick := time.NewTicker(s.cfg.Interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			println("Info: telemetry service stopping")
			return
		case <-tick.C:
			var r bmp280.Reading
			if err := s.dev.Poll(&r); err != nil {
				// Transport faults are reported and the cadence keeps
				// running; the next tick is the retry policy.
				conn.Publish(conn.NewMessage(topicErr, string(errcode.MapDriverErr(err)), false))
				continue
			}
			conn.Publish(conn.NewMessage(topicTemp, TemperatureValue{CentiC: r.CentiCelsius}, true))
			conn.Publish(conn.NewMessage(topicPress, PressureValue{PaQ24_8: r.PascalsQ24_8, Valid: r.PascalsQ24_8 != 0}, true))
		case msg := <-cfgSub.Channel():
			if m, ok := msg.Payload.(map[string]any); ok {
				if iv, ok := m["interval_ms"]; ok {
					if ms, ok := asInt(iv); ok && ms > 0 {
						tick.Reset(time.Duration(ms) * time.Millisecond)
						println("Info: telemetry interval set to", ms, "ms")
					}
				}
			}
		}
	}
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int32:
		return int(x), true
	case int64:
		return int(x), true
	case float64:
		return int(x), true
	default:
		return 0, false
	}
}
