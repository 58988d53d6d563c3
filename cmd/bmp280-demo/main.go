//go:build rp2040 || rp2350

// cmd/bmp280-demo: read a BMP280 on i2c0 and print compensated values.
//
// Connections on a Raspberry Pi Pico board (other boards may vary):
//
//	GP4 (pin 6)  -> SDA on BMP280 board
//	GP5 (pin 7)  -> SCL on BMP280 board
//	3v3 (pin 36) -> VCC
//	GND (pin 38) -> GND
//
// The sensor must be driven at 3.3 V; the Pico GPIO cannot be used at 5 V.
package main

import (
	"context"
	"time"

	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"github.com/mucahitdemir/pico-examples/bus"
	"github.com/mucahitdemir/pico-examples/drivers/bmp280"
	"github.com/mucahitdemir/pico-examples/services/telemetry"
	"github.com/mucahitdemir/pico-examples/x/mathx"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(3 * time.Second)
	ctx := context.Background()

	println("[main] configuring i2c0 …")
	// I2C is open drain; the bus relies on pull-ups to idle high.
	if err := machine.I2C0.Configure(machine.I2CConfig{
		SDA:       machine.GP4,
		SCL:       machine.GP5,
		Frequency: 100_000,
	}); err != nil {
		println("[main] i2c configure failed:", err.Error())
		return
	}

	// Mirror output on UART0 besides USB CDC.
	console := uartx.UART0
	_ = console.Configure(uartx.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	dev := bmp280.New(machine.I2C0)
	if !dev.Connected() {
		emit(console, "bmp280 not detected on i2c0")
		return
	}

	println("[main] bootstrapping bus …")
	b := bus.NewBus(8)
	sub := b.NewConnection("ui").Subscribe(bus.T("env", "bmp0", "+"))

	println("[main] starting telemetry …")
	svc := telemetry.New(&dev, telemetry.Config{
		ID: "bmp0",
		// Poll every 750 ms; the sensor refreshes every 500 ms.
		Interval: 750 * time.Millisecond,
	})
	if err := svc.Start(ctx, b.NewConnection("telemetry")); err != nil {
		emit(console, "bringup failed: "+err.Error())
		return
	}

	for msg := range sub.Channel() {
		switch v := msg.Payload.(type) {
		case telemetry.TemperatureValue:
			emit(console, "temperature: "+formatCenti(v.CentiC)+" C")
		case telemetry.PressureValue:
			if !v.Valid {
				emit(console, "pressure: unavailable")
				continue
			}
			pa := mathx.RoundDiv(v.PaQ24_8, 256)
			emit(console, "pressure: "+utoa(pa)+" Pa")
		case string:
			emit(console, "error: "+v)
		}
	}
}

// emit prints a line to both the default output and the UART console.
func emit(console *uartx.UART, line string) {
	println(line)
	_, _ = console.Write([]byte(line))
	_, _ = console.Write([]byte("\r\n"))
}

// tiny formatters (no fmt)

func formatCenti(c int32) string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	frac := int(c % 100)
	return sign + itoa(int(c/100)) + "." + digit(frac/10) + digit(frac%10)
}

func digit(d int) string { return string([]byte{byte('0' + d)}) }

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	sign := ""
	if i < 0 {
		sign = "-"
		i = -i
	}
	var buf [16]byte
	b := len(buf)
	for i > 0 {
		b--
		buf[b] = byte('0' + i%10)
		i /= 10
	}
	return sign + string(buf[b:])
}

func utoa(u uint32) string { return itoa(int(u)) }
