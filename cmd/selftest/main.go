// cmd/selftest: host-side sanity check of the BMP280 stack without
// hardware. Runs the full reset/configure/calibrate/poll sequence against
// a scripted in-memory sensor carrying the datasheet example values and
// verifies the fixed-point outputs.
package main

import (
	"fmt"
	"os"

	"github.com/mucahitdemir/pico-examples/drivers/bmp280"
	"github.com/mucahitdemir/pico-examples/x/mathx"
)

// Datasheet worked example: trim words and one raw sample.
var calibWords = []uint16{
	27504, 26435, 0xFC18, // T1, T2, T3 (-1000)
	36477, 0xD643, 3024, 2855, 140, 0xFFF9, 15500, 0xC6F8, 6000, // P1..P9
}

const (
	rawPressure = 415148
	rawTemp     = 519888

	wantCentiC  = 2508
	wantPaQ24_8 = 100656
)

type scriptedBMP280 struct {
	calib [24]byte
	data  [6]byte
	txs   int
}

func (f *scriptedBMP280) Tx(addr uint16, w, r []byte) error {
	f.txs++
	if len(w) == 1 && len(r) > 0 {
		switch w[0] {
		case 0xD0:
			r[0] = 0x58
		case 0x88:
			copy(r, f.calib[:])
		case 0xF7:
			copy(r, f.data[:])
		}
	}
	return nil
}

func newScripted() *scriptedBMP280 {
	f := &scriptedBMP280{}
	for n, w := range calibWords {
		f.calib[2*n] = byte(w)
		f.calib[2*n+1] = byte(w >> 8)
	}
	var rawP, rawT int32 = rawPressure, rawTemp
	f.data = [6]byte{
		byte(rawP >> 12), byte(rawP >> 4), byte(rawP << 4),
		byte(rawT >> 12), byte(rawT >> 4), byte(rawT << 4),
	}
	return f
}

func main() {
	f := newScripted()
	dev := bmp280.New(f)

	if !dev.Connected() {
		fail("chip id probe failed")
	}
	if err := dev.Reset(); err != nil {
		fail("reset: " + err.Error())
	}
	if err := dev.Configure(); err != nil {
		fail("configure: " + err.Error())
	}
	if err := dev.Calibrate(); err != nil {
		fail("calibrate: " + err.Error())
	}

	var r bmp280.Reading
	if err := dev.Poll(&r); err != nil {
		fail("poll: " + err.Error())
	}

	fmt.Printf("temperature: %d (%.2f C)\n", r.CentiCelsius, r.Celsius())
	fmt.Printf("pressure:    %d (%d Pa, %.3f kPa)\n",
		r.PascalsQ24_8, mathx.RoundDiv(r.PascalsQ24_8, 256), r.KiloPascals())
	fmt.Printf("bus transactions: %d\n", f.txs)

	if r.CentiCelsius != wantCentiC {
		fail(fmt.Sprintf("temperature = %d, want %d", r.CentiCelsius, wantCentiC))
	}
	if r.PascalsQ24_8 != wantPaQ24_8 {
		fail(fmt.Sprintf("pressure = %d, want %d", r.PascalsQ24_8, wantPaQ24_8))
	}
	fmt.Println("ok")
}

func fail(msg string) {
	fmt.Fprintln(os.Stderr, "selftest:", msg)
	os.Exit(1)
}
