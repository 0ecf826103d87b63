//go:build tinygo

package pico

import (
	"errors"
	"image/color"
	"machine"
	"runtime/interrupt"

	"tinygo.org/x/drivers/ws2812"

	"github.com/hubertat/powerbay/sequencer"
)

// Ws2812Lights bit-bangs the indicator chain. The driver sends GRB on the
// wire, colors are handed over as RGB.
type Ws2812Lights struct {
	pin machine.Pin
	dev ws2812.Device
	buf []color.RGBA
}

func (wl *Ws2812Lights) Setup(count int) error {
	if count <= 0 {
		return errors.New("ws2812 needs at least one light")
	}
	wl.pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	wl.dev = ws2812.New(wl.pin)
	wl.buf = make([]color.RGBA, count)
	return nil
}

func (wl *Ws2812Lights) Display(colors []sequencer.Color) error {
	if len(colors) != len(wl.buf) {
		return errors.New("ws2812 frame size mismatch")
	}
	for i, c := range colors {
		wl.buf[i] = c.RGBA()
	}

	var err error
	critical(func() { err = wl.dev.WriteColors(wl.buf) })
	return err
}

// critical runs f with interrupts off so the bit timing holds.
func critical(f func()) {
	state := interrupt.Disable()
	f()
	interrupt.Restore(state)
}
