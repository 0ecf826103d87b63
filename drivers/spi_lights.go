package drivers

import (
	"context"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"

	"github.com/hubertat/powerbay/sequencer"
)

const spiLightsDriverName = "spi"

// SpiLights clocks WS2812 pixels out of an SPI MOSI line using the periph.io
// NRZ encoder.
type SpiLights struct {
	// Port is the spireg port name, the first registered port when empty.
	Port string

	port  spi.PortCloser
	dev   *nrzled.Dev
	buf   []byte
	count int
}

func (sl *SpiLights) Setup(ctx context.Context, count int) (err error) {
	if count <= 0 {
		return errors.Errorf("spi lights need at least one pixel, got %d", count)
	}

	_, err = host.Init()
	if err != nil {
		return errors.Wrap(err, "failed to init periph host")
	}

	sl.port, err = spireg.Open(sl.Port)
	if err != nil {
		return errors.Wrapf(err, "failed to open spi port %q", sl.Port)
	}

	opts := nrzled.DefaultOpts
	opts.NumPixels = count
	opts.Channels = 3

	sl.dev, err = nrzled.NewSPI(sl.port, &opts)
	if err != nil {
		sl.port.Close()
		return errors.Wrap(err, "failed to create nrzled device")
	}

	sl.buf = make([]byte, 3*count)
	sl.count = count
	return nil
}

func (sl *SpiLights) Display(colors []sequencer.Color) error {
	if err := checkFrame(colors, sl.count, spiLightsDriverName); err != nil {
		return err
	}

	for i, c := range colors {
		sl.buf[3*i] = c.R()
		sl.buf[3*i+1] = c.G()
		sl.buf[3*i+2] = c.B()
	}

	_, err := sl.dev.Write(sl.buf)
	if err != nil {
		return errors.Wrap(err, "failed to write spi light frame")
	}
	return nil
}

func (sl *SpiLights) Close() error {
	if sl.port == nil {
		return nil
	}
	sl.count = 0

	haltErr := sl.dev.Halt()
	closeErr := sl.port.Close()
	if haltErr != nil {
		return errors.Wrap(haltErr, "failed to halt spi lights")
	}
	return errors.Wrap(closeErr, "failed to close spi port")
}

func (sl *SpiLights) String() string {
	return spiLightsDriverName
}
