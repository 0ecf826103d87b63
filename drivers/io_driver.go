package drivers

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// IoDriver is a digital I/O port. Setup configures the given pins: inputs
// get a pull-up, outputs start low.
type IoDriver interface {
	Setup(ctx context.Context, inputs []uint16, outputs []uint16) error
	Close() error
	String() string
	IsReady() bool
	GetInput(pin uint16) (DigitalInput, error)
	GetOutput(pin uint16) (DigitalOutput, error)
	GetAllIo() (inputs []uint16, outputs []uint16)
}

func MapAllIoDrivers() map[string]IoDriver {
	drivers := []IoDriver{
		&GpIO{},
		&PeriphIO{},
		&McpIO{},
		&MockIoDriver{},
	}

	mapped := make(map[string]IoDriver)
	for _, driver := range drivers {
		mapped[driver.String()] = driver
	}
	return mapped
}

// IoDriverByName returns a fresh, not set up driver of the given kind.
func IoDriverByName(name string) (IoDriver, error) {
	driver, found := MapAllIoDrivers()[strings.ToLower(name)]
	if !found {
		return nil, errors.Errorf("unknown io driver: %s", name)
	}
	return driver, nil
}

// DigitalInput reads a pin level, true meaning high.
type DigitalInput interface {
	GetState() (bool, error)
}

// DigitalOutput drives a pin, true meaning high.
type DigitalOutput interface {
	GetState() (bool, error)
	Set(bool) error
}

func checkPinRange(pins []uint16, max uint16, driverName string) error {
	for _, pin := range pins {
		if pin > max {
			return errors.Errorf("pin %d out of range (%s takes pins up to %d)", pin, driverName, max)
		}
	}
	return nil
}
