package drivers

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

const periphDriverName = "periph"
const defaultPeriphPinPrefix = "GPIO"

// PeriphIO resolves pins by name through the periph.io registry, which
// covers the gpio character device on boards go-rpio does not know.
type PeriphIO struct {
	// PinPrefix is prepended to the pin number to form the registry name,
	// "GPIO" when empty.
	PinPrefix string

	inputs  []*PeriphInput
	outputs []*PeriphOutput
	isReady bool
}

type PeriphInput struct {
	id  uint16
	pin gpio.PinIO
}

type PeriphOutput struct {
	id  uint16
	pin gpio.PinIO
}

func (pi *PeriphInput) GetState() (bool, error) {
	return pi.pin.Read() == gpio.High, nil
}

func (po *PeriphOutput) GetState() (bool, error) {
	return po.pin.Read() == gpio.High, nil
}

func (po *PeriphOutput) Set(state bool) error {
	err := po.pin.Out(gpio.Level(state))
	if err != nil {
		return errors.Wrapf(err, "periph failed to drive %s", po.pin.Name())
	}
	return nil
}

func (pio *PeriphIO) pinName(id uint16) string {
	prefix := pio.PinPrefix
	if len(prefix) == 0 {
		prefix = defaultPeriphPinPrefix
	}
	return fmt.Sprintf("%s%d", prefix, id)
}

func (pio *PeriphIO) lookup(id uint16) (gpio.PinIO, error) {
	pin := gpioreg.ByName(pio.pinName(id))
	if pin == nil {
		return nil, errors.Errorf("periph pin %s not found", pio.pinName(id))
	}
	return pin, nil
}

func (pio *PeriphIO) Setup(ctx context.Context, inputs []uint16, outputs []uint16) error {
	_, err := host.Init()
	if err != nil {
		return errors.Wrap(err, "failed to init periph host")
	}

	for _, id := range inputs {
		pin, err := pio.lookup(id)
		if err != nil {
			return err
		}
		err = pin.In(gpio.PullUp, gpio.NoEdge)
		if err != nil {
			return errors.Wrapf(err, "periph failed to set %s as input", pin.Name())
		}
		pio.inputs = append(pio.inputs, &PeriphInput{id: id, pin: pin})
	}

	for _, id := range outputs {
		pin, err := pio.lookup(id)
		if err != nil {
			return err
		}
		err = pin.Out(gpio.Low)
		if err != nil {
			return errors.Wrapf(err, "periph failed to set %s as output", pin.Name())
		}
		pio.outputs = append(pio.outputs, &PeriphOutput{id: id, pin: pin})
	}

	pio.isReady = true
	return nil
}

func (pio *PeriphIO) String() string {
	return periphDriverName
}

func (pio *PeriphIO) IsReady() bool {
	return pio.isReady
}

func (pio *PeriphIO) Close() (err error) {
	pio.isReady = false
	for _, out := range pio.outputs {
		out.Set(false)
	}
	for _, in := range pio.inputs {
		if haltErr := in.pin.Halt(); haltErr != nil && err == nil {
			err = errors.Wrapf(haltErr, "periph failed to halt %s", in.pin.Name())
		}
	}
	return
}

func (pio *PeriphIO) GetInput(id uint16) (DigitalInput, error) {
	for _, in := range pio.inputs {
		if in.id == id {
			return in, nil
		}
	}
	return nil, errors.Errorf("periph input (id: %d) not found", id)
}

func (pio *PeriphIO) GetOutput(id uint16) (DigitalOutput, error) {
	for _, out := range pio.outputs {
		if out.id == id {
			return out, nil
		}
	}
	return nil, errors.Errorf("periph output (id: %d) not found", id)
}

func (pio *PeriphIO) GetAllIo() (inputs []uint16, outputs []uint16) {
	for _, in := range pio.inputs {
		inputs = append(inputs, in.id)
	}
	for _, out := range pio.outputs {
		outputs = append(outputs, out.id)
	}
	return
}
