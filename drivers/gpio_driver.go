package drivers

import (
	"context"

	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio/v4"
)

const gpioDriverName = "gpio"

// GpIO drives Raspberry Pi header pins through /dev/gpiomem.
type GpIO struct {
	inputs  []*GpInput
	outputs []*GpOutput

	InvertInputs  bool
	InvertOutputs bool

	isReady bool
}

type GpInput struct {
	pin    rpio.Pin
	invert bool
}

type GpOutput struct {
	pin    rpio.Pin
	invert bool
}

func (gpi *GpInput) GetState() (state bool, err error) {
	state = gpi.pin.Read() == rpio.High
	if gpi.invert {
		state = !state
	}

	return
}

func (gpo *GpOutput) Set(state bool) error {
	if gpo.invert {
		state = !state
	}
	if state {
		gpo.pin.High()
	} else {
		gpo.pin.Low()
	}

	return nil
}

func (gpo *GpOutput) GetState() (state bool, err error) {
	state = gpo.pin.Read() == rpio.High
	if gpo.invert {
		state = !state
	}

	return
}

func (gp *GpIO) Setup(ctx context.Context, inputs []uint16, outputs []uint16) error {
	if err := checkPinRange(inputs, 255, gpioDriverName); err != nil {
		return err
	}
	if err := checkPinRange(outputs, 255, gpioDriverName); err != nil {
		return err
	}

	err := rpio.Open()
	if err != nil {
		return errors.Wrapf(err, "failed to Setup gpio driver for pins: %v, %v; ", inputs, outputs)
	}

	for _, inPin := range inputs {
		pin := rpio.Pin(inPin)
		pin.Input()
		pin.PullUp()
		gp.inputs = append(gp.inputs, &GpInput{pin: pin, invert: gp.InvertInputs})
	}

	for _, outPin := range outputs {
		pin := rpio.Pin(outPin)
		pin.Output()
		out := &GpOutput{pin: pin, invert: gp.InvertOutputs}
		out.Set(false)
		gp.outputs = append(gp.outputs, out)
	}

	gp.isReady = true
	return nil
}

func (gp *GpIO) String() string {
	return gpioDriverName
}

func (gp *GpIO) IsReady() bool {
	return gp.isReady
}

func (gp *GpIO) Close() error {
	if !gp.isReady {
		return nil
	}
	gp.isReady = false
	for _, output := range gp.outputs {
		output.Set(false)
	}
	return rpio.Close()
}

func (gp *GpIO) GetInput(id uint16) (DigitalInput, error) {
	for _, in := range gp.inputs {
		if uint16(in.pin) == id {
			return in, nil
		}
	}

	return nil, errors.Errorf("GpIO Input (id: %d) not found", id)
}

func (gp *GpIO) GetOutput(id uint16) (DigitalOutput, error) {
	for _, out := range gp.outputs {
		if uint16(out.pin) == id {
			return out, nil
		}
	}

	return nil, errors.Errorf("GpIO Output (id: %d) not found", id)
}

func (gp *GpIO) GetAllIo() (inputs []uint16, outputs []uint16) {
	for _, input := range gp.inputs {
		inputs = append(inputs, uint16(input.pin))
	}

	for _, output := range gp.outputs {
		outputs = append(outputs, uint16(output.pin))
	}

	return
}
