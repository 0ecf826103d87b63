package drivers

import (
	"context"

	"github.com/pkg/errors"
	"github.com/racerxdl/go-mcp23017"
)

const mcpioDriverName = "mcpio"

// McpIO drives the 16 pins of an MCP23017 I2C port expander.
type McpIO struct {
	device *mcp23017.Device

	inputs  []*McpInput
	outputs []*McpOutput
	isReady bool

	BusNo         uint8
	DevNo         uint8
	InvertInputs  bool
	InvertOutputs bool
}

type McpInput struct {
	pin    uint8
	invert bool

	device *mcp23017.Device
}

type McpOutput struct {
	pin    uint8
	invert bool

	device *mcp23017.Device
}

func (min *McpInput) GetState() (state bool, err error) {
	rawState, err := min.device.DigitalRead(min.pin)
	if err != nil {
		err = errors.Wrapf(err, "mcpio failed to read pin %d", min.pin)
		return
	}

	state = bool(rawState) != min.invert
	return
}

func (mout *McpOutput) GetState() (state bool, err error) {
	rawState, err := mout.device.DigitalRead(mout.pin)
	if err != nil {
		err = errors.Wrapf(err, "mcpio failed to read back pin %d", mout.pin)
		return
	}

	state = bool(rawState) != mout.invert
	return
}

func (mout *McpOutput) Set(state bool) (err error) {
	if mout.invert {
		state = !state
	}

	err = mout.device.DigitalWrite(mout.pin, mcp23017.PinLevel(state))
	if err != nil {
		err = errors.Wrapf(err, "mcpio failed to write pin %d", mout.pin)
	}

	return
}

func (mcp *McpIO) String() string {
	return mcpioDriverName
}

func (mcp *McpIO) IsReady() bool {
	return mcp.isReady
}

func (mcp *McpIO) Setup(ctx context.Context, inputs []uint16, outputs []uint16) (err error) {
	if err = checkPinRange(inputs, 15, mcpioDriverName); err != nil {
		return
	}
	if err = checkPinRange(outputs, 15, mcpioDriverName); err != nil {
		return
	}

	mcp.device, err = mcp23017.Open(mcp.BusNo, mcp.DevNo)
	if err != nil {
		return errors.Wrapf(err, "failed to open mcp23017 (bus %d, dev %d)", mcp.BusNo, mcp.DevNo)
	}

	for _, inputPin := range inputs {
		err = mcp.device.PinMode(uint8(inputPin), mcp23017.INPUT)
		if err != nil {
			return errors.Wrapf(err, "mcpio failed to set pin %d as input", inputPin)
		}
		err = mcp.device.SetPullUp(uint8(inputPin), true)
		if err != nil {
			return errors.Wrapf(err, "mcpio failed to pull up pin %d", inputPin)
		}
		mcp.inputs = append(mcp.inputs, &McpInput{pin: uint8(inputPin), invert: mcp.InvertInputs, device: mcp.device})
	}

	for _, outputPin := range outputs {
		err = mcp.device.PinMode(uint8(outputPin), mcp23017.OUTPUT)
		if err != nil {
			return errors.Wrapf(err, "mcpio failed to set pin %d as output", outputPin)
		}
		out := &McpOutput{pin: uint8(outputPin), invert: mcp.InvertOutputs, device: mcp.device}
		err = out.Set(false)
		if err != nil {
			return
		}
		mcp.outputs = append(mcp.outputs, out)
	}

	mcp.isReady = true

	return
}

func (mcp *McpIO) GetInput(id uint16) (DigitalInput, error) {
	for _, in := range mcp.inputs {
		if uint16(in.pin) == id {
			return in, nil
		}
	}

	return nil, errors.Errorf("mcpio input (id: %d) not found", id)
}

func (mcp *McpIO) GetOutput(id uint16) (DigitalOutput, error) {
	for _, out := range mcp.outputs {
		if uint16(out.pin) == id {
			return out, nil
		}
	}

	return nil, errors.Errorf("mcpio output (id: %d) not found", id)
}

func (mcp *McpIO) Close() error {
	if mcp.device == nil {
		return nil
	}
	mcp.isReady = false
	for _, output := range mcp.outputs {
		output.Set(false)
	}
	return mcp.device.Close()
}

func (mcp *McpIO) GetAllIo() (inputs []uint16, outputs []uint16) {
	for _, input := range mcp.inputs {
		inputs = append(inputs, uint16(input.pin))
	}

	for _, output := range mcp.outputs {
		outputs = append(outputs, uint16(output.pin))
	}

	return
}
