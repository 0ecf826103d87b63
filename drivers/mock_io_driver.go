package drivers

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

const mockDriverName = "mock_driver"

type MockOutput struct {
	state            bool
	pin              uint16
	writeTo          io.Writer
	writeStateChange bool
}

func (mo *MockOutput) GetState() (bool, error) {
	return mo.state, nil
}

func (mo *MockOutput) Set(state bool) error {
	if mo.writeStateChange && state != mo.state {
		fmt.Fprintf(mo.writeTo, "[pin %d] state changed to %v\n", mo.pin, state)
	}
	mo.state = state
	return nil
}

// MockInput reads back whatever State holds. Inputs created by Setup start
// high, like a floating line with its pull-up enabled.
type MockInput struct {
	State bool
	Err   error
	pin   uint16
}

func (mi *MockInput) GetState() (bool, error) {
	return mi.State, mi.Err
}

// MockIoDriver keeps pin levels in memory; used by tests and the desktop
// simulator.
type MockIoDriver struct {
	inputs  []*MockInput
	outputs []*MockOutput
	ready   bool
}

func (md *MockIoDriver) Setup(ctx context.Context, inputs []uint16, outputs []uint16) error {
	for _, inPin := range inputs {
		md.inputs = append(md.inputs, &MockInput{pin: inPin, State: true})
	}
	for _, outPin := range outputs {
		md.outputs = append(md.outputs, &MockOutput{pin: outPin})
	}
	md.ready = true
	return nil
}

func (md *MockIoDriver) Close() error {
	md.ready = false
	for _, out := range md.outputs {
		out.Set(false)
	}
	return nil
}

func (md *MockIoDriver) String() string {
	return mockDriverName
}

func (md *MockIoDriver) IsReady() bool {
	return md.ready
}

func (md *MockIoDriver) findInput(pin uint16) *MockInput {
	for _, input := range md.inputs {
		if pin == input.pin {
			return input
		}
	}
	return nil
}

func (md *MockIoDriver) GetInput(pin uint16) (DigitalInput, error) {
	if input := md.findInput(pin); input != nil {
		return input, nil
	}
	return nil, errors.Errorf("mock input %d not found", pin)
}

func (md *MockIoDriver) GetOutput(pin uint16) (DigitalOutput, error) {
	for _, output := range md.outputs {
		if pin == output.pin {
			return output, nil
		}
	}
	return nil, errors.Errorf("mock output %d not found", pin)
}

// SetInput changes the level an input reads.
func (md *MockIoDriver) SetInput(pin uint16, state bool) error {
	input := md.findInput(pin)
	if input == nil {
		return errors.Errorf("mock input %d not found", pin)
	}
	input.State = state
	return nil
}

// FailInput makes reads of pin return err; nil clears it.
func (md *MockIoDriver) FailInput(pin uint16, err error) error {
	input := md.findInput(pin)
	if input == nil {
		return errors.Errorf("mock input %d not found", pin)
	}
	input.Err = err
	return nil
}

func (md *MockIoDriver) GetAllIo() (inputs []uint16, outputs []uint16) {
	for _, input := range md.inputs {
		inputs = append(inputs, input.pin)
	}
	for _, output := range md.outputs {
		outputs = append(outputs, output.pin)
	}
	return
}

func (md *MockIoDriver) MonitorStateChanges(writer io.Writer) {
	for _, out := range md.outputs {
		out.writeTo = writer
		out.writeStateChange = true
	}
}
