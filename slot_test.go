package powerbay

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubertat/powerbay/drivers"
	"github.com/hubertat/powerbay/sequencer"
)

var testPins = SlotPins{BatteryEnable: 6, BusEnable: 0, FaultSense: 1, Presence: 4}

func newTestSlot(t *testing.T) (*Slot, *drivers.MockIoDriver) {
	t.Helper()

	io := &drivers.MockIoDriver{}
	require.NoError(t, io.Setup(context.Background(), testPins.inputs(), testPins.outputs()))

	slot := NewSlot(0, testPins)
	require.NoError(t, slot.Init(io, 0))
	return slot, io
}

func TestSlotInitNeedsReadyDriver(t *testing.T) {
	slot := NewSlot(1, testPins)

	assert.Error(t, slot.Init(&drivers.MockIoDriver{}, 0))
	assert.Equal(t, "slot1", slot.String())
	assert.Equal(t, sequencer.IdlePhase, slot.Phase())
	assert.Equal(t, [2]sequencer.Color{sequencer.Standby, sequencer.Standby}, slot.Colors())

	_, err := slot.Tick(0)
	assert.Error(t, err)
	assert.NoError(t, slot.Disable())
}

func TestSlotInitMissingPin(t *testing.T) {
	io := &drivers.MockIoDriver{}
	require.NoError(t, io.Setup(context.Background(), []uint16{testPins.FaultSense}, testPins.outputs()))

	assert.Error(t, NewSlot(0, testPins).Init(io, 0))
}

func TestSlotTickReportsTransition(t *testing.T) {
	slot, io := newTestSlot(t)

	res, err := slot.Tick(10 * time.Millisecond)
	require.NoError(t, err)
	assert.False(t, res.Entered)

	require.NoError(t, io.SetInput(testPins.Presence, false))
	res, err = slot.Tick(35 * time.Millisecond)
	require.NoError(t, err)

	assert.True(t, res.Entered)
	assert.Equal(t, sequencer.WaitHigh, res.Phase)
	assert.Equal(t, sequencer.CausePresence, res.Cause)
	assert.Equal(t, 35*time.Millisecond, slot.State().EnteredAt)
	assert.Equal(t, [2]sequencer.Color{sequencer.Run1, sequencer.Run1}, slot.Colors())
}

func TestSlotReadErrorsAreJoined(t *testing.T) {
	slot, io := newTestSlot(t)

	faultErr := errors.New("fault line gone")
	presenceErr := errors.New("presence line gone")
	require.NoError(t, io.FailInput(testPins.FaultSense, faultErr))
	require.NoError(t, io.FailInput(testPins.Presence, presenceErr))

	res, err := slot.Tick(0)

	require.Error(t, err)
	assert.ErrorIs(t, err, faultErr)
	assert.ErrorIs(t, err, presenceErr)
	assert.Equal(t, sequencer.FaultIndicate, res.Phase)
	assert.Equal(t, sequencer.Rails{}, res.Outputs.Rails)
}

func TestSlotDisable(t *testing.T) {
	slot, io := newTestSlot(t)

	_, err := slot.Tick(0)
	require.NoError(t, err)

	bus, err := io.GetOutput(testPins.BusEnable)
	require.NoError(t, err)
	state, _ := bus.GetState()
	require.True(t, state)

	require.NoError(t, slot.Disable())
	state, _ = bus.GetState()
	assert.False(t, state)
}
