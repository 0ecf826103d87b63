//go:build tinygo

package pico

import (
	"errors"
	"fmt"
	"machine"
	"time"

	"github.com/hubertat/powerbay/sequencer"
)

const TickInterval = 25 * time.Millisecond

const (
	boardType1 string = "PowerBayType1"
)

// BoardType1 is the reference wiring: rails on GP6/GP0 and GP7/GP3, fault
// sense on GP1/GP2, presence on GP4/GP5 and the indicator chain on GP8.
func BoardType1() *Board {
	return &Board{
		name: boardType1,
		slots: []*Slot{
			{index: 0, battery: machine.GP6, bus: machine.GP0, fault: machine.GP1, presence: machine.GP4},
			{index: 1, battery: machine.GP7, bus: machine.GP3, fault: machine.GP2, presence: machine.GP5},
		},
		lights: &Ws2812Lights{pin: machine.GP8},
	}
}

type Board struct {
	name   string
	slots  []*Slot
	lights *Ws2812Lights
	start  time.Time
	states []*sequencer.State
}

// Setup configures every pin, turns the rails off and shows the standby
// frame. The clock starts here.
func (b *Board) Setup() error {
	count := 2 * len(b.slots)

	err := b.lights.Setup(count)
	if err != nil {
		return errors.Join(err, errors.New("failed to setup lights"))
	}

	b.start = time.Now()
	b.states = b.states[:0]
	for _, slot := range b.slots {
		slot.setup(0)
		b.states = append(b.states, slot.state)
	}

	return b.lights.Display(sequencer.Uniform(sequencer.Standby, count))
}

func (b *Board) Name() string {
	return b.name
}

// Now is the time since Setup, in whole milliseconds.
func (b *Board) Now() time.Duration {
	return time.Since(b.start).Truncate(time.Millisecond)
}

// Tick runs both slots against one clock reading and pushes one frame. It
// returns the results in slot order.
func (b *Board) Tick() ([]sequencer.Result, error) {
	now := b.Now()

	results := make([]sequencer.Result, len(b.slots))
	for i, slot := range b.slots {
		results[i] = slot.tick(now)
	}

	return results, b.lights.Display(sequencer.Frame(b.states...))
}

func (b *Board) Slots() []*Slot {
	return b.slots
}

// Slot is one bay wired straight to RP2040 pins. Inputs are read with the
// internal pull-ups on, so a floating line reads as not asserted.
type Slot struct {
	index    int
	battery  machine.Pin
	bus      machine.Pin
	fault    machine.Pin
	presence machine.Pin

	state *sequencer.State
}

func (sl *Slot) String() string {
	return fmt.Sprintf("slot%d", sl.index)
}

func (sl *Slot) setup(now time.Duration) {
	for _, out := range []machine.Pin{sl.battery, sl.bus} {
		out.Configure(machine.PinConfig{Mode: machine.PinOutput})
		out.Low()
	}
	for _, in := range []machine.Pin{sl.fault, sl.presence} {
		in.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}

	sl.state = sequencer.NewState(now)
}

func (sl *Slot) tick(now time.Duration) sequencer.Result {
	res := sl.state.Advance(now, !sl.presence.Get(), !sl.fault.Get())

	sl.battery.Set(res.Outputs.Battery)
	sl.bus.Set(res.Outputs.Bus)

	return res
}

func (sl *Slot) Phase() sequencer.Phase {
	return sl.state.Phase
}
