package powerbay

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/hubertat/powerbay/drivers"
	"github.com/hubertat/powerbay/sequencer"
)

// TickInterval is the polling cadence of Run.
const TickInterval = 25 * time.Millisecond

// PowerBay ticks both slots and publishes their indicators, one frame per
// tick. All of its methods must be called from a single goroutine.
type PowerBay struct {
	Config Config

	// Clock, IoDriver and Lights default to the monotonic clock and the
	// drivers named in Config when left nil.
	Clock    Clock
	IoDriver drivers.IoDriver
	Lights   drivers.LightSink

	slots       []*Slot
	states      []*sequencer.State
	lightsReady bool
	logger      *log.Logger
	ticks       uint64
}

func New(cfg Config) *PowerBay {
	return &PowerBay{Config: cfg}
}

func (pb *PowerBay) setDefaults() {
	if pb.logger == nil {
		pb.logger = newLogger(pb.Config.Name)
	}
	if pb.Clock == nil {
		pb.Clock = NewMonotonicClock()
	}
}

func (pb *PowerBay) lightCount() int {
	return LightsPerSlot * len(pb.Config.Slots)
}

// InitDrivers validates the config, sets up the io driver (inputs pulled up,
// rail outputs low) and the light sink, and shows the standby frame.
func (pb *PowerBay) InitDrivers(ctx context.Context) (err error) {
	pb.setDefaults()

	if err = pb.Config.Validate(); err != nil {
		return
	}

	if pb.IoDriver == nil {
		pb.IoDriver, err = pb.Config.NewIoDriver()
		if err != nil {
			return
		}
	}
	if pb.Lights == nil {
		pb.Lights, err = pb.Config.NewLightSink()
		if err != nil {
			return
		}
	}

	err = pb.IoDriver.Setup(ctx, pb.Config.inputPins(), pb.Config.outputPins())
	if err != nil {
		return errors.Wrapf(err, "failed to setup %s driver", pb.IoDriver)
	}
	pb.logger.Debug("io driver ready", "driver", pb.IoDriver.String())

	err = pb.Lights.Setup(ctx, pb.lightCount())
	if err != nil {
		return errors.Wrapf(err, "failed to setup %s light sink", pb.Lights)
	}
	pb.lightsReady = true
	pb.logger.Debug("light sink ready", "sink", pb.Lights.String(), "count", pb.lightCount())

	err = pb.Lights.Display(sequencer.Uniform(sequencer.Standby, pb.lightCount()))
	if err != nil {
		return errors.Wrap(err, "failed to show standby frame")
	}

	return nil
}

// InitSlots binds every configured slot to the io driver. Each slot starts
// idle at the current clock reading.
func (pb *PowerBay) InitSlots() error {
	pb.setDefaults()

	if pb.IoDriver == nil || !pb.IoDriver.IsReady() {
		return errors.New("io driver not set up, call InitDrivers first")
	}

	now := pb.Clock.Now()
	pb.slots = make([]*Slot, 0, len(pb.Config.Slots))
	pb.states = make([]*sequencer.State, 0, len(pb.Config.Slots))
	for i, pins := range pb.Config.Slots {
		slot := NewSlot(i, pins)
		err := slot.Init(pb.IoDriver, now)
		if err != nil {
			return errors.Wrap(err, "failed to init slot")
		}
		pb.slots = append(pb.slots, slot)
		pb.states = append(pb.states, slot.sequencerState())
	}

	return nil
}

func (pb *PowerBay) Slots() []*Slot {
	return pb.slots
}

// Tick runs one loop iteration: every slot in order against a single clock
// reading, then one complete frame to the light sink. Slot errors do not
// stop the other slots or the frame.
func (pb *PowerBay) Tick() error {
	if len(pb.slots) == 0 {
		return errors.New("no slots, call InitSlots first")
	}

	now := pb.Clock.Now()
	pb.ticks++

	var errs []error
	for _, slot := range pb.slots {
		_, err := slot.Tick(now)
		if err != nil {
			errs = append(errs, err)
		}
	}

	frame := sequencer.Frame(pb.states...)

	if pb.logger.GetLevel() <= log.DebugLevel {
		pb.logger.Debug("tick", "n", pb.ticks, "now", now, "phases", pb.phaseSummary(), "frame", frame)
	}

	err := pb.Lights.Display(frame)
	if err != nil {
		errs = append(errs, errors.Wrap(err, "failed to display frame"))
	}

	return joinErrors(errs)
}

func (pb *PowerBay) phaseSummary() []string {
	phases := make([]string, len(pb.slots))
	for i, slot := range pb.slots {
		phases[i] = slot.Phase().String()
	}
	return phases
}

// Run ticks every TickInterval until ctx is done. A tick in progress always
// completes. Tick errors are logged and the loop carries on.
func (pb *PowerBay) Run(ctx context.Context) error {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	pb.logger.Info("sequencing started", "slots", len(pb.slots), "interval", TickInterval)

	for {
		select {
		case <-ctx.Done():
			pb.logger.Info("sequencing stopped")
			return nil
		case <-ticker.C:
			err := pb.Tick()
			if err != nil {
				pb.logger.Error("tick failed", "err", err)
			}
		}
	}
}

// Close turns every rail off, blanks the lights and releases the drivers.
func (pb *PowerBay) Close() error {
	var errs []error

	for _, slot := range pb.slots {
		if err := slot.Disable(); err != nil {
			errs = append(errs, err)
		}
	}

	if pb.Lights != nil {
		if pb.lightsReady {
			err := pb.Lights.Display(sequencer.Uniform(sequencer.Off, pb.lightCount()))
			if err != nil {
				errs = append(errs, errors.Wrap(err, "failed to blank lights"))
			}
			pb.lightsReady = false
		}
		if err := pb.Lights.Close(); err != nil {
			errs = append(errs, errors.Wrapf(err, "failed to close %s light sink", pb.Lights))
		}
	}

	if pb.IoDriver != nil {
		if err := pb.IoDriver.Close(); err != nil {
			errs = append(errs, errors.Wrapf(err, "failed to close %s driver", pb.IoDriver))
		}
	}

	return joinErrors(errs)
}

func (pb *PowerBay) PrintIoStatus(writer io.Writer) {
	fmt.Fprintln(writer)
	fmt.Fprintln(writer, "=== powerbay io ===")
	if pb.IoDriver != nil {
		inputs, outputs := pb.IoDriver.GetAllIo()
		fmt.Fprintf(writer, "| driver: %s (ready: %v)\n", pb.IoDriver, pb.IoDriver.IsReady())
		fmt.Fprintf(writer, "| in pins: %v\n", inputs)
		fmt.Fprintf(writer, "| out pins: %v\n", outputs)
	}
	if pb.Lights != nil {
		fmt.Fprintf(writer, "| lights: %s x%d\n", pb.Lights, pb.lightCount())
	}
	for _, slot := range pb.slots {
		state := slot.State()
		colors := slot.Colors()
		fmt.Fprintln(writer, "________")
		fmt.Fprintf(writer, "| %s: battery=%d bus=%d fault=%d presence=%d\n",
			slot, slot.Pins.BatteryEnable, slot.Pins.BusEnable, slot.Pins.FaultSense, slot.Pins.Presence)
		fmt.Fprintf(writer, "| phase: %s since %v, colors: %s %s\n",
			state.Phase, state.EnteredAt, colors[0], colors[1])
	}
	fmt.Fprintln(writer, "-----------------------------")
	fmt.Fprintln(writer)
}
