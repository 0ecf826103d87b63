package powerbay

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/hubertat/powerbay/drivers"
	"github.com/hubertat/powerbay/sequencer"
)

// Slot applies the sequencer to one bay: it decodes the fault and presence
// lines, advances the slot state and drives the two rail enables.
type Slot struct {
	Index int
	Pins  SlotPins

	state *sequencer.State

	batteryOut  drivers.DigitalOutput
	busOut      drivers.DigitalOutput
	faultIn     drivers.DigitalInput
	presenceIn  drivers.DigitalInput
	logger      *log.Logger
	initialized bool
}

func NewSlot(index int, pins SlotPins) *Slot {
	return &Slot{
		Index:  index,
		Pins:   pins,
		logger: newLogger(fmt.Sprintf("slot%d", index)),
	}
}

func (sl *Slot) String() string {
	return fmt.Sprintf("slot%d", sl.Index)
}

// Init binds the slot to its pins and starts it in the idle phase at now.
func (sl *Slot) Init(driver drivers.IoDriver, now time.Duration) (err error) {
	if !driver.IsReady() {
		return errors.Errorf("%s init failed, driver %s not ready", sl, driver)
	}

	sl.batteryOut, err = driver.GetOutput(sl.Pins.BatteryEnable)
	if err != nil {
		return errors.Wrapf(err, "%s init failed on battery enable pin", sl)
	}
	sl.busOut, err = driver.GetOutput(sl.Pins.BusEnable)
	if err != nil {
		return errors.Wrapf(err, "%s init failed on bus enable pin", sl)
	}
	sl.faultIn, err = driver.GetInput(sl.Pins.FaultSense)
	if err != nil {
		return errors.Wrapf(err, "%s init failed on fault sense pin", sl)
	}
	sl.presenceIn, err = driver.GetInput(sl.Pins.Presence)
	if err != nil {
		return errors.Wrapf(err, "%s init failed on presence pin", sl)
	}

	sl.state = sequencer.NewState(now)
	sl.initialized = true
	return nil
}

// faulted reads the overcurrent line, low meaning faulted. An unreadable
// line counts as faulted.
func (sl *Slot) faulted() (bool, error) {
	level, err := sl.faultIn.GetState()
	if err != nil {
		return true, errors.Wrapf(err, "%s failed to read fault sense", sl)
	}
	return !level, nil
}

// presenceAsserted reads the POST line, low meaning asserted. On a read
// error the level is unknown and the slot must not act on it.
func (sl *Slot) presenceAsserted() (bool, error) {
	level, err := sl.presenceIn.GetState()
	if err != nil {
		return false, errors.Wrapf(err, "%s failed to read presence", sl)
	}
	return !level, nil
}

// Tick runs one polling cycle at clock reading now. Read and write errors
// are returned after the tick has been fully applied.
func (sl *Slot) Tick(now time.Duration) (sequencer.Result, error) {
	if !sl.initialized {
		return sequencer.Result{}, errors.Errorf("%s not initialized", sl)
	}

	var errs []error

	faulted, err := sl.faulted()
	if err != nil {
		errs = append(errs, err)
	}
	presence, presenceErr := sl.presenceAsserted()
	if presenceErr != nil {
		errs = append(errs, presenceErr)
	}

	from := sl.state.Phase
	elapsed := sl.state.Elapsed(now)
	res := sl.state.Apply(sequencer.Input{
		Now:              now,
		PresenceAsserted: presence,
		PresenceUnknown:  presenceErr != nil,
		Faulted:          faulted,
	})

	if err := sl.applyRails(res.Outputs.Rails); err != nil {
		errs = append(errs, err)
	}

	sl.logTransition(from, elapsed, res)

	return res, joinErrors(errs)
}

func (sl *Slot) applyRails(rails sequencer.Rails) error {
	err := sl.batteryOut.Set(rails.Battery)
	if err != nil {
		return errors.Wrapf(err, "%s failed to set battery rail", sl)
	}
	err = sl.busOut.Set(rails.Bus)
	if err != nil {
		return errors.Wrapf(err, "%s failed to set bus rail", sl)
	}
	return nil
}

func (sl *Slot) logTransition(from sequencer.Phase, elapsed time.Duration, res sequencer.Result) {
	if !res.Entered {
		return
	}

	if res.Phase == from {
		sl.logger.Debug("phase re-entered", "phase", res.Phase, "cause", res.Cause)
		return
	}

	if res.Phase.IsIndicate() {
		sl.logger.Warn("rails off", "phase", res.Phase, "cause", res.Cause, "from", from, "elapsed", elapsed)
		return
	}
	sl.logger.Info("phase changed", "from", from, "to", res.Phase, "cause", res.Cause, "elapsed", elapsed)
}

// Disable drives both rails low, used on shutdown.
func (sl *Slot) Disable() error {
	if !sl.initialized {
		return nil
	}
	return sl.applyRails(sequencer.Rails{})
}

func (sl *Slot) Phase() sequencer.Phase {
	if sl.state == nil {
		return sequencer.IdlePhase
	}
	return sl.state.Phase
}

// State returns a copy of the slot state.
func (sl *Slot) State() sequencer.State {
	if sl.state == nil {
		return sequencer.State{}
	}
	return *sl.state
}

// sequencerState is the live state, nil before Init.
func (sl *Slot) sequencerState() *sequencer.State {
	return sl.state
}

func (sl *Slot) Colors() [2]sequencer.Color {
	if sl.state == nil {
		return [2]sequencer.Color{sequencer.Standby, sequencer.Standby}
	}
	return sl.state.Colors
}
