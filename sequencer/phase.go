// Package sequencer holds the per-slot power sequencing state machine.
//
// It has no hardware dependencies: callers feed it clock readings and
// already-decoded presence/fault levels and apply the returned rail and
// indicator outputs themselves.
package sequencer

import (
	"fmt"
	"time"
)

type Phase int

const (
	WaitLow Phase = iota
	WaitHigh
	WaitLowAgain
	SeqBoth1
	SeqBatteryOnly
	SeqBoth2
	SeqBusOnly
	WaitHighAgain
	FaultIndicate
	TimeoutIndicate
)

// IdlePhase is the safe phase a slot starts in and returns to after an
// indicate phase. It is the only phase exempt from PhaseTimeout.
const IdlePhase = WaitLow

const (
	SequenceDwell = 500 * time.Millisecond
	IndicateDwell = 2000 * time.Millisecond
	PhaseTimeout  = 5000 * time.Millisecond
)

var phaseNames = [...]string{
	WaitLow:         "WAIT_LOW",
	WaitHigh:        "WAIT_HIGH",
	WaitLowAgain:    "WAIT_LOW_AGAIN",
	SeqBoth1:        "SEQ_BOTH_1",
	SeqBatteryOnly:  "SEQ_BATTERY_ONLY",
	SeqBoth2:        "SEQ_BOTH_2",
	SeqBusOnly:      "SEQ_BUS_ONLY",
	WaitHighAgain:   "WAIT_HIGH_AGAIN",
	FaultIndicate:   "FAULT_INDICATE",
	TimeoutIndicate: "TIMEOUT_INDICATE",
}

// Phases lists every phase in declaration order.
func Phases() []Phase {
	phases := make([]Phase, 0, len(phaseNames))
	for p := range phaseNames {
		phases = append(phases, Phase(p))
	}
	return phases
}

func (p Phase) Valid() bool {
	return p >= WaitLow && p <= TimeoutIndicate
}

func (p Phase) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// IsIndicate reports whether p is one of the two error reporting phases.
func (p Phase) IsIndicate() bool {
	return p == FaultIndicate || p == TimeoutIndicate
}

// Rails is the enable state of a slot's two power sources.
type Rails struct {
	Battery bool
	Bus     bool
}

func (r Rails) String() string {
	return fmt.Sprintf("battery=%v bus=%v", r.Battery, r.Bus)
}

// Rails returns the rail outputs of phase p. Presence-wait phases keep the
// bus up and the battery down, which is also what every phase leading into
// them leaves behind.
func (p Phase) Rails() Rails {
	switch p {
	case SeqBoth1, SeqBoth2:
		return Rails{Battery: true, Bus: true}
	case SeqBatteryOnly:
		return Rails{Battery: true}
	case FaultIndicate, TimeoutIndicate:
		return Rails{}
	default:
		return Rails{Bus: true}
	}
}

// Dwell is the time a time-gated phase must be active before it may exit.
// Presence-gated phases return 0.
func (p Phase) Dwell() time.Duration {
	switch p {
	case SeqBoth1, SeqBatteryOnly, SeqBoth2, SeqBusOnly:
		return SequenceDwell
	case FaultIndicate, TimeoutIndicate:
		return IndicateDwell
	default:
		return 0
	}
}
