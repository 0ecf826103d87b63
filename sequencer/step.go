package sequencer

import "time"

// Input is everything Step needs to know about one tick.
type Input struct {
	// Now is the clock reading of the tick, used for flashing.
	Now time.Duration
	// Elapsed is the time spent in the current phase.
	Elapsed time.Duration
	// PresenceAsserted is true while the POST line reads low.
	PresenceAsserted bool
	// PresenceUnknown is set when the POST line could not be read. No
	// presence transition fires on such a tick; the other rules still do.
	PresenceUnknown bool
	// Faulted is true while the overcurrent line reads low.
	Faulted bool
}

type Outputs struct {
	Rails
	Indicators [2]Color
}

type Result struct {
	// Phase is the phase the slot is in after this tick.
	Phase Phase
	// Entered is set when Phase was entered (or re-entered) during this
	// tick; the caller must restamp its phase entry time.
	Entered bool
	// Outputs are the rails and colors to apply for this tick.
	Outputs Outputs
	// Cause names the rule that moved the slot, empty when it stayed put.
	Cause Cause
}

type Cause string

const (
	CauseNone     Cause = ""
	CauseFault    Cause = "fault"
	CauseTimeout  Cause = "timeout"
	CausePresence Cause = "presence"
	CauseDwell    Cause = "dwell"
)

// Step is the pure transition function of a slot.
//
// Fault preemption wins over everything, then the global timeout, then the
// phase's own exit condition. When an override fires the forced phase is
// evaluated with zero elapsed time, so its outputs apply in the same tick and
// none of its time-gated exits can fire. Outputs always belong to the phase
// evaluated by the phase logic; an exit it takes shows from the next tick on.
func Step(p Phase, in Input) Result {
	res := Result{Phase: p}
	elapsed := in.Elapsed

	switch {
	case in.Faulted:
		res.Phase, res.Entered, res.Cause = FaultIndicate, true, CauseFault
		elapsed = 0
	case p != IdlePhase && elapsed >= PhaseTimeout:
		res.Phase, res.Entered, res.Cause = TimeoutIndicate, true, CauseTimeout
		elapsed = 0
	}

	current := res.Phase
	res.Outputs = Outputs{
		Rails:      current.Rails(),
		Indicators: current.Indicators(in.Now),
	}

	if next, cause, ok := current.exit(elapsed, in); ok {
		res.Phase, res.Entered, res.Cause = next, true, cause
	}

	return res
}

func (p Phase) exit(elapsed time.Duration, in Input) (Phase, Cause, bool) {
	if p.waitsForPresence() && in.PresenceUnknown {
		return p, CauseNone, false
	}

	presenceAsserted := in.PresenceAsserted
	switch p {
	case WaitLow:
		if presenceAsserted {
			return WaitHigh, CausePresence, true
		}
	case WaitHigh:
		if !presenceAsserted {
			return WaitLowAgain, CausePresence, true
		}
	case WaitLowAgain:
		if presenceAsserted {
			return SeqBoth1, CausePresence, true
		}
	case WaitHighAgain:
		if !presenceAsserted {
			return WaitLow, CausePresence, true
		}
	case SeqBoth1:
		return afterDwell(p, elapsed, SeqBatteryOnly)
	case SeqBatteryOnly:
		return afterDwell(p, elapsed, SeqBoth2)
	case SeqBoth2:
		return afterDwell(p, elapsed, SeqBusOnly)
	case SeqBusOnly:
		return afterDwell(p, elapsed, WaitHighAgain)
	case FaultIndicate, TimeoutIndicate:
		return afterDwell(p, elapsed, IdlePhase)
	}
	return p, CauseNone, false
}

func (p Phase) waitsForPresence() bool {
	switch p {
	case WaitLow, WaitHigh, WaitLowAgain, WaitHighAgain:
		return true
	}
	return false
}

func afterDwell(p Phase, elapsed time.Duration, next Phase) (Phase, Cause, bool) {
	if elapsed >= p.Dwell() {
		return next, CauseDwell, true
	}
	return p, CauseNone, false
}
