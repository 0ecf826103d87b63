package sequencer

import "time"

// State is the persistent control state of one slot.
type State struct {
	Phase     Phase
	EnteredAt time.Duration
	Colors    [2]Color
}

func NewState(now time.Duration) *State {
	return &State{
		Phase:     IdlePhase,
		EnteredAt: now,
		Colors:    IdlePhase.Indicators(now),
	}
}

// Elapsed is the time spent in the current phase. A clock reading older
// than EnteredAt counts as zero.
func (s *State) Elapsed(now time.Duration) time.Duration {
	if now < s.EnteredAt {
		return 0
	}
	return now - s.EnteredAt
}

// Advance runs one tick against the state and stores the outcome.
func (s *State) Advance(now time.Duration, presenceAsserted, faulted bool) Result {
	return s.Apply(Input{
		Now:              now,
		PresenceAsserted: presenceAsserted,
		Faulted:          faulted,
	})
}

// Apply is Advance for a caller that builds the Input itself. Elapsed is
// always taken from the state.
func (s *State) Apply(in Input) Result {
	in.Elapsed = s.Elapsed(in.Now)
	res := Step(s.Phase, in)

	s.Colors = res.Outputs.Indicators
	if res.Entered {
		s.Phase = res.Phase
		s.EnteredAt = in.Now
	}

	return res
}

// Frame lays out the indicator colors of all states in slot order, two
// colors per slot.
func Frame(states ...*State) []Color {
	frame := make([]Color, 0, 2*len(states))
	for _, s := range states {
		frame = append(frame, s.Colors[0], s.Colors[1])
	}
	return frame
}

// Uniform returns a frame of n copies of c.
func Uniform(c Color, n int) []Color {
	frame := make([]Color, n)
	for i := range frame {
		frame[i] = c
	}
	return frame
}
