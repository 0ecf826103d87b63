package drivers

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hubertat/powerbay/sequencer"
)

const mockLightsDriverName = "mock_lights"

// MockLights keeps every frame it was given and, with Out set, prints the
// frames that differ from the previous one.
type MockLights struct {
	Out io.Writer
	// Keep bounds the number of stored frames, 0 keeps all of them.
	Keep int

	frames [][]sequencer.Color
	count  int
}

func (ml *MockLights) Setup(ctx context.Context, count int) error {
	ml.count = count
	return nil
}

func (ml *MockLights) Display(colors []sequencer.Color) error {
	if err := checkFrame(colors, ml.count, mockLightsDriverName); err != nil {
		return err
	}

	frame := make([]sequencer.Color, len(colors))
	copy(frame, colors)

	if ml.Out != nil && !sameFrame(frame, ml.Last()) {
		parts := make([]string, len(frame))
		for i, c := range frame {
			parts[i] = c.String()
		}
		fmt.Fprintf(ml.Out, "[lights] %s\n", strings.Join(parts, " "))
	}

	ml.frames = append(ml.frames, frame)
	if ml.Keep > 0 && len(ml.frames) > ml.Keep {
		ml.frames = ml.frames[len(ml.frames)-ml.Keep:]
	}
	return nil
}

func (ml *MockLights) Frames() [][]sequencer.Color {
	return ml.frames
}

// Last returns the most recent frame, nil before the first one.
func (ml *MockLights) Last() []sequencer.Color {
	if len(ml.frames) == 0 {
		return nil
	}
	return ml.frames[len(ml.frames)-1]
}

func (ml *MockLights) Close() error {
	ml.count = 0
	return nil
}

func (ml *MockLights) String() string {
	return mockLightsDriverName
}

func sameFrame(a, b []sequencer.Color) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
