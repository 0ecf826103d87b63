package drivers

import (
	"bytes"
	"context"
	"testing"

	"github.com/hubertat/powerbay/sequencer"
)

func TestMockLightsNeedSetup(t *testing.T) {
	ml := MockLights{}

	err := ml.Display(sequencer.Uniform(sequencer.Off, 4))
	if err == nil {
		t.Error("Display before Setup returned nil error")
	}
}

func TestMockLightsRejectPartialFrame(t *testing.T) {
	ml := MockLights{}
	ml.Setup(context.Background(), 4)

	err := ml.Display([]sequencer.Color{sequencer.Run1, sequencer.Run1})
	if err == nil {
		t.Error("Display accepted a 2 color frame")
	}
	if len(ml.Frames()) != 0 {
		t.Errorf("partial frame was stored")
	}
}

func TestMockLightsKeepFrames(t *testing.T) {
	ml := MockLights{Keep: 2}
	ml.Setup(context.Background(), 2)

	colors := []sequencer.Color{sequencer.Run1, sequencer.Run2}
	ml.Display(colors)
	colors[0] = sequencer.Fail
	ml.Display(colors)
	ml.Display([]sequencer.Color{sequencer.Off, sequencer.Off})

	if len(ml.Frames()) != 2 {
		t.Fatalf("got %d frames want 2", len(ml.Frames()))
	}
	if ml.Frames()[0][0] != sequencer.Fail {
		t.Errorf("got %s want %s", ml.Frames()[0][0], sequencer.Fail)
	}
	if ml.Last()[0] != sequencer.Off {
		t.Errorf("got %s want %s", ml.Last()[0], sequencer.Off)
	}
}

func TestMockLightsPrintChanges(t *testing.T) {
	buf := &bytes.Buffer{}
	ml := MockLights{Out: buf}
	ml.Setup(context.Background(), 2)

	ml.Display([]sequencer.Color{sequencer.Run1, sequencer.Off})
	ml.Display([]sequencer.Color{sequencer.Run1, sequencer.Off})
	ml.Display([]sequencer.Color{sequencer.Fail, sequencer.Fail})

	want := "[lights] #00aa22 #000000\n[lights] #ff0000 #ff0000\n"
	if buf.String() != want {
		t.Errorf("got %q want %q", buf.String(), want)
	}
}

func TestLightSinkByName(t *testing.T) {
	for _, name := range []string{"spi", "mock_lights"} {
		sink, err := LightSinkByName(name)
		if err != nil {
			t.Errorf("LightSinkByName(%s) returned err: %v", name, err)
			continue
		}
		if sink.String() != name {
			t.Errorf("got %s want %s", sink.String(), name)
		}
	}

	if _, err := LightSinkByName("hue"); err == nil {
		t.Error("got nil error for unknown sink")
	}
}
