package sequencer

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlashTiming(t *testing.T) {
	cases := map[int]Color{
		0:    Off,
		50:   Off,
		100:  Off,
		101:  Fail,
		199:  Fail,
		200:  Off,
		301:  Fail,
		4150: Fail,
	}

	for at, want := range cases {
		assert.Equal(t, want, Flash(Fail, ms(at)), "at %dms", at)
	}
}

func TestIndicatorsPerPhase(t *testing.T) {
	lit := ms(150)
	dark := ms(50)

	assert.Equal(t, [2]Color{Run1, Run1}, WaitLow.Indicators(lit))
	assert.Equal(t, [2]Color{Run2, Off}, WaitHigh.Indicators(lit))
	assert.Equal(t, [2]Color{Run1, Off}, WaitLowAgain.Indicators(lit))
	assert.Equal(t, [2]Color{Run2, Off}, SeqBoth1.Indicators(lit))
	assert.Equal(t, [2]Color{Run1, Off}, SeqBatteryOnly.Indicators(lit))
	assert.Equal(t, [2]Color{Run2, Off}, SeqBoth2.Indicators(lit))
	assert.Equal(t, [2]Color{Run1, Off}, SeqBusOnly.Indicators(lit))
	assert.Equal(t, [2]Color{Run2, Off}, WaitHighAgain.Indicators(lit))

	assert.Equal(t, [2]Color{Fail, Fail}, FaultIndicate.Indicators(lit))
	assert.Equal(t, [2]Color{Off, Off}, FaultIndicate.Indicators(dark))
	assert.Equal(t, [2]Color{Fail, Off}, TimeoutIndicate.Indicators(lit))
	assert.Equal(t, [2]Color{Off, Off}, TimeoutIndicate.Indicators(dark))
}

func TestColorChannels(t *testing.T) {
	c := Color(0x123456)

	assert.Equal(t, uint8(0x12), c.R())
	assert.Equal(t, uint8(0x34), c.G())
	assert.Equal(t, uint8(0x56), c.B())
	assert.Equal(t, color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff}, c.RGBA())
	assert.Equal(t, "#123456", c.String())
}

func TestStatusColorChannels(t *testing.T) {
	assert.Equal(t, [3]uint8{0xff, 0x00, 0x00}, [3]uint8{Fail.R(), Fail.G(), Fail.B()})
	assert.Equal(t, [3]uint8{0x00, 0xaa, 0x22}, [3]uint8{Run1.R(), Run1.G(), Run1.B()})
	assert.Equal(t, [3]uint8{0x00, 0xff, 0x55}, [3]uint8{Run2.R(), Run2.G(), Run2.B()})
	assert.Equal(t, [3]uint8{0x55, 0x55, 0x55}, [3]uint8{Standby.R(), Standby.G(), Standby.B()})
}

func TestFrameOrder(t *testing.T) {
	a := &State{Colors: [2]Color{Run1, Off}}
	b := &State{Colors: [2]Color{Fail, Run2}}

	assert.Equal(t, []Color{Run1, Off, Fail, Run2}, Frame(a, b))
	assert.Equal(t, []Color{Standby, Standby, Standby, Standby}, Uniform(Standby, 4))
}
