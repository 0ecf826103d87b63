package sequencer

import (
	"fmt"
	"image/color"
	"time"
)

// Color is a 24-bit 0xRRGGBB value. Wire order is up to the light sink.
type Color uint32

const (
	Off     Color = 0x000000
	Run1    Color = 0x00aa22
	Run2    Color = 0x00ff55
	Fail    Color = 0xff0000
	Standby Color = 0x555555
)

const (
	FlashPeriod = 200 * time.Millisecond
	flashOnFrom = 100 * time.Millisecond
)

func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R(), G: c.G(), B: c.B(), A: 0xff}
}

func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// Flash returns c during the second half of every FlashPeriod and Off
// otherwise. The period is counted from process start, not from phase entry.
func Flash(c Color, now time.Duration) Color {
	if now%FlashPeriod > flashOnFrom {
		return c
	}
	return Off
}

// Indicators returns the two indicator colors phase p shows at time now.
func (p Phase) Indicators(now time.Duration) [2]Color {
	switch p {
	case WaitLow:
		return [2]Color{Run1, Run1}
	case WaitHigh, SeqBoth1, SeqBoth2, WaitHighAgain:
		return [2]Color{Run2, Off}
	case WaitLowAgain, SeqBatteryOnly, SeqBusOnly:
		return [2]Color{Run1, Off}
	case FaultIndicate:
		flash := Flash(Fail, now)
		return [2]Color{flash, flash}
	case TimeoutIndicate:
		return [2]Color{Flash(Fail, now), Off}
	default:
		return [2]Color{Off, Off}
	}
}
