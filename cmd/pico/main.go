//go:build tinygo

package main

import (
	"machine"
	"time"

	"github.com/hubertat/powerbay/pico"
)

func main() {
	board := pico.BoardType1()
	err := board.Setup()
	if err != nil {
		println("setup failed:", err.Error())
		panic(err)
	}

	println(board.Name(), "setup OK")

	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})

	var beat int
	for {
		results, err := board.Tick()
		if err != nil {
			println("tick:", err.Error())
		}

		for i, res := range results {
			if res.Entered {
				println(board.Slots()[i].String(), "->", res.Phase.String(), string(res.Cause), int64(board.Now()/time.Millisecond))
			}
		}

		// heartbeat, toggles twice a second
		beat++
		if beat%20 == 0 {
			led.Set(!led.Get())
		}

		time.Sleep(pico.TickInterval)
	}
}
