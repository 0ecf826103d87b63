package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hubertat/powerbay"
	"github.com/hubertat/powerbay/drivers"
)

var (
	Version string
	Build   string

	flagDebug = flag.Bool("debug", false, "log every tick")
	flagFault = flag.Duration("fault-at", 0, "pull slot1 fault line low at this time (0 disables)")
)

// presencePulse scripts the POST handshake on slot0: asserted, released,
// asserted again, then released once the sequence is over.
var presencePulse = []struct {
	at       time.Duration
	asserted bool
}{
	{500 * time.Millisecond, true},
	{800 * time.Millisecond, false},
	{1100 * time.Millisecond, true},
	{3500 * time.Millisecond, false},
}

func main() {
	flag.Parse()
	if *flagDebug {
		log.SetLevel(log.DebugLevel)
	}

	log.Info("powerbay mock started", "version", Version)
	log.Info("mock instance for testing purposes, should work on MacOs")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := powerbay.DefaultConfig()
	cfg.Name = "mock"
	cfg.Driver = "mock_driver"
	cfg.Lights = "mock_lights"

	io := &drivers.MockIoDriver{}
	pb := powerbay.New(cfg)
	pb.IoDriver = io
	pb.Lights = &drivers.MockLights{Out: os.Stdout, Keep: 16}

	log.Info("will init drivers...")
	err := pb.InitDrivers(ctx)
	defer pb.Close()
	if err != nil {
		log.Fatal("drivers init failed", "err", err)
	}
	err = pb.InitSlots()
	if err != nil {
		log.Fatal("slots init failed", "err", err)
	}

	io.MonitorStateChanges(os.Stdout)
	pb.PrintIoStatus(os.Stdout)

	presencePin := cfg.Slots[0].Presence
	faultPin := cfg.Slots[1].FaultSense
	start := time.Now()
	next := 0

	ticker := time.NewTicker(powerbay.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("mock stopped")
			return
		case <-ticker.C:
		}

		since := time.Since(start)
		for next < len(presencePulse) && since >= presencePulse[next].at {
			io.SetInput(presencePin, !presencePulse[next].asserted)
			log.Info("presence", "slot", 0, "asserted", presencePulse[next].asserted)
			next++
		}
		if *flagFault > 0 && since >= *flagFault {
			io.SetInput(faultPin, false)
		}

		err = pb.Tick()
		if err != nil {
			log.Error("tick failed", "err", err)
		}
	}
}
