package drivers

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/hubertat/powerbay/sequencer"
)

// LightSink shows a strip of RGB status indicators. Display takes a whole
// frame and applies it at once; the sink owns the wire color order.
type LightSink interface {
	Setup(ctx context.Context, count int) error
	Display(colors []sequencer.Color) error
	Close() error
	String() string
}

func MapAllLightSinks() map[string]LightSink {
	sinks := []LightSink{
		&SpiLights{},
		&MockLights{},
	}

	mapped := make(map[string]LightSink)
	for _, sink := range sinks {
		mapped[sink.String()] = sink
	}
	return mapped
}

func LightSinkByName(name string) (LightSink, error) {
	sink, found := MapAllLightSinks()[strings.ToLower(name)]
	if !found {
		return nil, errors.Errorf("unknown light sink: %s", name)
	}
	return sink, nil
}

func checkFrame(colors []sequencer.Color, count int, sinkName string) error {
	if count == 0 {
		return errors.Errorf("%s light sink not set up", sinkName)
	}
	if len(colors) != count {
		return errors.Errorf("%s light sink got %d colors, frame is %d", sinkName, len(colors), count)
	}
	return nil
}
