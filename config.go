package powerbay

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/hubertat/powerbay/drivers"
)

const SlotCount = 2
const LightsPerSlot = 2

// SlotPins maps one slot to io driver pins. Rail enables are active-high,
// fault and presence are active-low inputs.
type SlotPins struct {
	BatteryEnable uint16 `toml:"battery_enable"`
	BusEnable     uint16 `toml:"bus_enable"`
	FaultSense    uint16 `toml:"fault_sense"`
	Presence      uint16 `toml:"presence"`
}

func (sp SlotPins) inputs() []uint16 {
	return []uint16{sp.FaultSense, sp.Presence}
}

func (sp SlotPins) outputs() []uint16 {
	return []uint16{sp.BatteryEnable, sp.BusEnable}
}

type GpioConfig struct {
	InvertInputs  bool `toml:"invert_inputs"`
	InvertOutputs bool `toml:"invert_outputs"`
}

type McpConfig struct {
	BusNo         uint8 `toml:"bus"`
	DevNo         uint8 `toml:"dev"`
	InvertInputs  bool  `toml:"invert_inputs"`
	InvertOutputs bool  `toml:"invert_outputs"`
}

type PeriphConfig struct {
	PinPrefix string `toml:"pin_prefix"`
}

type SpiConfig struct {
	Port string `toml:"port"`
}

// Config is read once at startup and not changed afterwards. Timing
// constants live in package sequencer and are not configurable.
type Config struct {
	Name   string     `toml:"name"`
	Driver string     `toml:"driver"`
	Lights string     `toml:"lights"`
	Slots  []SlotPins `toml:"slots"`

	Gpio   GpioConfig   `toml:"gpio"`
	Mcp    McpConfig    `toml:"mcp23017"`
	Periph PeriphConfig `toml:"periph"`
	Spi    SpiConfig    `toml:"spi"`
}

// DefaultConfig matches the reference board wiring.
func DefaultConfig() Config {
	return Config{
		Name:   "powerbay",
		Driver: "gpio",
		Lights: "spi",
		Slots: []SlotPins{
			{BatteryEnable: 6, BusEnable: 0, FaultSense: 1, Presence: 4},
			{BatteryEnable: 7, BusEnable: 3, FaultSense: 2, Presence: 5},
		},
	}
}

// LoadConfig reads a TOML file over DefaultConfig. A missing file is
// reported with os.ErrNotExist in the chain and the defaults returned.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "failed reading config file %s", path)
	}

	cfg.Slots = nil
	err = toml.Unmarshal(data, &cfg)
	if err != nil {
		return DefaultConfig(), errors.Wrapf(err, "failed unmarshalling toml config %s", path)
	}
	if len(cfg.Slots) == 0 {
		cfg.Slots = DefaultConfig().Slots
	}

	return cfg, cfg.Validate()
}

func (cfg Config) Validate() error {
	if len(cfg.Slots) != SlotCount {
		return errors.Errorf("config needs exactly %d slots, got %d", SlotCount, len(cfg.Slots))
	}

	if _, err := drivers.IoDriverByName(cfg.Driver); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	if _, err := drivers.LightSinkByName(cfg.Lights); err != nil {
		return errors.Wrap(err, "invalid config")
	}

	used := make(map[uint16]string)
	claim := func(pin uint16, what string) error {
		if owner, taken := used[pin]; taken {
			return errors.Errorf("pin %d used as %s and %s", pin, owner, what)
		}
		used[pin] = what
		return nil
	}

	for i, slot := range cfg.Slots {
		for what, pin := range map[string]uint16{
			"battery_enable": slot.BatteryEnable,
			"bus_enable":     slot.BusEnable,
			"fault_sense":    slot.FaultSense,
			"presence":       slot.Presence,
		} {
			if err := claim(pin, slotPinName(i, what)); err != nil {
				return err
			}
		}
	}

	return nil
}

func slotPinName(slot int, what string) string {
	return fmt.Sprintf("slot%d.%s", slot, what)
}

func (cfg Config) inputPins() (pins []uint16) {
	for _, slot := range cfg.Slots {
		pins = append(pins, slot.inputs()...)
	}
	return
}

func (cfg Config) outputPins() (pins []uint16) {
	for _, slot := range cfg.Slots {
		pins = append(pins, slot.outputs()...)
	}
	return
}

// NewIoDriver builds the configured, not yet set up, io driver.
func (cfg Config) NewIoDriver() (drivers.IoDriver, error) {
	switch strings.ToLower(cfg.Driver) {
	case "gpio":
		return &drivers.GpIO{InvertInputs: cfg.Gpio.InvertInputs, InvertOutputs: cfg.Gpio.InvertOutputs}, nil
	case "mcpio":
		return &drivers.McpIO{
			BusNo:         cfg.Mcp.BusNo,
			DevNo:         cfg.Mcp.DevNo,
			InvertInputs:  cfg.Mcp.InvertInputs,
			InvertOutputs: cfg.Mcp.InvertOutputs,
		}, nil
	case "periph":
		return &drivers.PeriphIO{PinPrefix: cfg.Periph.PinPrefix}, nil
	}
	return drivers.IoDriverByName(cfg.Driver)
}

// NewLightSink builds the configured, not yet set up, light sink.
func (cfg Config) NewLightSink() (drivers.LightSink, error) {
	if strings.EqualFold(cfg.Lights, "spi") {
		return &drivers.SpiLights{Port: cfg.Spi.Port}, nil
	}
	return drivers.LightSinkByName(cfg.Lights)
}
