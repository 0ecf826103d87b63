package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/hubertat/servicemaker"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hubertat/powerbay"
)

var (
	Version string
	Build   string

	configPath string
	debug      bool

	pbService = servicemaker.ServiceMaker{
		User:               "powerbay",
		UserGroups:         []string{"gpio", "spi", "i2c"},
		ServicePath:        "/etc/systemd/system/powerbay.service",
		ServiceDescription: "PowerBay service: dual slot power sequencing controller. github.com/hubertat/powerbay",
		ExecDir:            "/srv/powerbay",
		ExecName:           "powerbay",
	}
)

var rootCmd = &cobra.Command{
	Use:   "powerbay",
	Short: "Dual slot power sequencing controller",
	Long: `powerbay drives the battery and bus rails of two slots through a ` +
		`presence handshake and a fixed power-up sequence, cutting both rails ` +
		`on overcurrent or a stalled handshake.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			log.SetLevel(log.DebugLevel)
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the sequencing loop until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		pb, err := setup(ctx)
		defer closeBay(pb)
		if err != nil {
			return err
		}

		pb.PrintIoStatus(os.Stdout)

		return pb.Run(ctx)
	},
}

var ioCmd = &cobra.Command{
	Use:   "io",
	Short: "Set up the drivers, print the pin map and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		pb, err := setup(cmd.Context())
		defer closeBay(pb)
		if err != nil {
			return err
		}

		pb.PrintIoStatus(cmd.OutOrStdout())
		return nil
	},
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install powerbay as a systemd service",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := pbService.InstallService()
		if err != nil {
			return errors.Wrap(err, "failed to install service")
		}
		log.Info("service installed!")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "powerbay.toml", "path of the configuration file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log every tick")

	rootCmd.AddCommand(runCmd, ioCmd, installCmd)
}

func setup(ctx context.Context) (*powerbay.PowerBay, error) {
	cfg, err := powerbay.LoadConfig(configPath)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn("config file not found, using defaults", "path", configPath)
	} else if err != nil {
		return nil, err
	}

	pb := powerbay.New(cfg)

	log.Info("will init drivers...", "driver", cfg.Driver, "lights", cfg.Lights)
	err = pb.InitDrivers(ctx)
	if err != nil {
		return pb, errors.Wrap(err, "drivers init failed")
	}

	err = pb.InitSlots()
	if err != nil {
		return pb, errors.Wrap(err, "slots init failed")
	}

	return pb, nil
}

func closeBay(pb *powerbay.PowerBay) {
	if pb == nil {
		return
	}
	if err := pb.Close(); err != nil {
		log.Error("close failed", "err", err)
	}
}

func main() {
	log.Info("powerbay started", "version", Version, "build", Build)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
