package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/battray/battray/pkg/daemon"
	"github.com/battray/battray/pkg/powersource"
	"github.com/battray/battray/pkg/version"
)

var (
	// alwaysAllowNonRootAccess indicates whether to always allow non-root users to access the battray daemon.
	alwaysAllowNonRootAccess = false
	powerSource              = "auto"
	simulate                 = false
)

// NewDaemonCommand .
func NewDaemonCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "daemon",
		Short:   "Run battray daemon in the foreground",
		GroupID: gAdvanced,
		RunE: func(_ *cobra.Command, _ []string) error {
			logrus.WithFields(logrus.Fields{
				"version": version.Version,
				"commit":  version.GitCommit,
			}).Info("battray daemon starting")

			svc, err := newService()
			if err != nil {
				return err
			}

			return daemon.Run(configPath, unixSocketPath, alwaysAllowNonRootAccess, svc)
		},
	}

	f := cmd.Flags()

	f.BoolVar(&alwaysAllowNonRootAccess, "always-allow-non-root-access", false,
		"Always allow non-root users to access the daemon.")
	f.StringVar(&powerSource, "power-source", "auto",
		"Battery backend to read from (auto, ioreg, smc, pmset, distatus).")
	f.BoolVar(&simulate, "simulate", false,
		"Serve a simulated battery instead of reading hardware. For development.")

	return cmd
}

func newService() (powersource.Service, error) {
	if simulate {
		return powersource.NewMock(
			map[powersource.Property]float64{
				powersource.PropCurrentCharge: 42,
				powersource.PropMaxCapacity:   100,
				powersource.PropVoltage:       11400,
				powersource.PropAmperage:      -950,
				powersource.PropCycleCount:    123,
				powersource.PropTemperature:   3050,
			},
			map[powersource.Property]bool{
				powersource.PropIsCharging:        false,
				powersource.PropExternalConnected: false,
				powersource.PropFullyCharged:      false,
			},
		), nil
	}

	return powersource.NewServiceByName(powerSource)
}
