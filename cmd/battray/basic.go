package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/battray/battray/pkg/gui"
	"github.com/battray/battray/pkg/notify"
	"github.com/battray/battray/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)
		},
	}
}

func NewTrayCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "tray",
		Short:   "Run the menu bar tray",
		GroupID: gBasic,
		Long: `Run the menu bar tray.

The tray shows the composited battery icon and lets you toggle notification
thresholds. It needs a running daemon; start one with "battray daemon".`,
		Run: func(_ *cobra.Command, _ []string) {
			gui.Run(unixSocketPath)
		},
	}
}

func NewThresholdsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "thresholds [percentage...]",
		Short:   "Set notification thresholds",
		GroupID: gBasic,
		Long: fmt.Sprintf(`Set the battery percentages to notify at.

Valid thresholds are %v. Passing no arguments disables notifications.

For example, "battray thresholds 5 10 100" notifies at 5%%, 10%% and on a
full charge.`, notify.Keys),
		RunE: func(_ *cobra.Command, args []string) error {
			thresholds, err := parseIntArgs(args, "threshold")
			if err != nil {
				return err
			}

			ret, err := apiClient.SetThresholds(thresholds)
			if err != nil {
				return fmt.Errorf("failed to set thresholds: %v", err)
			}

			if ret != "" {
				logrus.Infof("daemon responded: %s", strings.TrimSpace(ret))
			}

			logrus.Infof("successfully set notification thresholds to %v", thresholds)

			return nil
		},
	}
}

func NewPollIntervalCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "poll-interval [seconds]",
		Aliases: []string{"interval"},
		Short:   "Set how often the daemon reads the battery",
		GroupID: gAdvanced,
		Long: `Set how often the daemon reads the battery, in seconds.

Shorter intervals make the icon and notifications more responsive at the
cost of more frequent reads. The default is 10 seconds.`,
		RunE: func(_ *cobra.Command, args []string) error {
			seconds, err := parseIntArg(args, "poll interval")
			if err != nil {
				return err
			}

			ret, err := apiClient.SetPollInterval(seconds)
			if err != nil {
				return fmt.Errorf("failed to set poll interval: %v", err)
			}

			if ret != "" {
				logrus.Infof("daemon responded: %s", strings.TrimSpace(ret))
			}

			logrus.Infof("successfully set poll interval to %ds", seconds)

			return nil
		},
	}
}

func NewResetNotificationsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "reset-notifications",
		Short:   "Forget the last notified threshold",
		GroupID: gAdvanced,
		Long: `Forget the last notified threshold.

The daemon notifies about each threshold at most once until a different
threshold fires. Resetting makes the current threshold eligible again.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if _, err := apiClient.SetLastNotified(0); err != nil {
				return fmt.Errorf("failed to reset notifications: %v", err)
			}

			logrus.Infof("successfully reset the last notified threshold")

			return nil
		},
	}
}
