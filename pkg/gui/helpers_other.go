//go:build !darwin

package gui

import "github.com/sirupsen/logrus"

func showAlert(msg, body string) {
	logrus.WithField("detail", body).Warn(msg)
}
