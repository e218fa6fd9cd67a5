//go:build darwin

package gui

import (
	"github.com/progrium/darwinkit/macos/appkit"
)

func showAlert(msg, body string) {
	alert := appkit.NewAlert()
	alert.SetIcon(appkit.Image_ImageWithSystemSymbolNameAccessibilityDescription("exclamationmark.triangle", "s"))
	alert.SetAlertStyle(appkit.AlertStyleWarning)
	alert.SetMessageText(msg)
	alert.SetInformativeText(body)
	alert.RunModal()
}
