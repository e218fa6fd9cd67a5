package notify

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// OSAScriptPoster delivers notifications through the macOS Notification
// Center by shelling out to osascript. It needs no app bundle or
// entitlements, which keeps the daemon a plain binary.
type OSAScriptPoster struct{}

func (OSAScriptPoster) Post(title, body string) error {
	script := fmt.Sprintf("display notification \"%s\" with title \"%s\"",
		escapeAppleScript(body), escapeAppleScript(title))

	output := &bytes.Buffer{}
	cmd := exec.Command("/usr/bin/osascript", "-e", script)
	cmd.Stderr = output
	cmd.Stdout = output
	if err := cmd.Run(); err != nil {
		return pkgerrors.Wrapf(err, "failed to post notification: %s", output.String())
	}

	return nil
}

func escapeAppleScript(in string) string {
	out := strings.Builder{}
	for _, r := range in {
		switch r {
		case '"':
			out.WriteString(`\"`)
		case '\\':
			out.WriteString(`\\`)
		case '\n':
			out.WriteString(`\n`)
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}
