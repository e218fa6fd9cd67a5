package main

import (
	"bytes"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"testing"
)

func TestDaemonSocketFlagReachesClient(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "battray.sock")
	ln, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatalf("failed to listen on %s: %v", sock, err)
	}

	requested := make(chan struct{}, 1)
	mux := http.NewServeMux()
	mux.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		select {
		case requested <- struct{}{}:
		default:
		}
		io.WriteString(w, `"0.0.0-test"`)
	})
	srv := &http.Server{Handler: mux}
	go srv.Serve(ln) //nolint:errcheck
	t.Cleanup(func() { srv.Close() })

	cmd := NewCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"version", "--daemon-socket", sock})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("command failed: %v", err)
	}

	select {
	case <-requested:
	default:
		t.Error("the client never dialed the socket passed via --daemon-socket")
	}
}
