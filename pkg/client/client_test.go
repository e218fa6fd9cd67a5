package client

import (
	"bytes"
	"errors"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/battray/battray/pkg/powerinfo"
)

// startTestDaemon serves mux on a unix socket and returns a client for it.
func startTestDaemon(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()

	sock := filepath.Join(t.TempDir(), "battray.sock")
	ln, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatalf("failed to listen on %s: %v", sock, err)
	}

	srv := &http.Server{Handler: mux}
	go srv.Serve(ln) //nolint:errcheck
	t.Cleanup(func() { srv.Close() })

	return NewClient(sock)
}

func TestGetStateDecodesNullAsNil(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/state", func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "null")
	})
	c := startTestDaemon(t, mux)

	state, err := c.GetState()
	if err != nil {
		t.Fatalf("GetState returned error: %v", err)
	}
	if state != nil {
		t.Errorf("state = %+v, want nil for a JSON null", state)
	}
}

func TestGetStateDecodesBatteryState(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/state", func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"mode":"discharging","percentage":42}`)
	})
	c := startTestDaemon(t, mux)

	state, err := c.GetState()
	if err != nil {
		t.Fatalf("GetState returned error: %v", err)
	}
	if state == nil {
		t.Fatal("expected a state")
	}
	if state.Mode != powerinfo.Discharging || state.Percentage != 42 {
		t.Errorf("state = %+v, want discharging at 42", state)
	}
}

func TestGetIconNoContentMeansNil(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/icon", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	c := startTestDaemon(t, mux)

	b, err := c.GetIcon()
	if err != nil {
		t.Fatalf("GetIcon returned error: %v", err)
	}
	if b != nil {
		t.Errorf("icon = %d bytes, want nil for 204", len(b))
	}
}

func TestGetIconReturnsBytes(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	mux := http.NewServeMux()
	mux.HandleFunc("/icon", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(png) //nolint:errcheck
	})
	c := startTestDaemon(t, mux)

	b, err := c.GetIcon()
	if err != nil {
		t.Fatalf("GetIcon returned error: %v", err)
	}
	if !bytes.Equal(b, png) {
		t.Errorf("icon bytes = %v, want %v", b, png)
	}
}

func TestSetThresholdsSendsJSONAndEchoesResponse(t *testing.T) {
	var gotMethod, gotBody string
	mux := http.NewServeMux()
	mux.HandleFunc("/thresholds", func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotMethod = r.Method
		gotBody = string(b)
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, "ok")
	})
	c := startTestDaemon(t, mux)

	ret, err := c.SetThresholds([]int{5, 10})
	if err != nil {
		t.Fatalf("SetThresholds returned error: %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Errorf("method = %s, want PUT", gotMethod)
	}
	if gotBody != "[5,10]" {
		t.Errorf("body = %q, want [5,10]", gotBody)
	}
	if ret != "ok" {
		t.Errorf("response = %q, want ok", ret)
	}
}

func TestGetVersionDecodesJSONString(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `"1.2.3"`)
	})
	c := startTestDaemon(t, mux)

	v, err := c.GetVersion()
	if err != nil {
		t.Fatalf("GetVersion returned error: %v", err)
	}
	if v != "1.2.3" {
		t.Errorf("version = %q, want 1.2.3", v)
	}
}

func TestNon2xxCarriesDaemonBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/state", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "power service gone", http.StatusInternalServerError)
	})
	c := startTestDaemon(t, mux)

	_, err := c.GetState()
	if err == nil {
		t.Fatal("expected an error for a 500 response")
	}
	if !strings.Contains(err.Error(), "power service gone") {
		t.Errorf("error %q should carry the daemon's body", err)
	}
}

func TestMissingSocketIsDaemonNotRunning(t *testing.T) {
	c := NewClient(filepath.Join(t.TempDir(), "absent.sock"))

	_, err := c.GetVersion()
	if !errors.Is(err, ErrDaemonNotRunning) {
		t.Errorf("error = %v, want ErrDaemonNotRunning", err)
	}
}
