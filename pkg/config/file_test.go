package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestFileDefaults(t *testing.T) {
	f := NewFileFromConfig(&RawFileConfig{}, "")

	if got, want := f.Thresholds(), []int{5, 10, 100}; !reflect.DeepEqual(got, want) {
		t.Errorf("Thresholds() = %v, want %v", got, want)
	}
	if got := f.LastNotified(); got != 0 {
		t.Errorf("LastNotified() = %d, want 0", got)
	}
	if got := f.PollInterval(); got != 10*time.Second {
		t.Errorf("PollInterval() = %v, want 10s", got)
	}
	if f.AllowNonRootAccess() {
		t.Error("AllowNonRootAccess() should default to false")
	}
	if !f.ShowPercentageInTray() {
		t.Error("ShowPercentageInTray() should default to true")
	}
}

func TestFileLoadMissingFileYieldsDefaults(t *testing.T) {
	f, err := NewFile(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err != nil {
		t.Fatalf("NewFile returned error: %v", err)
	}
	if got, want := f.Thresholds(), []int{5, 10, 100}; !reflect.DeepEqual(got, want) {
		t.Errorf("Thresholds() = %v, want %v", got, want)
	}
}

func TestFileSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battray.json")

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile returned error: %v", err)
	}

	f.SetThresholds([]int{10, 20})
	f.SetLastNotified(10)
	f.SetPollIntervalSeconds(30)
	f.SetAllowNonRootAccess(true)
	f.SetShowPercentageInTray(false)

	if err := f.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	g, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile after save returned error: %v", err)
	}

	if got, want := g.Thresholds(), []int{10, 20}; !reflect.DeepEqual(got, want) {
		t.Errorf("Thresholds() = %v, want %v", got, want)
	}
	if got := g.LastNotified(); got != 10 {
		t.Errorf("LastNotified() = %d, want 10", got)
	}
	if got := g.PollInterval(); got != 30*time.Second {
		t.Errorf("PollInterval() = %v, want 30s", got)
	}
	if !g.AllowNonRootAccess() {
		t.Error("AllowNonRootAccess() should have been saved as true")
	}
	if g.ShowPercentageInTray() {
		t.Error("ShowPercentageInTray() should have been saved as false")
	}
}

func TestFileLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile returned error: %v", err)
	}
	if got, want := f.Thresholds(), []int{5, 10, 100}; !reflect.DeepEqual(got, want) {
		t.Errorf("Thresholds() = %v, want %v", got, want)
	}
}

func TestFileLoadGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.json")
	if err := os.WriteFile(path, []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFile(path); err == nil {
		t.Error("NewFile should fail on malformed JSON")
	}
}

func TestFileThresholdsCopy(t *testing.T) {
	f := NewFileFromConfig(&RawFileConfig{}, "")
	th := f.Thresholds()
	th[0] = 99
	if got := f.Thresholds()[0]; got == 99 {
		t.Error("Thresholds() must return a copy")
	}
}
