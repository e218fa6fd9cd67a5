package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/battray/battray/pkg/utils/ptr"
)

var (
	defaultFileConfig = &RawFileConfig{
		Thresholds:           &[]int{5, 10, 100},
		LastNotified:         ptr.To(0),
		PollIntervalSeconds:  ptr.To(10),
		AllowNonRootAccess:   ptr.To(false),
		ShowPercentageInTray: ptr.To(true),
	}
)

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = defaultFileConfig
	}

	f := &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}

	return f
}

func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	thresholds := c.Thresholds()

	rawConfig := &RawFileConfig{
		Thresholds:           &thresholds,
		LastNotified:         ptr.To(c.LastNotified()),
		PollIntervalSeconds:  ptr.To(int(c.PollInterval() / time.Second)),
		AllowNonRootAccess:   ptr.To(c.AllowNonRootAccess()),
		ShowPercentageInTray: ptr.To(c.ShowPercentageInTray()),
	}

	return rawConfig, nil
}

type RawFileConfig struct {
	Thresholds           *[]int `json:"thresholds,omitempty"`
	LastNotified         *int   `json:"lastNotified,omitempty"`
	PollIntervalSeconds  *int   `json:"pollIntervalSeconds,omitempty"`
	AllowNonRootAccess   *bool  `json:"allowNonRootAccess,omitempty"`
	ShowPercentageInTray *bool  `json:"showPercentageInTray,omitempty"`
}

func (f *File) Thresholds() []int {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	var thresholds []int

	if f.c.Thresholds != nil {
		thresholds = *f.c.Thresholds
	} else {
		thresholds = *defaultFileConfig.Thresholds
	}

	// Callers iterate and mutate freely; hand out a copy.
	out := make([]int, len(thresholds))
	copy(out, thresholds)
	return out
}

func (f *File) SetThresholds(t []int) {
	if f.c == nil {
		panic("config is nil")
	}

	cp := make([]int, len(t))
	copy(cp, t)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.Thresholds = &cp
}

func (f *File) LastNotified() int {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	var last int

	if f.c.LastNotified != nil {
		last = *f.c.LastNotified
	} else {
		last = *defaultFileConfig.LastNotified
	}

	return last
}

func (f *File) SetLastNotified(i int) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.LastNotified = &i
}

func (f *File) PollInterval() time.Duration {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	var seconds int

	if f.c.PollIntervalSeconds != nil {
		seconds = *f.c.PollIntervalSeconds
	} else {
		seconds = *defaultFileConfig.PollIntervalSeconds
	}

	if seconds < 1 {
		seconds = *defaultFileConfig.PollIntervalSeconds
	}

	return time.Duration(seconds) * time.Second
}

func (f *File) SetPollIntervalSeconds(i int) {
	if f.c == nil {
		panic("config is nil")
	}

	if i < 1 {
		panic("poll interval must be at least 1 second")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.PollIntervalSeconds = &i
}

func (f *File) AllowNonRootAccess() bool {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	var allowNonRootAccess bool

	if f.c.AllowNonRootAccess != nil {
		allowNonRootAccess = *f.c.AllowNonRootAccess
	} else {
		allowNonRootAccess = *defaultFileConfig.AllowNonRootAccess
	}

	return allowNonRootAccess
}

func (f *File) SetAllowNonRootAccess(b bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.AllowNonRootAccess = &b
}

func (f *File) ShowPercentageInTray() bool {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	var show bool

	if f.c.ShowPercentageInTray != nil {
		show = *f.c.ShowPercentageInTray
	} else {
		show = *defaultFileConfig.ShowPercentageInTray
	}

	return show
}

func (f *File) SetShowPercentageInTray(b bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.ShowPercentageInTray = &b
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	// Since we want to tell if the file is empty, using json.Decoder will
	// not work.
	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}
	configString := string(b)

	if strings.TrimSpace(configString) == "" {
		// If the file is empty, return the empty config.
		// Do not make f.c a nil.
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	err = json.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	err = enc.Encode(f.c)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	return logrus.Fields{
		"thresholds":           f.Thresholds(),
		"lastNotified":         f.LastNotified(),
		"pollInterval":         f.PollInterval().String(),
		"allowNonRootAccess":   f.AllowNonRootAccess(),
		"showPercentageInTray": f.ShowPercentageInTray(),
	}
}
