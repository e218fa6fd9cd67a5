//go:build darwin

package powersource

import (
	"os/exec"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ioregService reads the AppleSmartBattery registry entry by shelling out
// to ioreg. It needs no special privileges, unlike raw SMC access.
type ioregService struct {
	mu        sync.Mutex
	open      bool
	output    string
	fetchedAt time.Time
}

const ioregSnapshotTTL = 500 * time.Millisecond

// NewIORegService returns a Service backed by `ioreg -r -n AppleSmartBattery`.
func NewIORegService() Service {
	return &ioregService{}
}

func (s *ioregService) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return ErrConnectionAlreadyOpen
	}

	out, err := exec.Command("ioreg", "-r", "-n", "AppleSmartBattery").Output()
	if err != nil || len(out) == 0 {
		return ErrServiceNotFound
	}

	s.output = string(out)
	s.fetchedAt = time.Now()
	s.open = true
	return nil
}

func (s *ioregService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	s.output = ""
	return nil
}

func (s *ioregService) registry() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.output != "" && time.Since(s.fetchedAt) < ioregSnapshotTTL {
		return s.output
	}

	out, err := exec.Command("ioreg", "-r", "-n", "AppleSmartBattery").Output()
	if err != nil {
		logrus.WithError(err).Debug("ioreg query failed")
		return ""
	}

	s.output = string(out)
	s.fetchedAt = time.Now()
	return s.output
}

func (s *ioregService) ReadNumber(p Property) (float64, bool) {
	out := s.registry()
	if out == "" {
		return 0, false
	}
	// Registry lines look like: "CycleCount" = 397
	re := regexp.MustCompile(`"` + regexp.QuoteMeta(string(p)) + `"\s*=\s*(-?\d+)`)
	m := re.FindStringSubmatch(out)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (s *ioregService) ReadBool(p Property) (bool, bool) {
	out := s.registry()
	if out == "" {
		return false, false
	}
	// Registry lines look like: "IsCharging" = Yes
	re := regexp.MustCompile(`"` + regexp.QuoteMeta(string(p)) + `"\s*=\s*(Yes|No)`)
	m := re.FindStringSubmatch(out)
	if m == nil {
		return false, false
	}
	return m[1] == "Yes", true
}
