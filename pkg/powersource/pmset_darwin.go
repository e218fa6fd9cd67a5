//go:build darwin

package powersource

import (
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// pmsetService parses `pmset -g batt`. It is the fallback when ioreg output
// is unavailable; pmset only reports charge, charging state and the power
// source, so telemetry fields stay absent.
type pmsetService struct {
	mu        sync.Mutex
	open      bool
	snapshot  *pmsetReading
	fetchedAt time.Time
}

type pmsetReading struct {
	level   int
	status  string
	acPower bool
}

const pmsetSnapshotTTL = 500 * time.Millisecond

// NewPMSetService returns a Service backed by `pmset -g batt`.
func NewPMSetService() Service {
	return &pmsetService{}
}

func queryPMSet() (*pmsetReading, error) {
	out, err := exec.Command("pmset", "-g", "batt").Output()
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(out), "\n")
	if len(lines) < 2 {
		return nil, ErrServiceNotFound
	}

	// Second line looks like: " -InternalBattery-0 (id=...)	42%; discharging; 3:20 remaining ..."
	fields := strings.FieldsFunc(lines[1], func(r rune) bool {
		return r == ' ' || r == '\t' || r == ';' || r == '%'
	})
	if len(fields) < 4 {
		return nil, ErrServiceNotFound
	}

	level, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, ErrServiceNotFound
	}

	return &pmsetReading{
		level:   level,
		status:  fields[3],
		acPower: strings.Contains(lines[0], "AC Power"),
	}, nil
}

func (s *pmsetService) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return ErrConnectionAlreadyOpen
	}

	r, err := queryPMSet()
	if err != nil {
		return ErrServiceNotFound
	}

	s.snapshot = r
	s.fetchedAt = time.Now()
	s.open = true
	return nil
}

func (s *pmsetService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	s.snapshot = nil
	return nil
}

func (s *pmsetService) reading() *pmsetReading {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot != nil && time.Since(s.fetchedAt) < pmsetSnapshotTTL {
		return s.snapshot
	}

	r, err := queryPMSet()
	if err != nil {
		logrus.WithError(err).Debug("pmset query failed")
		return nil
	}

	s.snapshot = r
	s.fetchedAt = time.Now()
	return s.snapshot
}

func (s *pmsetService) ReadNumber(p Property) (float64, bool) {
	r := s.reading()
	if r == nil {
		return 0, false
	}

	switch p {
	case PropCurrentCharge:
		return float64(r.level), true
	case PropMaxCapacity:
		// pmset already reports a percentage.
		return 100, true
	default:
		return 0, false
	}
}

func (s *pmsetService) ReadBool(p Property) (bool, bool) {
	r := s.reading()
	if r == nil {
		return false, false
	}

	switch p {
	case PropIsCharging:
		return r.status == "charging", true
	case PropExternalConnected:
		return r.acPower, true
	case PropFullyCharged:
		return r.status == "charged", true
	default:
		return false, false
	}
}
