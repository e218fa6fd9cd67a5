package powersource

import (
	"math"
	"sync"
	"time"

	"github.com/distatus/battery"
	"github.com/sirupsen/logrus"
)

// distatusService is the portable live backend, built on distatus/battery.
// The library has no notion of an open handle, so the service keeps a short
// lived snapshot to avoid re-querying the OS for every property read within
// one poll cycle.
type distatusService struct {
	mu        sync.Mutex
	open      bool
	snapshot  *battery.Battery
	fetchedAt time.Time
}

const distatusSnapshotTTL = 500 * time.Millisecond

// NewDistatusService returns a Service backed by distatus/battery readings
// of the first battery on the machine.
func NewDistatusService() Service {
	return &distatusService{}
}

func (s *distatusService) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return ErrConnectionAlreadyOpen
	}

	bats, err := battery.GetAll()
	if err != nil || len(bats) == 0 {
		return ErrServiceNotFound
	}

	s.open = true
	return nil
}

func (s *distatusService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	s.snapshot = nil
	return nil
}

func (s *distatusService) bat() *battery.Battery {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot != nil && time.Since(s.fetchedAt) < distatusSnapshotTTL {
		return s.snapshot
	}

	bats, err := battery.GetAll()
	if err != nil || len(bats) == 0 {
		logrus.WithError(err).Debug("distatus battery query failed")
		return nil
	}

	s.snapshot = bats[0]
	s.fetchedAt = time.Now()
	return s.snapshot
}

func (s *distatusService) ReadNumber(p Property) (float64, bool) {
	b := s.bat()
	if b == nil {
		return 0, false
	}

	switch p {
	case PropCurrentCharge:
		return b.Current, true
	case PropMaxCapacity:
		return b.Full, true
	case PropVoltage:
		// Reader expects millivolts.
		return b.Voltage * 1000, true
	case PropAmperage:
		// ChargeRate is an unsigned magnitude in mW; recover the sign from
		// the state and convert to mA.
		if b.Voltage <= 0 {
			return 0, false
		}
		ma := b.ChargeRate / b.Voltage
		if b.State == battery.Discharging {
			ma = -ma
		}
		return ma, true
	case PropTimeToEmpty:
		if b.State != battery.Discharging || b.ChargeRate <= 0 {
			return 0, false
		}
		return math.Round(b.Current / b.ChargeRate * 60), true
	case PropTimeToFull:
		if b.State != battery.Charging || b.ChargeRate <= 0 {
			return 0, false
		}
		return math.Round((b.Full - b.Current) / b.ChargeRate * 60), true
	default:
		// Cycle count and temperature are not exposed by distatus.
		return 0, false
	}
}

func (s *distatusService) ReadBool(p Property) (bool, bool) {
	b := s.bat()
	if b == nil {
		return false, false
	}

	switch p {
	case PropIsCharging:
		return b.State == battery.Charging, true
	case PropFullyCharged:
		return b.State == battery.Full, true
	case PropExternalConnected:
		// distatus has no plugged flag; a battery that is charging or held
		// full is on external power.
		return b.State == battery.Charging || b.State == battery.Full, true
	default:
		return false, false
	}
}
