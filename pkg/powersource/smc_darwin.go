//go:build darwin

package powersource

import (
	"github.com/charlie0129/gosmc"
	"github.com/sirupsen/logrus"
)

// SMC keys verified on Apple Silicon.
const (
	smcBatteryChargeKey = "BUIC" // battery charge, percent, 1 byte
	smcACPowerKey       = "AC-W" // AC attach state, 1 byte
)

// smcService reads the few battery properties the SMC exposes directly.
// It covers charge and plugged state only; the daemon layers it under the
// ioreg service as a low-level fallback. Requires root on most machines.
type smcService struct {
	conn gosmc.Connection
	open bool
}

// NewSMCService returns a Service backed by the Apple SMC.
func NewSMCService() Service {
	return &smcService{conn: gosmc.New()}
}

func (s *smcService) Open() error {
	if s.open {
		return ErrConnectionAlreadyOpen
	}
	if err := s.conn.Open(); err != nil {
		logrus.WithError(err).Debug("SMC open failed")
		return ErrServiceNotFound
	}
	s.open = true
	return nil
}

func (s *smcService) Close() error {
	if !s.open {
		return nil
	}
	s.open = false
	return s.conn.Close()
}

func (s *smcService) readByte(key string) (byte, bool) {
	v, err := s.conn.Read(key)
	if err != nil || len(v.Bytes) != 1 {
		return 0, false
	}
	return v.Bytes[0], true
}

func (s *smcService) ReadNumber(p Property) (float64, bool) {
	switch p {
	case PropCurrentCharge:
		b, ok := s.readByte(smcBatteryChargeKey)
		if !ok {
			return 0, false
		}
		return float64(b), true
	case PropMaxCapacity:
		// BUIC is already a percentage.
		return 100, true
	default:
		return 0, false
	}
}

func (s *smcService) ReadBool(p Property) (bool, bool) {
	switch p {
	case PropExternalConnected:
		b, ok := s.readByte(smcACPowerKey)
		if !ok {
			return false, false
		}
		return b != 0, true
	case PropIsCharging:
		plugged, ok := s.ReadBool(PropExternalConnected)
		if !ok {
			return false, false
		}
		charge, ok := s.ReadNumber(PropCurrentCharge)
		if !ok {
			return false, false
		}
		return plugged && charge < 100, true
	case PropFullyCharged:
		plugged, ok := s.ReadBool(PropExternalConnected)
		if !ok {
			return false, false
		}
		charge, ok := s.ReadNumber(PropCurrentCharge)
		if !ok {
			return false, false
		}
		return plugged && charge >= 100, true
	default:
		return false, false
	}
}
