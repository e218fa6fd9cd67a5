//go:build !darwin

package powersource

import "fmt"

// NewDefaultService returns the preferred live backend for this platform.
func NewDefaultService() Service {
	return NewDistatusService()
}

// NewServiceByName returns the named backend. "auto" picks the platform
// default.
func NewServiceByName(name string) (Service, error) {
	switch name {
	case "auto":
		return NewDefaultService(), nil
	case "distatus":
		return NewDistatusService(), nil
	default:
		return nil, fmt.Errorf("unknown power source %q, valid sources are auto, distatus", name)
	}
}
