package powersource

import "sync"

// MockService is an in-memory Service with prefilled property values, used
// by tests and by the daemon's --simulate mode.
type MockService struct {
	mu      sync.Mutex
	open    bool
	numbers map[Property]float64
	bools   map[Property]bool

	// OpenErr, when set, is returned by the next Open call.
	OpenErr error
	// CloseErr, when set, is returned by Close calls.
	CloseErr error
}

// NewMock returns a MockService prefilled with the given values.
func NewMock(numbers map[Property]float64, bools map[Property]bool) *MockService {
	m := &MockService{
		numbers: make(map[Property]float64),
		bools:   make(map[Property]bool),
	}
	for k, v := range numbers {
		m.numbers[k] = v
	}
	for k, v := range bools {
		m.bools[k] = v
	}
	return m
}

func (m *MockService) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.OpenErr != nil {
		return m.OpenErr
	}
	if m.open {
		return ErrConnectionAlreadyOpen
	}
	m.open = true
	return nil
}

func (m *MockService) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CloseErr != nil {
		return m.CloseErr
	}
	m.open = false
	return nil
}

func (m *MockService) ReadNumber(p Property) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.numbers[p]
	return v, ok
}

func (m *MockService) ReadBool(p Property) (bool, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.bools[p]
	return v, ok
}

// SetNumber updates a numeric property.
func (m *MockService) SetNumber(p Property, v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.numbers[p] = v
}

// SetBool updates a boolean property.
func (m *MockService) SetBool(p Property, v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bools[p] = v
}

// DeleteProperty removes a property so reads report it as absent.
func (m *MockService) DeleteProperty(p Property) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.numbers, p)
	delete(m.bools, p)
}
