package in_memory

import (
	"sync"
)

// StyleStorage keeps the selected generation temperature per user for the
// lifetime of the process.
type StyleStorage struct {
	mu           sync.RWMutex
	temperatures map[int64]float64
}

func NewStyleStorage() *StyleStorage {
	return &StyleStorage{
		temperatures: make(map[int64]float64),
	}
}

func (s *StyleStorage) SetTemperature(userID int64, temperature float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.temperatures[userID] = temperature
}

// GetTemperature returns the stored temperature and whether the user has one.
func (s *StyleStorage) GetTemperature(userID int64) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	temperature, ok := s.temperatures[userID]
	return temperature, ok
}
