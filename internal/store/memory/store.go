// Package memory implements the volatile store.Store variant, used when the
// filesystem is read-only. The collection lives only for the process
// lifetime.
package memory

import (
	"context"
	"sync"

	"clinibook/server/internal/domain"
)

type Store struct {
	mu    sync.RWMutex
	appts []domain.Appointment
}

func New() *Store {
	return &Store{}
}

func (s *Store) LoadAll(_ context.Context) ([]domain.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.appts == nil {
		return nil, nil
	}
	out := make([]domain.Appointment, len(s.appts))
	copy(out, s.appts)
	return out, nil
}

// SaveAll replaces the held snapshot wholesale.
func (s *Store) SaveAll(_ context.Context, appts []domain.Appointment) error {
	cp := make([]domain.Appointment, len(appts))
	copy(cp, appts)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.appts = cp
	return nil
}
