// Package file implements the durable store.Store variant: the full
// appointment collection persisted as one pretty-printed JSON document at a
// fixed path.
//
// Durability is best-effort. If a write ever fails the store transitions to a
// degraded mode where the collection is held in process memory for the rest
// of the process lifetime; bookings keep succeeding, they just stop surviving
// restarts. The transition is one-way and observable through Degraded.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"clinibook/server/internal/domain"
	"clinibook/server/internal/store"
)

type Store struct {
	path string
	log  zerolog.Logger

	mu       sync.Mutex
	degraded bool
	fallback []domain.Appointment
}

func New(path string, log zerolog.Logger) *Store {
	return &Store{
		path: path,
		log:  log.With().Str("component", "store.file").Str("path", path).Logger(),
	}
}

// LoadAll reads the snapshot from disk. A missing file is an empty
// collection. A file that exists but cannot be read or parsed yields an error
// wrapping store.ErrUnavailable. Once degraded, the in-memory fallback is
// served instead.
func (s *Store) LoadAll(_ context.Context) ([]domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.degraded {
		return copyAppointments(s.fallback), nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read %s: %w", store.ErrUnavailable, s.path, err)
	}

	var appts []domain.Appointment
	if err := json.Unmarshal(data, &appts); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", store.ErrUnavailable, s.path, err)
	}
	return appts, nil
}

// SaveAll persists the snapshot. A write failure is absorbed: the snapshot is
// retained in memory, the store flips to degraded and SaveAll still reports
// success so the booking flow stays available.
func (s *Store) SaveAll(_ context.Context, appts []domain.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.degraded {
		s.fallback = copyAppointments(appts)
		return nil
	}

	if err := s.write(appts); err != nil {
		s.degraded = true
		s.fallback = copyAppointments(appts)
		s.log.Warn().Err(err).Msg("write failed, falling back to in-memory storage for the rest of this process")
	}
	return nil
}

// Degraded reports whether a write failure has switched the store to its
// in-memory fallback.
func (s *Store) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

func (s *Store) write(appts []domain.Appointment) error {
	if appts == nil {
		appts = []domain.Appointment{}
	}
	data, err := json.MarshalIndent(appts, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	// Write-then-rename so a crash mid-write never leaves a half-written
	// snapshot behind.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func copyAppointments(appts []domain.Appointment) []domain.Appointment {
	if appts == nil {
		return nil
	}
	out := make([]domain.Appointment, len(appts))
	copy(out, appts)
	return out
}
