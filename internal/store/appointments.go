package store

import (
	"context"

	"clinibook/server/internal/domain"
)

// Store is the snapshot persistence contract for the appointment collection.
// Implementations hold no authoritative state of their own between calls: the
// booking service always hands them the full collection.
//
// LoadAll returns the current snapshot in insertion order. A durable backend
// whose medium is corrupt or unreadable returns an error wrapping
// ErrUnavailable; a missing backing file is not an error, it is an empty
// collection.
//
// SaveAll replaces the persisted snapshot wholesale.
type Store interface {
	LoadAll(ctx context.Context) ([]domain.Appointment, error)
	SaveAll(ctx context.Context, appts []domain.Appointment) error
}
