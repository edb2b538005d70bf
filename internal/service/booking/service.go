// Package booking owns the appointment collection: it validates requests,
// enforces the one-booking-per-slot invariant and drives persistence and
// notification.
package booking

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"clinibook/server/internal/domain"
	"clinibook/server/internal/store"
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

// Notifier receives a finalized appointment. Both calls are best-effort: the
// service logs failures and never lets them affect a booking.
type Notifier interface {
	NotifyAdmin(ctx context.Context, appt domain.Appointment) error
	NotifyPatient(ctx context.Context, appt domain.Appointment) error
}

type Service struct {
	store    store.Store
	notifier Notifier
	log      zerolog.Logger

	// mu serializes the load-check-append-persist sequence so two
	// near-simultaneous requests for the same slot cannot both observe it
	// as free.
	mu sync.Mutex

	notifyTimeout time.Duration
	now           func() time.Time
	newID         func() (uuid.UUID, error)
}

func NewService(st store.Store, notifier Notifier, notifyTimeout time.Duration, log zerolog.Logger) *Service {
	if notifyTimeout <= 0 {
		notifyTimeout = 15 * time.Second
	}
	return &Service{
		store:         st,
		notifier:      notifier,
		log:           log.With().Str("component", "booking").Logger(),
		notifyTimeout: notifyTimeout,
		now:           time.Now,
		newID:         domain.NewID,
	}
}

type BookInput struct {
	AppointmentDate string
	AppointmentTime string
	PatientName     string
	PatientEmail    string
	PatientPhone    string
	PatientAdhaar   string
	Concern         string
}

// List returns the current collection in booking order. A storage read
// failure propagates to the caller.
func (s *Service) List(ctx context.Context) ([]domain.Appointment, error) {
	return s.store.LoadAll(ctx)
}

// Book records an appointment for the requested slot. It fails with a
// *ValidationError when a required field is missing and with
// store.ErrSlotTaken when the slot is occupied. Storage degradation is
// absorbed: a booking either fully succeeds or is not recorded at all.
//
// Notification dispatch happens after the booking is committed, on its own
// goroutine, and never influences the returned result.
func (s *Service) Book(ctx context.Context, in BookInput) (domain.Appointment, error) {
	if strings.TrimSpace(in.AppointmentDate) == "" {
		return domain.Appointment{}, validationError("appointment_date is required")
	}
	if strings.TrimSpace(in.AppointmentTime) == "" {
		return domain.Appointment{}, validationError("appointment_time is required")
	}
	if strings.TrimSpace(in.PatientName) == "" {
		return domain.Appointment{}, validationError("patientName is required")
	}

	appt, err := s.book(ctx, in)
	if err != nil {
		return domain.Appointment{}, err
	}

	go s.dispatchNotifications(appt)

	return appt, nil
}

func (s *Service) book(ctx context.Context, in BookInput) (domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	appts, err := s.store.LoadAll(ctx)
	if err != nil {
		// An unreadable backing store must not block new bookings; the
		// collection is treated as empty.
		s.log.Warn().Err(err).Msg("load failed, treating collection as empty")
		appts = nil
	}

	if domain.SlotTaken(appts, in.AppointmentDate, in.AppointmentTime) {
		return domain.Appointment{}, store.ErrSlotTaken
	}

	id, err := s.newID()
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("generate id: %w", err)
	}

	appt := domain.Appointment{
		ID:              id,
		AppointmentDate: in.AppointmentDate,
		AppointmentTime: in.AppointmentTime,
		PatientName:     in.PatientName,
		PatientEmail:    in.PatientEmail,
		PatientPhone:    in.PatientPhone,
		PatientAdhaar:   in.PatientAdhaar,
		Concern:         in.Concern,
		CreatedAt:       s.now().UTC(),
	}

	appts = append(appts, appt)
	if err := s.store.SaveAll(ctx, appts); err != nil {
		return domain.Appointment{}, fmt.Errorf("persist appointments: %w", err)
	}

	s.log.Info().
		Str("appointment_id", appt.ID.String()).
		Str("date", appt.AppointmentDate).
		Str("time", appt.AppointmentTime).
		Msg("appointment booked")

	return appt, nil
}

func (s *Service) dispatchNotifications(appt domain.Appointment) {
	if s.notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
	defer cancel()

	if err := s.notifier.NotifyAdmin(ctx, appt); err != nil {
		s.log.Warn().Err(err).
			Str("appointment_id", appt.ID.String()).
			Msg("admin notification failed")
	}
	if appt.PatientEmail == "" {
		return
	}
	if err := s.notifier.NotifyPatient(ctx, appt); err != nil {
		s.log.Warn().Err(err).
			Str("appointment_id", appt.ID.String()).
			Msg("patient notification failed")
	}
}
