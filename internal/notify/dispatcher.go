// Package notify delivers booking notifications by email. Delivery is
// best-effort from the caller's point of view: a failed send is an error to
// log, never a reason to undo a booking.
package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"clinibook/server/internal/config"
	"clinibook/server/internal/domain"
)

// EmailSender sends a single email message.
type EmailSender interface {
	SendEmail(ctx context.Context, mail config.Mail, to, subject, body string) error
}

// ConfigProvider returns the current mail transport settings. It is consulted
// on every dispatch so configuration changes take effect without a restart.
type ConfigProvider func() config.Mail

// Dispatcher sends the admin alert and patient confirmation emails for a
// booked appointment.
type Dispatcher struct {
	cfg       ConfigProvider
	sender    EmailSender
	templates *TemplateEngine
	log       zerolog.Logger
}

func NewDispatcher(cfg ConfigProvider, sender EmailSender, log zerolog.Logger) *Dispatcher {
	if cfg == nil {
		cfg = config.MailFromEnv
	}
	if sender == nil {
		sender = NewSMTPSender()
	}
	return &Dispatcher{
		cfg:       cfg,
		sender:    sender,
		templates: NewTemplateEngine(),
		log:       log.With().Str("component", "notify").Logger(),
	}
}

// NotifyAdmin emails the configured administrator about a new booking.
func (d *Dispatcher) NotifyAdmin(ctx context.Context, appt domain.Appointment) error {
	mail := d.cfg()
	if !mail.Configured() {
		return fmt.Errorf("mail transport not configured")
	}
	if mail.AdminEmail == "" {
		return fmt.Errorf("no admin recipient configured")
	}

	subject, body, err := d.templates.Render(TemplateAdminAlert, templateData(appt))
	if err != nil {
		return err
	}
	if err := d.sender.SendEmail(ctx, mail, mail.AdminEmail, subject, body); err != nil {
		return fmt.Errorf("send admin alert: %w", err)
	}

	d.log.Info().
		Str("appointment_id", appt.ID.String()).
		Str("date", appt.AppointmentDate).
		Str("time", appt.AppointmentTime).
		Msg("admin notified")
	return nil
}

// NotifyPatient emails the booking confirmation to the patient. Callers only
// invoke this when the appointment carries a patient email.
func (d *Dispatcher) NotifyPatient(ctx context.Context, appt domain.Appointment) error {
	if appt.PatientEmail == "" {
		return fmt.Errorf("appointment has no patient email")
	}

	mail := d.cfg()
	if !mail.Configured() {
		return fmt.Errorf("mail transport not configured")
	}

	subject, body, err := d.templates.Render(TemplatePatientConfirmation, templateData(appt))
	if err != nil {
		return err
	}
	if err := d.sender.SendEmail(ctx, mail, appt.PatientEmail, subject, body); err != nil {
		return fmt.Errorf("send patient confirmation: %w", err)
	}

	d.log.Info().
		Str("appointment_id", appt.ID.String()).
		Msg("patient notified")
	return nil
}
