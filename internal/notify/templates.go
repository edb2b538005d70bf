package notify

import (
	"fmt"
	"strings"
	"sync"

	"clinibook/server/internal/domain"
)

// Template is a reusable notification message with {{key}} placeholders.
type Template struct {
	ID      string
	Subject string
	Body    string
}

// TemplateEngine stores templates and renders them with a data map. Keys
// present in the template but absent from the data are left as-is.
type TemplateEngine struct {
	mu        sync.RWMutex
	templates map[string]Template
}

const (
	TemplateAdminAlert          = "booking-admin-alert"
	TemplatePatientConfirmation = "booking-patient-confirmation"
)

func NewTemplateEngine() *TemplateEngine {
	e := &TemplateEngine{templates: make(map[string]Template)}
	e.Register(Template{
		ID:      TemplateAdminAlert,
		Subject: "New appointment: {{patient_name}} on {{date}} at {{time}}",
		Body: "A new appointment was booked.\n\n" +
			"Patient: {{patient_name}}\n" +
			"Date: {{date}}\n" +
			"Time: {{time}}\n" +
			"Phone: {{phone}}\n" +
			"Email: {{email}}\n" +
			"Concern: {{concern}}\n",
	})
	e.Register(Template{
		ID:      TemplatePatientConfirmation,
		Subject: "Your appointment on {{date}} is confirmed",
		Body: "Dear {{patient_name}},\n\n" +
			"Your appointment has been confirmed for {{date}} at {{time}}.\n" +
			"If you need to make changes, please contact the clinic.\n",
	})
	return e
}

// Register adds or replaces a template.
func (e *TemplateEngine) Register(t Template) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.templates[t.ID] = t
}

// Render looks up a template by ID and performs {{key}} replacement.
func (e *TemplateEngine) Render(templateID string, data map[string]string) (subject, body string, err error) {
	e.mu.RLock()
	t, ok := e.templates[templateID]
	e.mu.RUnlock()
	if !ok {
		return "", "", fmt.Errorf("template %q not found", templateID)
	}

	subject = t.Subject
	body = t.Body
	for k, v := range data {
		placeholder := "{{" + k + "}}"
		subject = strings.ReplaceAll(subject, placeholder, v)
		body = strings.ReplaceAll(body, placeholder, v)
	}
	return subject, body, nil
}

func templateData(appt domain.Appointment) map[string]string {
	return map[string]string{
		"patient_name": appt.PatientName,
		"date":         appt.AppointmentDate,
		"time":         appt.AppointmentTime,
		"phone":        appt.PatientPhone,
		"email":        appt.PatientEmail,
		"concern":      appt.Concern,
	}
}
