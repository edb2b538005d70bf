package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"clinibook/server/internal/domain"
	"clinibook/server/internal/service/booking"
	"clinibook/server/internal/store"
)

type fakeBookingService struct {
	listFn func(ctx context.Context) ([]domain.Appointment, error)
	bookFn func(ctx context.Context, in booking.BookInput) (domain.Appointment, error)
}

func (f *fakeBookingService) List(ctx context.Context) ([]domain.Appointment, error) {
	if f.listFn == nil {
		panic("List not configured")
	}
	return f.listFn(ctx)
}

func (f *fakeBookingService) Book(ctx context.Context, in booking.BookInput) (domain.Appointment, error) {
	if f.bookFn == nil {
		panic("Book not configured")
	}
	return f.bookFn(ctx, in)
}

func newTestServer(svc bookingService) *echo.Echo {
	return NewServer(NewHandler(svc, zerolog.Nop()), "", zerolog.Nop())
}

func decodeError(t *testing.T, body string) string {
	t.Helper()
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("decode error body %q: %v", body, err)
	}
	return resp.Error
}

func TestListAppointments_OK(t *testing.T) {
	id, _ := uuid.NewV7()
	appt := domain.Appointment{
		ID:              id,
		AppointmentDate: "2024-06-01",
		AppointmentTime: "10:00",
		PatientName:     "Asha",
		CreatedAt:       time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC),
	}
	e := newTestServer(&fakeBookingService{
		listFn: func(ctx context.Context) ([]domain.Appointment, error) {
			return []domain.Appointment{appt}, nil
		},
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/appointments", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("listed %d records, want 1", len(got))
	}
	for _, field := range []string{"id", "appointment_date", "appointment_time", "patientName", "createdAt"} {
		if _, ok := got[0][field]; !ok {
			t.Fatalf("response missing wire field %q: %v", field, got[0])
		}
	}
}

func TestListAppointments_EmptyCollectionIsJSONArray(t *testing.T) {
	e := newTestServer(&fakeBookingService{
		listFn: func(ctx context.Context) ([]domain.Appointment, error) {
			return nil, nil
		},
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/appointments", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("body = %q, want empty JSON array", body)
	}
}

func TestListAppointments_StorageFailure(t *testing.T) {
	e := newTestServer(&fakeBookingService{
		listFn: func(ctx context.Context) ([]domain.Appointment, error) {
			return nil, store.ErrUnavailable
		},
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/appointments", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := decodeError(t, rec.Body.String()); got != "Failed to read appointments" {
		t.Fatalf("error = %q, want %q", got, "Failed to read appointments")
	}
}

func postJSON(e *echo.Echo, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestBookAppointment_Created(t *testing.T) {
	id, _ := uuid.NewV7()
	var captured booking.BookInput
	e := newTestServer(&fakeBookingService{
		bookFn: func(ctx context.Context, in booking.BookInput) (domain.Appointment, error) {
			captured = in
			return domain.Appointment{
				ID:              id,
				AppointmentDate: in.AppointmentDate,
				AppointmentTime: in.AppointmentTime,
				PatientName:     in.PatientName,
				PatientEmail:    in.PatientEmail,
				CreatedAt:       time.Now().UTC(),
			}, nil
		},
	})

	rec := postJSON(e, `{
		"appointment_date": "2024-06-01",
		"appointment_time": "10:00",
		"patientName": "Asha",
		"patientEmail": "asha@example.com",
		"patientPhone": "9999999999",
		"patientAdhaar": "1234-5678-9012",
		"concern": "checkup"
	}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	if captured.PatientPhone != "9999999999" || captured.PatientAdhaar != "1234-5678-9012" || captured.Concern != "checkup" {
		t.Fatalf("optional fields not forwarded: %+v", captured)
	}

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got["id"] != id.String() {
		t.Fatalf("id = %v, want %s", got["id"], id)
	}
	if got["createdAt"] == nil {
		t.Fatal("createdAt missing from response")
	}
}

func TestBookAppointment_MissingRequiredFields(t *testing.T) {
	e := newTestServer(&fakeBookingService{
		bookFn: func(ctx context.Context, in booking.BookInput) (domain.Appointment, error) {
			return domain.Appointment{}, &booking.ValidationError{}
		},
	})

	rec := postJSON(e, `{"appointment_date": "2024-06-01", "appointment_time": "10:00"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := decodeError(t, rec.Body.String()); got != "Missing required fields" {
		t.Fatalf("error = %q, want %q", got, "Missing required fields")
	}
}

func TestBookAppointment_SlotTaken(t *testing.T) {
	e := newTestServer(&fakeBookingService{
		bookFn: func(ctx context.Context, in booking.BookInput) (domain.Appointment, error) {
			return domain.Appointment{}, store.ErrSlotTaken
		},
	})

	rec := postJSON(e, `{"appointment_date": "2024-06-01", "appointment_time": "10:00", "patientName": "Ravi"}`)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if got := decodeError(t, rec.Body.String()); got != "This time slot is already booked." {
		t.Fatalf("error = %q, want %q", got, "This time slot is already booked.")
	}
}

func TestBookAppointment_UnexpectedFailure(t *testing.T) {
	e := newTestServer(&fakeBookingService{
		bookFn: func(ctx context.Context, in booking.BookInput) (domain.Appointment, error) {
			return domain.Appointment{}, context.DeadlineExceeded
		},
	})

	rec := postJSON(e, `{"appointment_date": "2024-06-01", "appointment_time": "10:00", "patientName": "Asha"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := decodeError(t, rec.Body.String()); got != "Failed to save appointment" {
		t.Fatalf("error = %q, want %q", got, "Failed to save appointment")
	}
}

func TestBookAppointment_MalformedJSON(t *testing.T) {
	e := newTestServer(&fakeBookingService{})

	rec := postJSON(e, `{not json`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := decodeError(t, rec.Body.String()); got != "Missing required fields" {
		t.Fatalf("error = %q, want %q", got, "Missing required fields")
	}
}

func TestHealth(t *testing.T) {
	e := newTestServer(&fakeBookingService{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
