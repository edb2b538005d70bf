package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"clinibook/server/internal/domain"
	"clinibook/server/internal/service/booking"
	"clinibook/server/internal/store"
)

type bookingService interface {
	List(ctx context.Context) ([]domain.Appointment, error)
	Book(ctx context.Context, in booking.BookInput) (domain.Appointment, error)
}

// Handler serves the appointment JSON API.
type Handler struct {
	svc bookingService
	log zerolog.Logger
}

func NewHandler(svc bookingService, log zerolog.Logger) *Handler {
	return &Handler{
		svc: svc,
		log: log.With().Str("component", "http.appointments").Logger(),
	}
}

// Register mounts the API routes on e.
func (h *Handler) Register(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/appointments", h.List)
	api.POST("/appointments", h.Book)
}

type errorResponse struct {
	Error string `json:"error"`
}

type bookRequest struct {
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	PatientName     string `json:"patientName"`
	PatientEmail    string `json:"patientEmail"`
	PatientPhone    string `json:"patientPhone"`
	PatientAdhaar   string `json:"patientAdhaar"`
	Concern         string `json:"concern"`
}

func (h *Handler) List(c echo.Context) error {
	appts, err := h.svc.List(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("appointments list failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to read appointments"})
	}
	if appts == nil {
		appts = []domain.Appointment{}
	}
	return c.JSON(http.StatusOK, appts)
}

func (h *Handler) Book(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		h.log.Warn().Err(err).Msg("malformed booking request")
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Missing required fields"})
	}

	appt, err := h.svc.Book(c.Request().Context(), booking.BookInput{
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		PatientName:     req.PatientName,
		PatientEmail:    req.PatientEmail,
		PatientPhone:    req.PatientPhone,
		PatientAdhaar:   req.PatientAdhaar,
		Concern:         req.Concern,
	})
	if err != nil {
		var vErr *booking.ValidationError
		if errors.As(err, &vErr) {
			h.log.Warn().Err(err).Msg("invalid booking request")
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "Missing required fields"})
		}
		if errors.Is(err, store.ErrSlotTaken) {
			h.log.Info().
				Str("date", req.AppointmentDate).
				Str("time", req.AppointmentTime).
				Msg("booking conflict")
			return c.JSON(http.StatusConflict, errorResponse{Error: "This time slot is already booked."})
		}
		h.log.Error().Err(err).Msg("booking failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to save appointment"})
	}

	return c.JSON(http.StatusCreated, appt)
}
