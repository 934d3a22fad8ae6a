package adminapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/labstack/echo/v4"

	"github.com/bistrostack/gastropanel/internal/domain"
	"github.com/bistrostack/gastropanel/internal/notify"
	"github.com/bistrostack/gastropanel/internal/webserver"
	"github.com/bistrostack/gastropanel/pkg/metrics"
)

// ReservationStore covers table bookings.
type ReservationStore interface {
	CreateReservation(ctx context.Context, r *domain.Reservation) (string, error)
	ListReservations(ctx context.Context, day *time.Time) ([]domain.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id, status string) (*domain.Reservation, error)
	DeleteReservation(ctx context.Context, id string) error
}

func (s *Server) registerReservationRoutes(web *webserver.WebServer) {
	// Booking comes from the public site; management stays behind the token.
	web.PubPOST("/reservations", s.createReservation)
	web.ApiGET("/reservations", s.listReservations)
	web.ApiPUT("/reservations/:id/status", s.updateReservationStatus)
	web.ApiDELETE("/reservations/:id", s.deleteReservation)
}

type reservationPayload struct {
	CustomerName string `json:"customerName" validate:"omitempty,max=120"`
	Phone        string `json:"phone" validate:"omitempty,min=6,max=24"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Guests       int    `json:"guests" validate:"omitempty,max=50"`
	Table        string `json:"table" validate:"omitempty,max=16"`
}

func (s *Server) createReservation(c echo.Context) error {
	var payload reservationPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse reservation", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	switch {
	case strings.TrimSpace(payload.CustomerName) == "":
		return fail(c, http.StatusBadRequest, "MISSING_NAME", "Customer name is required", nil)
	case strings.TrimSpace(payload.Phone) == "":
		return fail(c, http.StatusBadRequest, "MISSING_PHONE", "Phone number is required", nil)
	case payload.Date == "" || payload.Time == "":
		return fail(c, http.StatusBadRequest, "MISSING_DATETIME", "Reservation date and time are required", nil)
	case payload.Guests < 1:
		return fail(c, http.StatusBadRequest, "INVALID_GUESTS", "Guest count must be at least 1", nil)
	case strings.TrimSpace(payload.Table) == "":
		return fail(c, http.StatusBadRequest, "MISSING_TABLE", "A table must be selected", nil)
	}

	when, err := time.ParseInLocation("2006-01-02 15:04", payload.Date+" "+payload.Time, time.Local)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_DATETIME", "Reservation date/time is malformed", err.Error())
	}

	r := &domain.Reservation{
		CustomerName: strings.TrimSpace(payload.CustomerName),
		Phone:        strings.TrimSpace(payload.Phone),
		DateTime:     when,
		Guests:       payload.Guests,
		Table:        payload.Table,
		Status:       domain.ReservationPending,
	}
	id, err := s.store.CreateReservation(c.Request().Context(), r)
	if err != nil {
		return failFrom(c, err, "reservation")
	}
	metrics.RecordEntityOperation("reservation", "create")
	s.record(c, "create", "reservation", id, r.CustomerName)
	s.emit(c.Request().Context(), notify.KeyReservationCreated, r)
	return created(c, r)
}

func (s *Server) listReservations(c echo.Context) error {
	var day *time.Time
	if q := strings.TrimSpace(c.QueryParam("date")); q != "" {
		// Accept whatever date format the panel sends.
		parsed, err := dateparse.ParseIn(q, time.Local)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_DATE", "Unrecognized date filter", err.Error())
		}
		day = &parsed
	}
	reservations, err := s.store.ListReservations(c.Request().Context(), day)
	if err != nil {
		return failFrom(c, err, "reservations")
	}
	return ok(c, reservations)
}

type statusPayload struct {
	Status string `json:"status"`
}

func (s *Server) updateReservationStatus(c echo.Context) error {
	var payload statusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status", nil)
	}
	if !domain.ValidReservationStatus(payload.Status) {
		return fail(c, http.StatusBadRequest, "INVALID_STATUS",
			"Status must be one of: "+strings.Join(domain.ReservationStatuses, ", "), nil)
	}
	r, err := s.store.UpdateReservationStatus(c.Request().Context(), c.Param("id"), payload.Status)
	if err != nil {
		return failFrom(c, err, "reservation")
	}
	metrics.RecordEntityOperation("reservation", "update")
	s.record(c, "update_status", "reservation", c.Param("id"), payload.Status)
	return ok(c, r)
}

func (s *Server) deleteReservation(c echo.Context) error {
	id := c.Param("id")
	if err := s.store.DeleteReservation(c.Request().Context(), id); err != nil {
		return failFrom(c, err, "reservation")
	}
	metrics.RecordEntityOperation("reservation", "delete")
	s.record(c, "delete", "reservation", id, "")
	return ok(c, map[string]string{"id": id})
}
