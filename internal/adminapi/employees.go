package adminapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/bistrostack/gastropanel/internal/domain"
	"github.com/bistrostack/gastropanel/internal/webserver"
	"github.com/bistrostack/gastropanel/pkg/metrics"
)

// EmployeeStore covers the staff directory.
type EmployeeStore interface {
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	GetEmployee(ctx context.Context, id string) (*domain.Employee, error)
	GetEmployeeByLogin(ctx context.Context, login string) (*domain.Employee, error)
	CreateEmployee(ctx context.Context, e *domain.Employee) (string, error)
	UpdateEmployee(ctx context.Context, id string, patch map[string]interface{}) (*domain.Employee, error)
	TouchLastLogin(ctx context.Context, login string, at time.Time) error
}

func (s *Server) registerEmployeeRoutes(web *webserver.WebServer) {
	web.ApiGET("/employees", s.listEmployees)
	web.ApiGET("/employees/:id", s.getEmployee)
	web.ApiPOST("/employees", s.createEmployee)
	web.ApiPUT("/employees/:id", s.updateEmployee)
}

func (s *Server) listEmployees(c echo.Context) error {
	employees, err := s.store.ListEmployees(c.Request().Context())
	if err != nil {
		return failFrom(c, err, "employees")
	}
	return ok(c, employees)
}

func (s *Server) getEmployee(c echo.Context) error {
	emp, err := s.store.GetEmployee(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failFrom(c, err, "employee")
	}
	return ok(c, emp)
}

type employeePayload struct {
	Name       string   `json:"name" validate:"omitempty,max=120"`
	Login      string   `json:"login" validate:"omitempty,min=3,max=64"`
	Password   string   `json:"password" validate:"omitempty,max=72"`
	Position   string   `json:"position" validate:"omitempty,max=120"`
	Workplace  string   `json:"workplace" validate:"omitempty,max=120"`
	HourlyRate *float64 `json:"hourlyRate"`
	Level      string   `json:"level" validate:"omitempty,oneof=admin staff"`
}

func (s *Server) createEmployee(c echo.Context) error {
	var payload employeePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse employee", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	payload.Login = strings.TrimSpace(payload.Login)
	payload.Name = strings.TrimSpace(payload.Name)
	switch {
	case payload.Name == "":
		return fail(c, http.StatusBadRequest, "MISSING_NAME", "Employee name is required", nil)
	case payload.Login == "":
		return fail(c, http.StatusBadRequest, "MISSING_LOGIN", "Employee login is required", nil)
	case payload.Password == "":
		return fail(c, http.StatusBadRequest, "MISSING_PASSWORD", "Employee password is required", nil)
	case payload.HourlyRate != nil && *payload.HourlyRate < 0:
		return fail(c, http.StatusBadRequest, "INVALID_RATE", "Hourly rate must not be negative", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "HASH_ERROR", "Failed to hash password", err.Error())
	}
	level := payload.Level
	if level == "" {
		level = domain.LevelStaff
	}
	emp := &domain.Employee{
		Name:      payload.Name,
		Login:     payload.Login,
		Password:  string(hash),
		Position:  payload.Position,
		Workplace: payload.Workplace,
		Level:     level,
	}
	if payload.HourlyRate != nil {
		emp.HourlyRate = *payload.HourlyRate
	}

	id, err := s.store.CreateEmployee(c.Request().Context(), emp)
	if err != nil {
		return failFrom(c, err, "employee login")
	}
	metrics.RecordEntityOperation("employee", "create")
	s.record(c, "create", "employee", id, payload.Login)
	return created(c, emp)
}

func (s *Server) updateEmployee(c echo.Context) error {
	var payload employeePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse employee", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	patch := map[string]interface{}{}
	if v := strings.TrimSpace(payload.Name); v != "" {
		patch["name"] = v
	}
	if v := strings.TrimSpace(payload.Login); v != "" {
		patch["login"] = v
	}
	if payload.Position != "" {
		patch["position"] = payload.Position
	}
	if payload.Workplace != "" {
		patch["workplace"] = payload.Workplace
	}
	if payload.Level != "" {
		patch["level"] = payload.Level
	}
	if payload.HourlyRate != nil {
		if *payload.HourlyRate < 0 {
			return fail(c, http.StatusBadRequest, "INVALID_RATE", "Hourly rate must not be negative", nil)
		}
		patch["hourlyRate"] = *payload.HourlyRate
	}
	if payload.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "HASH_ERROR", "Failed to hash password", err.Error())
		}
		patch["password"] = string(hash)
	}
	if len(patch) == 0 {
		return fail(c, http.StatusBadRequest, "EMPTY_PATCH", "No fields to update", nil)
	}

	emp, err := s.store.UpdateEmployee(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return failFrom(c, err, "employee")
	}
	metrics.RecordEntityOperation("employee", "update")
	s.record(c, "update", "employee", c.Param("id"), "")
	return ok(c, emp)
}
