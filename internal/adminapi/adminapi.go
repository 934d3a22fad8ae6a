package adminapi

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/bistrostack/gastropanel/config"
	"github.com/bistrostack/gastropanel/internal/repository"
	"github.com/bistrostack/gastropanel/internal/webserver"
)

// Store combines the per-entity persistence interfaces the handlers depend
// on. *repository.Store satisfies it; tests substitute a mock.
type Store interface {
	EmployeeStore
	SessionStore
	ProductStore
	OrderStore
	ReservationStore
	MenuStore
	WorkStore
	CatalogStore
	DataStore
}

var _ Store = (*repository.Store)(nil)

// Auditor records best-effort activity entries.
type Auditor interface {
	Record(actor, action, entity, entityID, detail string)
}

// Notifier publishes domain events; may be absent.
type Notifier interface {
	Publish(ctx context.Context, key string, event interface{})
}

// Server holds the handler dependencies and registers all API routes.
type Server struct {
	store    Store
	audit    Auditor
	notify   Notifier
	secret   string
	tokenTTL time.Duration
}

func NewServer(cfg *config.AppConfig, store Store, audit Auditor, notify Notifier) *Server {
	ttl := time.Duration(cfg.Web.TokenTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Server{
		store:    store,
		audit:    audit,
		notify:   notify,
		secret:   cfg.Web.Secret,
		tokenTTL: ttl,
	}
}

func (s *Server) Register(web *webserver.WebServer) {
	s.registerAuthRoutes(web)
	s.registerEmployeeRoutes(web)
	s.registerProductRoutes(web)
	s.registerOrderRoutes(web)
	s.registerReservationRoutes(web)
	s.registerMenuRoutes(web)
	s.registerWorkRoutes(web)
	s.registerCatalogRoutes(web)
	s.registerDataRoutes(web)
}

func (s *Server) record(c echo.Context, action, entity, entityID, detail string) {
	if s.audit == nil {
		return
	}
	actor := webserver.CurrentLogin(c)
	if actor == "" {
		actor = "system"
	}
	s.audit.Record(actor, action, entity, entityID, detail)
}

func (s *Server) emit(ctx context.Context, key string, event interface{}) {
	if s.notify != nil {
		s.notify.Publish(ctx, key, event)
	}
}

type apiResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Detail  interface{} `json:"detail,omitempty"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, apiResponse{Code: "OK", Data: data})
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, apiResponse{Code: "CREATED", Data: data})
}

func fail(c echo.Context, status int, code, msg string, detail interface{}) error {
	return c.JSON(status, apiResponse{Code: code, Message: msg, Detail: detail})
}

// handleValidationError converts echo validator failures into the envelope.
func handleValidationError(c echo.Context, err error) error {
	if he, ok := err.(*echo.HTTPError); ok {
		return fail(c, he.Code, "VALIDATION_ERROR", "Request failed field validation", he.Message)
	}
	return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Request failed field validation", err.Error())
}

// failFrom maps repository sentinels onto the HTTP error taxonomy.
func failFrom(c echo.Context, err error, entity string) error {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+entity+" ID", nil)
	case errors.Is(err, repository.ErrNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", entity+" not found", nil)
	case errors.Is(err, repository.ErrDuplicate):
		return fail(c, http.StatusConflict, "DUPLICATE", "Duplicate "+entity, nil)
	case errors.Is(err, repository.ErrSessionOpen):
		return fail(c, http.StatusConflict, "SESSION_OPEN", "An open work session already exists", nil)
	case errors.Is(err, repository.ErrNoOpenWork):
		return fail(c, http.StatusNotFound, "NO_OPEN_SESSION", "No open work session", nil)
	default:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to access "+entity, err.Error())
	}
}
