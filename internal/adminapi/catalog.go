package adminapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/labstack/echo/v4"

	"github.com/bistrostack/gastropanel/internal/domain"
	"github.com/bistrostack/gastropanel/internal/webserver"
	"github.com/bistrostack/gastropanel/pkg/metrics"
)

// CatalogStore covers product categories and the holiday calendar.
type CatalogStore interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, c *domain.Category) (string, error)
	DeleteCategory(ctx context.Context, id string) error
	ListHolidays(ctx context.Context) ([]domain.Holiday, error)
	CreateHoliday(ctx context.Context, h *domain.Holiday) (string, error)
	DeleteHoliday(ctx context.Context, id string) error
}

func (s *Server) registerCatalogRoutes(web *webserver.WebServer) {
	web.ApiGET("/categories", s.listCategories)
	web.ApiPOST("/categories", s.createCategory)
	web.ApiDELETE("/categories/:id", s.deleteCategory)
	web.ApiGET("/holidays", s.listHolidays)
	web.ApiPOST("/holidays", s.createHoliday)
	web.ApiDELETE("/holidays/:id", s.deleteHoliday)
}

func (s *Server) listCategories(c echo.Context) error {
	categories, err := s.store.ListCategories(c.Request().Context())
	if err != nil {
		return failFrom(c, err, "categories")
	}
	return ok(c, categories)
}

type categoryPayload struct {
	Name string `json:"name"`
	Sort int    `json:"sort"`
}

func (s *Server) createCategory(c echo.Context) error {
	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", nil)
	}
	if strings.TrimSpace(payload.Name) == "" {
		return fail(c, http.StatusBadRequest, "MISSING_NAME", "Category name is required", nil)
	}
	cat := &domain.Category{Name: strings.TrimSpace(payload.Name), Sort: payload.Sort}
	id, err := s.store.CreateCategory(c.Request().Context(), cat)
	if err != nil {
		return failFrom(c, err, "category")
	}
	metrics.RecordEntityOperation("category", "create")
	s.record(c, "create", "category", id, cat.Name)
	return created(c, cat)
}

func (s *Server) deleteCategory(c echo.Context) error {
	id := c.Param("id")
	if err := s.store.DeleteCategory(c.Request().Context(), id); err != nil {
		return failFrom(c, err, "category")
	}
	metrics.RecordEntityOperation("category", "delete")
	s.record(c, "delete", "category", id, "")
	return ok(c, map[string]string{"id": id})
}

func (s *Server) listHolidays(c echo.Context) error {
	holidays, err := s.store.ListHolidays(c.Request().Context())
	if err != nil {
		return failFrom(c, err, "holidays")
	}
	return ok(c, holidays)
}

type holidayPayload struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

func (s *Server) createHoliday(c echo.Context) error {
	var payload holidayPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse holiday", nil)
	}
	if strings.TrimSpace(payload.Name) == "" {
		return fail(c, http.StatusBadRequest, "MISSING_NAME", "Holiday name is required", nil)
	}
	day, err := dateparse.ParseIn(payload.Date, time.Local)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_DATE", "Unrecognized holiday date", err.Error())
	}
	h := &domain.Holiday{Name: strings.TrimSpace(payload.Name), Date: day}
	id, err := s.store.CreateHoliday(c.Request().Context(), h)
	if err != nil {
		return failFrom(c, err, "holiday")
	}
	metrics.RecordEntityOperation("holiday", "create")
	s.record(c, "create", "holiday", id, h.Name)
	return created(c, h)
}

func (s *Server) deleteHoliday(c echo.Context) error {
	id := c.Param("id")
	if err := s.store.DeleteHoliday(c.Request().Context(), id); err != nil {
		return failFrom(c, err, "holiday")
	}
	metrics.RecordEntityOperation("holiday", "delete")
	s.record(c, "delete", "holiday", id, "")
	return ok(c, map[string]string{"id": id})
}
