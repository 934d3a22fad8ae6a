package adminapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bistrostack/gastropanel/internal/domain"
	"github.com/bistrostack/gastropanel/internal/webserver"
	"github.com/bistrostack/gastropanel/pkg/metrics"
)

// MenuStore covers the guest-facing menu.
type MenuStore interface {
	ListMenuItems(ctx context.Context) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, m *domain.MenuItem) (string, error)
	UpdateMenuItem(ctx context.Context, id string, patch map[string]interface{}) (*domain.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id string) error
}

func (s *Server) registerMenuRoutes(web *webserver.WebServer) {
	// Guests read the menu without a token.
	web.PubGET("/menu", s.listMenu)
	web.PubGET("/menu/:id", s.getMenuItem)
	web.ApiPOST("/menu", s.createMenuItem)
	web.ApiPUT("/menu/:id", s.updateMenuItem)
	web.ApiDELETE("/menu/:id", s.deleteMenuItem)
}

func (s *Server) listMenu(c echo.Context) error {
	items, err := s.store.ListMenuItems(c.Request().Context())
	if err != nil {
		return failFrom(c, err, "menu")
	}
	return ok(c, items)
}

func (s *Server) getMenuItem(c echo.Context) error {
	item, err := s.store.GetMenuItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failFrom(c, err, "menu item")
	}
	return ok(c, item)
}

type menuItemPayload struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Available   *bool    `json:"available"`
}

func (s *Server) createMenuItem(c echo.Context) error {
	var payload menuItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse menu item", nil)
	}
	switch {
	case strings.TrimSpace(payload.Name) == "":
		return fail(c, http.StatusBadRequest, "MISSING_NAME", "Menu item name is required", nil)
	case strings.TrimSpace(payload.Category) == "":
		return fail(c, http.StatusBadRequest, "MISSING_CATEGORY", "Menu item category is required", nil)
	case payload.Price == nil || *payload.Price < 0:
		return fail(c, http.StatusBadRequest, "INVALID_PRICE", "Price must be zero or positive", nil)
	}

	item := &domain.MenuItem{
		Name:        strings.TrimSpace(payload.Name),
		Category:    payload.Category,
		Price:       *payload.Price,
		Description: payload.Description,
		Image:       payload.Image,
		Available:   true,
	}
	if payload.Available != nil {
		item.Available = *payload.Available
	}
	id, err := s.store.CreateMenuItem(c.Request().Context(), item)
	if err != nil {
		return failFrom(c, err, "menu item")
	}
	metrics.RecordEntityOperation("menu_item", "create")
	s.record(c, "create", "menu_item", id, item.Name)
	return created(c, item)
}

func (s *Server) updateMenuItem(c echo.Context) error {
	var payload menuItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse menu item", nil)
	}
	patch := map[string]interface{}{}
	if strings.TrimSpace(payload.Name) != "" {
		patch["name"] = strings.TrimSpace(payload.Name)
	}
	if payload.Category != "" {
		patch["category"] = payload.Category
	}
	if payload.Price != nil {
		if *payload.Price < 0 {
			return fail(c, http.StatusBadRequest, "INVALID_PRICE", "Price must be zero or positive", nil)
		}
		patch["price"] = *payload.Price
	}
	if payload.Description != "" {
		patch["description"] = payload.Description
	}
	if payload.Image != "" {
		patch["image"] = payload.Image
	}
	if payload.Available != nil {
		patch["available"] = *payload.Available
	}
	if len(patch) == 0 {
		return fail(c, http.StatusBadRequest, "EMPTY_PATCH", "Nothing to update", nil)
	}
	item, err := s.store.UpdateMenuItem(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return failFrom(c, err, "menu item")
	}
	metrics.RecordEntityOperation("menu_item", "update")
	s.record(c, "update", "menu_item", c.Param("id"), "")
	return ok(c, item)
}

func (s *Server) deleteMenuItem(c echo.Context) error {
	id := c.Param("id")
	if err := s.store.DeleteMenuItem(c.Request().Context(), id); err != nil {
		return failFrom(c, err, "menu item")
	}
	metrics.RecordEntityOperation("menu_item", "delete")
	s.record(c, "delete", "menu_item", id, "")
	return ok(c, map[string]string{"id": id})
}
