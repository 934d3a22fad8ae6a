package adminapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bistrostack/gastropanel/internal/domain"
	"github.com/bistrostack/gastropanel/internal/notify"
	"github.com/bistrostack/gastropanel/internal/webserver"
	"github.com/bistrostack/gastropanel/pkg/metrics"
)

// OrderStore covers submitted orders.
type OrderStore interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	CreateOrder(ctx context.Context, o *domain.Order) (string, error)
	DeleteAllOrders(ctx context.Context) (int64, error)
}

func (s *Server) registerOrderRoutes(web *webserver.WebServer) {
	web.ApiGET("/orders", s.listOrders)
	web.ApiGET("/orders/:id", s.getOrder)
	web.ApiPOST("/orders", s.createOrder)
	web.ApiDELETE("/orders/all", s.deleteAllOrders)
}

func (s *Server) listOrders(c echo.Context) error {
	orders, err := s.store.ListOrders(c.Request().Context())
	if err != nil {
		return failFrom(c, err, "orders")
	}
	return ok(c, orders)
}

func (s *Server) getOrder(c echo.Context) error {
	o, err := s.store.GetOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failFrom(c, err, "order")
	}
	return ok(c, o)
}

type orderPayload struct {
	OrderedBy  string             `json:"orderedBy"`
	TotalPrice *float64           `json:"totalPrice"`
	Items      []domain.OrderItem `json:"items"`
}

func (s *Server) createOrder(c echo.Context) error {
	var payload orderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order", nil)
	}
	if len(payload.Items) == 0 {
		return fail(c, http.StatusBadRequest, "EMPTY_ORDER", "Order must contain at least one item", nil)
	}
	if payload.TotalPrice == nil || *payload.TotalPrice <= 0 {
		return fail(c, http.StatusBadRequest, "MISSING_TOTAL", "Order total price is required and must be positive", nil)
	}
	for i, item := range payload.Items {
		if item.Quantity < 1 {
			return fail(c, http.StatusBadRequest, "INVALID_QUANTITY",
				fmt.Sprintf("Item %d quantity must be at least 1", i+1), nil)
		}
		if strings.TrimSpace(item.Name) == "" {
			return fail(c, http.StatusBadRequest, "MISSING_ITEM_NAME",
				fmt.Sprintf("Item %d name is required", i+1), nil)
		}
	}

	orderedBy := strings.TrimSpace(payload.OrderedBy)
	if orderedBy == "" {
		if login := webserver.CurrentLogin(c); login != "" {
			orderedBy = login
		} else {
			orderedBy = domain.OrderedBySystem
		}
	}

	o := &domain.Order{
		OrderedBy:  orderedBy,
		Status:     domain.OrderStatusNew,
		TotalPrice: *payload.TotalPrice,
		Items:      payload.Items,
	}
	id, err := s.store.CreateOrder(c.Request().Context(), o)
	if err != nil {
		return failFrom(c, err, "order")
	}
	metrics.RecordEntityOperation("order", "create")
	s.record(c, "create", "order", id, fmt.Sprintf("%d items, total %.2f", len(o.Items), o.TotalPrice))
	s.emit(c.Request().Context(), notify.KeyOrderCreated, o)
	return created(c, o)
}

func (s *Server) deleteAllOrders(c echo.Context) error {
	n, err := s.store.DeleteAllOrders(c.Request().Context())
	if err != nil {
		return failFrom(c, err, "orders")
	}
	metrics.RecordEntityOperation("order", "delete_all")
	s.record(c, "delete_all", "order", "", fmt.Sprintf("%d deleted", n))
	return ok(c, map[string]int64{"deleted": n})
}
