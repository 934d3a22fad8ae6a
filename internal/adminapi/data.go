package adminapi

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/bistrostack/gastropanel/internal/domain"
	"github.com/bistrostack/gastropanel/internal/webserver"
)

// DataStore covers the aggregate panel snapshot and the activity log.
type DataStore interface {
	Snapshot(ctx context.Context) (*domain.Snapshot, error)
	ListLogs(ctx context.Context, limit int64) ([]domain.AuditLog, error)
}

func (s *Server) registerDataRoutes(web *webserver.WebServer) {
	web.ApiGET("/data", s.getSnapshot)
	web.ApiGET("/logs", s.listLogs)
}

// getSnapshot serves the management panel bootstrap: every collection in one
// round trip.
func (s *Server) getSnapshot(c echo.Context) error {
	snap, err := s.store.Snapshot(c.Request().Context())
	if err != nil {
		return failFrom(c, err, "data")
	}
	return ok(c, snap)
}

func (s *Server) listLogs(c echo.Context) error {
	limit := cast.ToInt64(c.QueryParam("limit"))
	entries, err := s.store.ListLogs(c.Request().Context(), limit)
	if err != nil {
		return failFrom(c, err, "logs")
	}
	return ok(c, entries)
}
