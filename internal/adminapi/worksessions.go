package adminapi

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/labstack/echo/v4"
	"github.com/montanaflynn/stats"

	"github.com/bistrostack/gastropanel/internal/domain"
	"github.com/bistrostack/gastropanel/internal/webserver"
	"github.com/bistrostack/gastropanel/pkg/metrics"
)

// WorkStore covers the staff time clock.
type WorkStore interface {
	StartWork(ctx context.Context, employeeID, login string) (*domain.WorkSession, error)
	StopWork(ctx context.Context, employeeID string) (*domain.WorkSession, error)
	ListWorkSessions(ctx context.Context, employeeID string) ([]domain.WorkSession, error)
	AllWorkSessions(ctx context.Context) ([]domain.WorkSession, error)
	ResetWorkSessions(ctx context.Context, employeeID string) (int64, error)
}

func (s *Server) registerWorkRoutes(web *webserver.WebServer) {
	web.ApiPOST("/work/start", s.startWork)
	web.ApiPOST("/work/stop", s.stopWork)
	web.ApiGET("/work/user/:id", s.listWorkSessions)
	web.ApiGET("/work/user/:id/summary", s.workSummary)
	web.ApiDELETE("/work/user/:id", s.resetWorkSessions)
	web.ApiGET("/work/export", s.exportTimesheet)
}

type workPayload struct {
	EmployeeID string `json:"employeeId"`
}

func (s *Server) startWork(c echo.Context) error {
	var payload workPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", nil)
	}
	if strings.TrimSpace(payload.EmployeeID) == "" {
		return fail(c, http.StatusBadRequest, "MISSING_EMPLOYEE", "employeeId is required", nil)
	}
	emp, err := s.store.GetEmployee(c.Request().Context(), payload.EmployeeID)
	if err != nil {
		return failFrom(c, err, "employee")
	}
	ws, err := s.store.StartWork(c.Request().Context(), payload.EmployeeID, emp.Login)
	if err != nil {
		return failFrom(c, err, "work session")
	}
	metrics.RecordEntityOperation("work_session", "start")
	s.record(c, "clock_in", "work_session", ws.ID.Hex(), emp.Login)
	return created(c, ws)
}

func (s *Server) stopWork(c echo.Context) error {
	var payload workPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", nil)
	}
	if strings.TrimSpace(payload.EmployeeID) == "" {
		return fail(c, http.StatusBadRequest, "MISSING_EMPLOYEE", "employeeId is required", nil)
	}
	ws, err := s.store.StopWork(c.Request().Context(), payload.EmployeeID)
	if err != nil {
		return failFrom(c, err, "work session")
	}
	metrics.RecordEntityOperation("work_session", "stop")
	s.record(c, "clock_out", "work_session", ws.ID.Hex(), fmt.Sprintf("%.2fh", ws.TotalHours))
	return ok(c, ws)
}

func (s *Server) listWorkSessions(c echo.Context) error {
	sessions, err := s.store.ListWorkSessions(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failFrom(c, err, "work sessions")
	}
	return ok(c, sessions)
}

type workSummary struct {
	Sessions    int     `json:"sessions"`
	OpenSession bool    `json:"openSession"`
	TotalHours  float64 `json:"totalHours"`
	MeanHours   float64 `json:"meanHours"`
	MedianHours float64 `json:"medianHours"`
}

func (s *Server) workSummary(c echo.Context) error {
	sessions, err := s.store.ListWorkSessions(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failFrom(c, err, "work sessions")
	}
	out := workSummary{Sessions: len(sessions)}
	var hours []float64
	for _, ws := range sessions {
		if ws.EndedAt == nil {
			out.OpenSession = true
			continue
		}
		hours = append(hours, ws.TotalHours)
		out.TotalHours += ws.TotalHours
	}
	if len(hours) > 0 {
		if m, err := stats.Mean(hours); err == nil {
			out.MeanHours = m
		}
		if m, err := stats.Median(hours); err == nil {
			out.MedianHours = m
		}
	}
	return ok(c, out)
}

func (s *Server) resetWorkSessions(c echo.Context) error {
	id := c.Param("id")
	removed, err := s.store.ResetWorkSessions(c.Request().Context(), id)
	if err != nil {
		return failFrom(c, err, "work sessions")
	}
	metrics.RecordEntityOperation("work_session", "reset")
	s.record(c, "reset", "work_session", id, fmt.Sprintf("%d removed", removed))
	return ok(c, map[string]int64{"removed": removed})
}

func (s *Server) exportTimesheet(c echo.Context) error {
	sessions, err := s.store.AllWorkSessions(c.Request().Context())
	if err != nil {
		return failFrom(c, err, "work sessions")
	}
	const sheet = "Sheet1"
	f := excelize.NewFile()
	headers := []string{"Login", "Employee ID", "Started", "Ended", "Hours"}
	for i, h := range headers {
		f.SetCellValue(sheet, fmt.Sprintf("%c1", 'A'+i), h)
	}
	for i, ws := range sessions {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), ws.Login)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), ws.EmployeeID.Hex())
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), ws.StartedAt.Format(time.RFC3339))
		if ws.EndedAt != nil {
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), ws.EndedAt.Format(time.RFC3339))
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), ws.TotalHours)
		} else {
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), "open")
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_FAILED", "Unable to build workbook", err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="timesheet.xlsx"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
