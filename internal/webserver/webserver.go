package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/bistrostack/gastropanel/assets"
	"github.com/bistrostack/gastropanel/config"
	"github.com/bistrostack/gastropanel/pkg/metrics"
)

// WebServer wraps the echo instance and the two API route groups: pub is
// reachable without a token, api requires a valid session token.
type WebServer struct {
	cfg  *config.AppConfig
	root *echo.Echo
	pub  *echo.Group
	api  *echo.Group
}

func New(cfg *config.AppConfig) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = NewJSONSerializer()
	e.Validator = NewValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(metrics.Middleware)

	s := &WebServer{cfg: cfg, root: e}
	s.pub = e.Group("/api")
	s.api = e.Group("/api", echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(cfg.Web.Secret),
		NewClaimsFunc: NewSessionClaims,
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	registerStatic(e)
	return s
}

func registerStatic(e *echo.Echo) {
	page := func(name string) echo.HandlerFunc {
		return func(c echo.Context) error {
			b, err := assets.Page(name)
			if err != nil {
				return echo.NewHTTPError(http.StatusNotFound, "page not found")
			}
			return c.HTMLBlob(http.StatusOK, b)
		}
	}
	e.GET("/", page("index.html"))
	e.GET("/system", page("system.html"))
	e.GET("/menu", page("menu.html"))
}

// Public routes: login, public menu, booking form, seeding.
func (s *WebServer) PubGET(path string, h echo.HandlerFunc)  { s.pub.GET(path, h) }
func (s *WebServer) PubPOST(path string, h echo.HandlerFunc) { s.pub.POST(path, h) }

// Token-protected management routes.
func (s *WebServer) ApiGET(path string, h echo.HandlerFunc)    { s.api.GET(path, h) }
func (s *WebServer) ApiPOST(path string, h echo.HandlerFunc)   { s.api.POST(path, h) }
func (s *WebServer) ApiPUT(path string, h echo.HandlerFunc)    { s.api.PUT(path, h) }
func (s *WebServer) ApiDELETE(path string, h echo.HandlerFunc) { s.api.DELETE(path, h) }

// Echo exposes the underlying instance for tests.
func (s *WebServer) Echo() *echo.Echo { return s.root }

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *WebServer) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Web.Host, s.cfg.Web.Port)
	errCh := make(chan error, 1)
	go func() { errCh <- s.root.Start(addr) }()
	zap.L().Info("web server listening", zap.String("addr", addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.root.Shutdown(shutdownCtx); err != nil {
			zap.L().Warn("web server shutdown", zap.Error(err))
		}
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
