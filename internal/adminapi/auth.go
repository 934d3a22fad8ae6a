package adminapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bistrostack/gastropanel/internal/domain"
	"github.com/bistrostack/gastropanel/internal/repository"
	"github.com/bistrostack/gastropanel/internal/webserver"
	"github.com/bistrostack/gastropanel/pkg/metrics"
)

// SessionStore covers the persisted active-sessions set.
type SessionStore interface {
	AddActiveLogin(ctx context.Context, login string) error
	RemoveActiveLogin(ctx context.Context, login string) error
	ActiveLogins(ctx context.Context) ([]string, error)
}

func (s *Server) registerAuthRoutes(web *webserver.WebServer) {
	web.PubPOST("/login", s.login)
	web.PubGET("/setup-admins", s.setupAdmins)
	web.ApiPOST("/logout", s.logout)
	web.ApiGET("/sessions/active", s.activeSessions)
}

type loginPayload struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResult struct {
	Employee *domain.Employee `json:"employee"`
	Token    string           `json:"token"`
}

func (s *Server) login(c echo.Context) error {
	if metrics.LoginAttempts != nil {
		metrics.LoginAttempts.Inc()
	}

	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login request", nil)
	}
	payload.Login = strings.TrimSpace(payload.Login)
	if payload.Login == "" {
		return fail(c, http.StatusBadRequest, "MISSING_LOGIN", "Login is required", nil)
	}

	ctx := c.Request().Context()
	emp, err := s.store.GetEmployeeByLogin(ctx, payload.Login)
	if err != nil {
		if metrics.LoginFailures != nil {
			metrics.LoginFailures.Inc()
		}
		if err == repository.ErrNotFound {
			return fail(c, http.StatusUnauthorized, "UNKNOWN_LOGIN", "Unknown login or wrong password", nil)
		}
		return failFrom(c, err, "employee")
	}
	if bcrypt.CompareHashAndPassword([]byte(emp.Password), []byte(payload.Password)) != nil {
		if metrics.LoginFailures != nil {
			metrics.LoginFailures.Inc()
		}
		return fail(c, http.StatusUnauthorized, "UNKNOWN_LOGIN", "Unknown login or wrong password", nil)
	}

	token, err := webserver.IssueToken(s.secret, emp.Login, emp.Level, s.tokenTTL)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue session token", err.Error())
	}
	if err := s.store.AddActiveLogin(ctx, emp.Login); err != nil {
		zap.L().Warn("active session add failed", zap.String("login", emp.Login), zap.Error(err))
	}
	if err := s.store.TouchLastLogin(ctx, emp.Login, time.Now()); err != nil {
		zap.L().Warn("last login update failed", zap.String("login", emp.Login), zap.Error(err))
	}

	if s.audit != nil {
		s.audit.Record(emp.Login, "login", "session", emp.ID.Hex(), "")
	}
	return ok(c, loginResult{Employee: emp, Token: token})
}

func (s *Server) logout(c echo.Context) error {
	login := webserver.CurrentLogin(c)
	if login == "" {
		return fail(c, http.StatusBadRequest, "MISSING_LOGIN", "No session to close", nil)
	}
	if err := s.store.RemoveActiveLogin(c.Request().Context(), login); err != nil {
		return failFrom(c, err, "session")
	}
	s.record(c, "logout", "session", "", "")
	return ok(c, map[string]string{"login": login})
}

func (s *Server) activeSessions(c echo.Context) error {
	logins, err := s.store.ActiveLogins(c.Request().Context())
	if err != nil {
		return failFrom(c, err, "sessions")
	}
	return ok(c, logins)
}

// Hardcoded privileged accounts created by the seeding endpoint. Passwords
// are defaults and are meant to be rotated through the panel afterwards.
var adminSeeds = []struct {
	Name     string
	Login    string
	Password string
}{
	{Name: "Administrator", Login: "admin", Password: "gastropanel"},
	{Name: "Manager", Login: "manager", Password: "gastropanel"},
}

// setupAdmins idempotently creates or repairs the two privileged accounts.
// Safe to call repeatedly; existing accounts only get their level restored.
func (s *Server) setupAdmins(c echo.Context) error {
	seeded, err := SeedAdmins(c.Request().Context(), s.store)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "SEED_FAILED", "Failed to seed admin accounts", err.Error())
	}
	s.record(c, "seed", "employee", "", strings.Join(seeded, ","))
	return ok(c, map[string]interface{}{"seeded": seeded})
}

// SeedAdmins is also run once at startup, mirroring the endpoint.
func SeedAdmins(ctx context.Context, store EmployeeStore) ([]string, error) {
	var seeded []string
	for _, seed := range adminSeeds {
		existing, err := store.GetEmployeeByLogin(ctx, seed.Login)
		switch {
		case err == repository.ErrNotFound:
			hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
			if err != nil {
				return seeded, err
			}
			_, err = store.CreateEmployee(ctx, &domain.Employee{
				Name:      seed.Name,
				Login:     seed.Login,
				Password:  string(hash),
				Position:  "management",
				Workplace: "office",
				Level:     domain.LevelAdmin,
			})
			if err != nil && err != repository.ErrDuplicate {
				return seeded, err
			}
			if err == nil {
				seeded = append(seeded, seed.Login)
				zap.L().Info("seeded admin account", zap.String("login", seed.Login))
			}
		case err != nil:
			return seeded, err
		default:
			if existing.Level != domain.LevelAdmin {
				if _, err := store.UpdateEmployee(ctx, existing.ID.Hex(),
					map[string]interface{}{"level": domain.LevelAdmin}); err != nil {
					return seeded, err
				}
				zap.L().Warn("repaired admin account level", zap.String("login", seed.Login))
			}
		}
	}
	return seeded, nil
}
