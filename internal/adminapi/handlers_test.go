package adminapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bistrostack/gastropanel/config"
	"github.com/bistrostack/gastropanel/internal/domain"
	"github.com/bistrostack/gastropanel/internal/repository"
	"github.com/bistrostack/gastropanel/internal/webserver"
	"github.com/bistrostack/gastropanel/pkg/common"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T, store Store) *echo.Echo {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Web.Secret = testSecret
	web := webserver.New(cfg)
	srv := NewServer(cfg, store, nil, nil)
	srv.Register(web)
	return web.Echo()
}

func authToken(t *testing.T) string {
	t.Helper()
	token, err := webserver.IssueToken(testSecret, "admin", domain.LevelAdmin, time.Hour)
	require.NoError(t, err)
	return token
}

func doJSON(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var out apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestLoginSuccess(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secretpw"), bcrypt.DefaultCost)
	require.NoError(t, err)
	store := &mockStore{
		getEmployeeByLogin: func(ctx context.Context, login string) (*domain.Employee, error) {
			if login != "anna" {
				return nil, repository.ErrNotFound
			}
			return &domain.Employee{Name: "Anna", Login: "anna", Password: string(hash), Level: domain.LevelStaff}, nil
		},
	}
	e := newTestServer(t, store)

	rec := doJSON(e, http.MethodPost, "/api/login", "", `{"login":"anna","password":"secretpw"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Data struct {
			Token    string           `json:"token"`
			Employee *domain.Employee `json:"employee"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.NotEmpty(t, out.Data.Token)
	assert.Equal(t, "anna", out.Data.Employee.Login)
	assert.Contains(t, store.activeLogins, "anna")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secretpw"), bcrypt.DefaultCost)
	store := &mockStore{
		getEmployeeByLogin: func(ctx context.Context, login string) (*domain.Employee, error) {
			if login == "anna" {
				return &domain.Employee{Login: "anna", Password: string(hash)}, nil
			}
			return nil, repository.ErrNotFound
		},
	}
	e := newTestServer(t, store)

	rec := doJSON(e, http.MethodPost, "/api/login", "", `{"login":"anna","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/login", "", `{"login":"ghost","password":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/login", "", `{"password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "MISSING_LOGIN", decodeEnvelope(t, rec).Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := newTestServer(t, &mockStore{})

	rec := doJSON(e, http.MethodGet, "/api/employees", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/employees", authToken(t), "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateEmployeeDuplicateLogin(t *testing.T) {
	store := &mockStore{
		createEmployee: func(ctx context.Context, emp *domain.Employee) (string, error) {
			return "", repository.ErrDuplicate
		},
	}
	e := newTestServer(t, store)

	rec := doJSON(e, http.MethodPost, "/api/employees", authToken(t),
		`{"name":"Jan","login":"jan","password":"pw","hourlyRate":25}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "DUPLICATE", decodeEnvelope(t, rec).Code)
}

func TestCreateEmployeeValidation(t *testing.T) {
	var created bool
	store := &mockStore{
		createEmployee: func(ctx context.Context, emp *domain.Employee) (string, error) {
			created = true
			return "1", nil
		},
	}
	e := newTestServer(t, store)

	rec := doJSON(e, http.MethodPost, "/api/employees", authToken(t), `{"login":"jan","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "MISSING_NAME", decodeEnvelope(t, rec).Code)

	rec = doJSON(e, http.MethodPost, "/api/employees", authToken(t),
		`{"name":"Jan","login":"jan","password":"pw","hourlyRate":-2}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, created)
}

func TestCreateEmployeeFieldRules(t *testing.T) {
	var created bool
	store := &mockStore{
		createEmployee: func(ctx context.Context, emp *domain.Employee) (string, error) {
			created = true
			return "1", nil
		},
	}
	e := newTestServer(t, store)
	token := authToken(t)

	rec := doJSON(e, http.MethodPost, "/api/employees", token,
		`{"name":"Jan","login":"jan","password":"pw","level":"boss"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeEnvelope(t, rec).Code)

	rec = doJSON(e, http.MethodPost, "/api/employees", token,
		`{"name":"Jan","login":"ab","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeEnvelope(t, rec).Code)

	rec = doJSON(e, http.MethodPost, "/api/employees", token,
		`{"name":"Jan","login":"jan","password":"`+strings.Repeat("x", 80)+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeEnvelope(t, rec).Code)

	assert.False(t, created)
}

func TestCreateEmployeeHashesPassword(t *testing.T) {
	var stored *domain.Employee
	store := &mockStore{
		createEmployee: func(ctx context.Context, emp *domain.Employee) (string, error) {
			stored = emp
			return "1", nil
		},
	}
	e := newTestServer(t, store)

	rec := doJSON(e, http.MethodPost, "/api/employees", authToken(t),
		`{"name":"Jan","login":"jan","password":"plainpw"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, stored)
	assert.NotEqual(t, "plainpw", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("plainpw")))
	assert.Equal(t, domain.LevelStaff, stored.Level)
}

func TestCreateOrderValidation(t *testing.T) {
	var created bool
	store := &mockStore{
		createOrder: func(ctx context.Context, o *domain.Order) (string, error) {
			created = true
			return "1", nil
		},
	}
	e := newTestServer(t, store)
	token := authToken(t)

	rec := doJSON(e, http.MethodPost, "/api/orders", token, `{"totalPrice":10,"items":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "EMPTY_ORDER", decodeEnvelope(t, rec).Code)

	rec = doJSON(e, http.MethodPost, "/api/orders", token,
		`{"items":[{"name":"Tomatoes","quantity":2,"unit":"kg","priceAtOrder":6.5}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "MISSING_TOTAL", decodeEnvelope(t, rec).Code)

	assert.False(t, created)
}

func TestCreateOrderDefaultsOrderedBy(t *testing.T) {
	var stored *domain.Order
	store := &mockStore{
		createOrder: func(ctx context.Context, o *domain.Order) (string, error) {
			stored = o
			return "1", nil
		},
	}
	e := newTestServer(t, store)

	rec := doJSON(e, http.MethodPost, "/api/orders", authToken(t),
		`{"totalPrice":13,"items":[{"name":"Tomatoes","quantity":2,"unit":"kg","priceAtOrder":6.5}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, stored)
	assert.Equal(t, "admin", stored.OrderedBy)
	assert.Equal(t, domain.OrderStatusNew, stored.Status)
}

func TestCreateReservationPublic(t *testing.T) {
	var stored *domain.Reservation
	store := &mockStore{
		createReservation: func(ctx context.Context, r *domain.Reservation) (string, error) {
			stored = r
			return "1", nil
		},
	}
	e := newTestServer(t, store)

	// No token: the booking form is public.
	rec := doJSON(e, http.MethodPost, "/api/reservations", "",
		`{"customerName":"Kasia","phone":"555123456","date":"2026-10-01","time":"19:30","guests":4,"table":"T5"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, stored)
	assert.Equal(t, domain.ReservationPending, stored.Status)
	assert.Equal(t, 19, stored.DateTime.Hour())
}

func TestCreateReservationRejectsIncomplete(t *testing.T) {
	e := newTestServer(t, &mockStore{})

	rec := doJSON(e, http.MethodPost, "/api/reservations", "",
		`{"customerName":"Kasia","phone":"555123456","date":"2026-10-01","time":"19:30","guests":0,"table":"T5"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_GUESTS", decodeEnvelope(t, rec).Code)

	rec = doJSON(e, http.MethodPost, "/api/reservations", "",
		`{"customerName":"Kasia","phone":"555123456","date":"2026-10-01","time":"19:30","guests":2}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "MISSING_TABLE", decodeEnvelope(t, rec).Code)

	rec = doJSON(e, http.MethodPost, "/api/reservations", "",
		`{"customerName":"Kasia","phone":"123","date":"2026-10-01","time":"19:30","guests":2,"table":"T5"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeEnvelope(t, rec).Code)
}

func TestUpdateReservationStatus(t *testing.T) {
	store := &mockStore{
		updateReservationStatus: func(ctx context.Context, id, status string) (*domain.Reservation, error) {
			return &domain.Reservation{Status: status}, nil
		},
	}
	e := newTestServer(t, store)
	token := authToken(t)

	rec := doJSON(e, http.MethodPut, "/api/reservations/abc/status", token, `{"status":"teleported"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_STATUS", decodeEnvelope(t, rec).Code)

	rec = doJSON(e, http.MethodPut, "/api/reservations/abc/status", token, `{"status":"confirmed"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPublicMenuListing(t *testing.T) {
	store := &mockStore{
		listMenuItems: func(ctx context.Context) ([]domain.MenuItem, error) {
			return []domain.MenuItem{{Name: "Tomato soup", Price: 14, Available: true}}, nil
		},
	}
	e := newTestServer(t, store)

	rec := doJSON(e, http.MethodGet, "/api/menu", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tomato soup")
}

func TestCreateMenuItemValidation(t *testing.T) {
	e := newTestServer(t, &mockStore{})
	token := authToken(t)

	rec := doJSON(e, http.MethodPost, "/api/menu", token, `{"category":"Mains","price":10}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/menu", token, `{"name":"Soup","category":"Starters","price":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_PRICE", decodeEnvelope(t, rec).Code)
}

func TestCreateProductRequiresImage(t *testing.T) {
	e := newTestServer(t, &mockStore{})

	rec := doJSON(e, http.MethodPost, "/api/products", authToken(t),
		`{"name":"Tomatoes","category":"Vegetables","unit":"kg","pricePerUnit":6.5,"supplier":"GreenFarm"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "MISSING_IMAGE", decodeEnvelope(t, rec).Code)
}

func TestCreateProductRejectsUnknownUnit(t *testing.T) {
	e := newTestServer(t, &mockStore{})

	rec := doJSON(e, http.MethodPost, "/api/products", authToken(t),
		`{"name":"Tomatoes","category":"Vegetables","unit":"barrel","pricePerUnit":6.5,"supplier":"GreenFarm","image":"data:image/png;base64,AAAA"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_UNIT", decodeEnvelope(t, rec).Code)
}

func TestProductImageDownload(t *testing.T) {
	raw := []byte{0xff, 0xd8, 0xff, 0xe0}
	store := &mockStore{
		getProduct: func(ctx context.Context, id string) (*domain.Product, error) {
			return &domain.Product{Name: "Tomatoes", Image: common.EncodeDataURI("image/jpeg", raw)}, nil
		},
	}
	e := newTestServer(t, store)

	rec := doJSON(e, http.MethodGet, "/api/products/abc/image", authToken(t), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, raw, rec.Body.Bytes())
}

func TestStartWorkConflict(t *testing.T) {
	store := &mockStore{
		getEmployee: func(ctx context.Context, id string) (*domain.Employee, error) {
			return &domain.Employee{Login: "anna"}, nil
		},
		startWork: func(ctx context.Context, employeeID, login string) (*domain.WorkSession, error) {
			return nil, repository.ErrSessionOpen
		},
	}
	e := newTestServer(t, store)

	rec := doJSON(e, http.MethodPost, "/api/work/start", authToken(t),
		`{"employeeId":"6502f3b1a3e45c0001000001"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "SESSION_OPEN", decodeEnvelope(t, rec).Code)
}

func TestStopWorkWithoutOpenSession(t *testing.T) {
	e := newTestServer(t, &mockStore{})

	rec := doJSON(e, http.MethodPost, "/api/work/stop", authToken(t),
		`{"employeeId":"6502f3b1a3e45c0001000001"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NO_OPEN_SESSION", decodeEnvelope(t, rec).Code)
}

func TestSeedAdminsCreatesAndRepairs(t *testing.T) {
	existing := map[string]*domain.Employee{}
	store := &mockStore{
		getEmployeeByLogin: func(ctx context.Context, login string) (*domain.Employee, error) {
			if e, found := existing[login]; found {
				return e, nil
			}
			return nil, repository.ErrNotFound
		},
		createEmployee: func(ctx context.Context, emp *domain.Employee) (string, error) {
			existing[emp.Login] = emp
			return emp.Login, nil
		},
	}

	seeded, err := SeedAdmins(context.Background(), store)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"admin", "manager"}, seeded)
	assert.Equal(t, domain.LevelAdmin, existing["admin"].Level)

	// Second run is a no-op.
	seeded, err = SeedAdmins(context.Background(), store)
	require.NoError(t, err)
	assert.Empty(t, seeded)
}

func TestDeleteAllOrders(t *testing.T) {
	store := &mockStore{
		deleteAllOrders: func(ctx context.Context) (int64, error) { return 7, nil },
	}
	e := newTestServer(t, store)

	rec := doJSON(e, http.MethodDelete, "/api/orders/all", authToken(t), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "7")
}
