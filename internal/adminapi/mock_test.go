package adminapi

import (
	"context"
	"time"

	"github.com/bistrostack/gastropanel/internal/domain"
	"github.com/bistrostack/gastropanel/internal/repository"
)

// mockStore satisfies Store with overridable behavior per method. Methods
// without an override return empty results; getters return ErrNotFound.
type mockStore struct {
	listEmployees      func(ctx context.Context) ([]domain.Employee, error)
	getEmployee        func(ctx context.Context, id string) (*domain.Employee, error)
	getEmployeeByLogin func(ctx context.Context, login string) (*domain.Employee, error)
	createEmployee     func(ctx context.Context, e *domain.Employee) (string, error)
	updateEmployee     func(ctx context.Context, id string, patch map[string]interface{}) (*domain.Employee, error)

	getProduct func(ctx context.Context, id string) (*domain.Product, error)

	createOrder     func(ctx context.Context, o *domain.Order) (string, error)
	deleteAllOrders func(ctx context.Context) (int64, error)

	createReservation       func(ctx context.Context, r *domain.Reservation) (string, error)
	listReservations        func(ctx context.Context, day *time.Time) ([]domain.Reservation, error)
	updateReservationStatus func(ctx context.Context, id, status string) (*domain.Reservation, error)

	listMenuItems  func(ctx context.Context) ([]domain.MenuItem, error)
	createMenuItem func(ctx context.Context, m *domain.MenuItem) (string, error)

	startWork func(ctx context.Context, employeeID, login string) (*domain.WorkSession, error)
	stopWork  func(ctx context.Context, employeeID string) (*domain.WorkSession, error)

	activeLogins []string
}

var _ Store = (*mockStore)(nil)

func (m *mockStore) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	if m.listEmployees != nil {
		return m.listEmployees(ctx)
	}
	return nil, nil
}

func (m *mockStore) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	if m.getEmployee != nil {
		return m.getEmployee(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockStore) GetEmployeeByLogin(ctx context.Context, login string) (*domain.Employee, error) {
	if m.getEmployeeByLogin != nil {
		return m.getEmployeeByLogin(ctx, login)
	}
	return nil, repository.ErrNotFound
}

func (m *mockStore) CreateEmployee(ctx context.Context, e *domain.Employee) (string, error) {
	if m.createEmployee != nil {
		return m.createEmployee(ctx, e)
	}
	return "", nil
}

func (m *mockStore) UpdateEmployee(ctx context.Context, id string, patch map[string]interface{}) (*domain.Employee, error) {
	if m.updateEmployee != nil {
		return m.updateEmployee(ctx, id, patch)
	}
	return nil, repository.ErrNotFound
}

func (m *mockStore) TouchLastLogin(ctx context.Context, login string, at time.Time) error {
	return nil
}

func (m *mockStore) AddActiveLogin(ctx context.Context, login string) error {
	m.activeLogins = append(m.activeLogins, login)
	return nil
}

func (m *mockStore) RemoveActiveLogin(ctx context.Context, login string) error { return nil }

func (m *mockStore) ActiveLogins(ctx context.Context) ([]string, error) {
	return m.activeLogins, nil
}

func (m *mockStore) ListProducts(ctx context.Context) ([]domain.Product, error) { return nil, nil }

func (m *mockStore) ProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return nil, nil
}

func (m *mockStore) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if m.getProduct != nil {
		return m.getProduct(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockStore) CreateProduct(ctx context.Context, p *domain.Product) (string, error) {
	return "", nil
}

func (m *mockStore) UpdateProduct(ctx context.Context, id string, patch map[string]interface{}) (*domain.Product, error) {
	return nil, repository.ErrNotFound
}

func (m *mockStore) DeleteProduct(ctx context.Context, id string) error { return nil }

func (m *mockStore) ListOrders(ctx context.Context) ([]domain.Order, error) { return nil, nil }

func (m *mockStore) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return nil, repository.ErrNotFound
}

func (m *mockStore) CreateOrder(ctx context.Context, o *domain.Order) (string, error) {
	if m.createOrder != nil {
		return m.createOrder(ctx, o)
	}
	return "", nil
}

func (m *mockStore) DeleteAllOrders(ctx context.Context) (int64, error) {
	if m.deleteAllOrders != nil {
		return m.deleteAllOrders(ctx)
	}
	return 0, nil
}

func (m *mockStore) CreateReservation(ctx context.Context, r *domain.Reservation) (string, error) {
	if m.createReservation != nil {
		return m.createReservation(ctx, r)
	}
	return "", nil
}

func (m *mockStore) ListReservations(ctx context.Context, day *time.Time) ([]domain.Reservation, error) {
	if m.listReservations != nil {
		return m.listReservations(ctx, day)
	}
	return nil, nil
}

func (m *mockStore) UpdateReservationStatus(ctx context.Context, id, status string) (*domain.Reservation, error) {
	if m.updateReservationStatus != nil {
		return m.updateReservationStatus(ctx, id, status)
	}
	return nil, repository.ErrNotFound
}

func (m *mockStore) DeleteReservation(ctx context.Context, id string) error { return nil }

func (m *mockStore) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	if m.listMenuItems != nil {
		return m.listMenuItems(ctx)
	}
	return nil, nil
}

func (m *mockStore) GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	return nil, repository.ErrNotFound
}

func (m *mockStore) CreateMenuItem(ctx context.Context, mi *domain.MenuItem) (string, error) {
	if m.createMenuItem != nil {
		return m.createMenuItem(ctx, mi)
	}
	return "", nil
}

func (m *mockStore) UpdateMenuItem(ctx context.Context, id string, patch map[string]interface{}) (*domain.MenuItem, error) {
	return nil, repository.ErrNotFound
}

func (m *mockStore) DeleteMenuItem(ctx context.Context, id string) error { return nil }

func (m *mockStore) StartWork(ctx context.Context, employeeID, login string) (*domain.WorkSession, error) {
	if m.startWork != nil {
		return m.startWork(ctx, employeeID, login)
	}
	return &domain.WorkSession{Login: login, StartedAt: time.Now()}, nil
}

func (m *mockStore) StopWork(ctx context.Context, employeeID string) (*domain.WorkSession, error) {
	if m.stopWork != nil {
		return m.stopWork(ctx, employeeID)
	}
	return nil, repository.ErrNoOpenWork
}

func (m *mockStore) ListWorkSessions(ctx context.Context, employeeID string) ([]domain.WorkSession, error) {
	return nil, nil
}

func (m *mockStore) AllWorkSessions(ctx context.Context) ([]domain.WorkSession, error) {
	return nil, nil
}

func (m *mockStore) ResetWorkSessions(ctx context.Context, employeeID string) (int64, error) {
	return 0, nil
}

func (m *mockStore) ListCategories(ctx context.Context) ([]domain.Category, error) { return nil, nil }

func (m *mockStore) CreateCategory(ctx context.Context, c *domain.Category) (string, error) {
	return "", nil
}

func (m *mockStore) DeleteCategory(ctx context.Context, id string) error { return nil }

func (m *mockStore) ListHolidays(ctx context.Context) ([]domain.Holiday, error) { return nil, nil }

func (m *mockStore) CreateHoliday(ctx context.Context, h *domain.Holiday) (string, error) {
	return "", nil
}

func (m *mockStore) DeleteHoliday(ctx context.Context, id string) error { return nil }

func (m *mockStore) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	return &domain.Snapshot{}, nil
}

func (m *mockStore) ListLogs(ctx context.Context, limit int64) ([]domain.AuditLog, error) {
	return nil, nil
}
