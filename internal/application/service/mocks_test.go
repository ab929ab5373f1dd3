package service

import (
	"context"
	"fmt"

	"github.com/tripdesk/tripdesk/internal/application/port"
	"github.com/tripdesk/tripdesk/internal/domain/entity"
)

// Mock collaborators shared by the service tests.

type mockRequestRepo struct {
	createFunc         func(ctx context.Context, r *entity.TravelRequest) error
	getByIDFunc        func(ctx context.Context, id int64) (*entity.TravelRequest, error)
	updateFunc         func(ctx context.Context, r *entity.TravelRequest) error
	updateStateFunc    func(ctx context.Context, id int64, state, refusalReason string) error
	assignRefFunc      func(ctx context.Context, id int64, reference string) error
	setMissionFunc     func(ctx context.Context, id int64, handle, filename string) error
	listFunc           func(ctx context.Context, filter port.RequestFilter) ([]*entity.TravelRequest, error)
	deactivateFunc     func(ctx context.Context, id int64) error
	assignedReferences []string
}

func (m *mockRequestRepo) Create(ctx context.Context, r *entity.TravelRequest) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, r)
	}
	r.ID = 1
	return nil
}

func (m *mockRequestRepo) GetByID(ctx context.Context, id int64) (*entity.TravelRequest, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockRequestRepo) GetByReference(ctx context.Context, reference string) (*entity.TravelRequest, error) {
	return nil, nil
}

func (m *mockRequestRepo) Update(ctx context.Context, r *entity.TravelRequest) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, r)
	}
	return nil
}

func (m *mockRequestRepo) UpdateState(ctx context.Context, id int64, state, refusalReason string) error {
	if m.updateStateFunc != nil {
		return m.updateStateFunc(ctx, id, state, refusalReason)
	}
	return nil
}

func (m *mockRequestRepo) AssignReference(ctx context.Context, id int64, reference string) error {
	m.assignedReferences = append(m.assignedReferences, reference)
	if m.assignRefFunc != nil {
		return m.assignRefFunc(ctx, id, reference)
	}
	return nil
}

func (m *mockRequestRepo) SetMissionOrder(ctx context.Context, id int64, handle, filename string) error {
	if m.setMissionFunc != nil {
		return m.setMissionFunc(ctx, id, handle, filename)
	}
	return nil
}

func (m *mockRequestRepo) List(ctx context.Context, filter port.RequestFilter) ([]*entity.TravelRequest, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return []*entity.TravelRequest{}, nil
}

func (m *mockRequestRepo) Deactivate(ctx context.Context, id int64) error {
	if m.deactivateFunc != nil {
		return m.deactivateFunc(ctx, id)
	}
	return nil
}

type mockCityRepo struct {
	getByIDFunc func(ctx context.Context, id int64) (*entity.City, error)
}

func (m *mockCityRepo) Create(ctx context.Context, city *entity.City) error { return nil }

func (m *mockCityRepo) GetByID(ctx context.Context, id int64) (*entity.City, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &entity.City{ID: id, Name: "Paris", CountryCode: "FR", Active: true}, nil
}

func (m *mockCityRepo) List(ctx context.Context, limit, offset int) ([]*entity.City, error) {
	return []*entity.City{}, nil
}

func (m *mockCityRepo) Deactivate(ctx context.Context, id int64) error { return nil }

type mockVehicleRepo struct {
	getByIDFunc func(ctx context.Context, id int64) (*entity.PoolVehicle, error)
}

func (m *mockVehicleRepo) Create(ctx context.Context, vehicle *entity.PoolVehicle) error { return nil }

func (m *mockVehicleRepo) GetByID(ctx context.Context, id int64) (*entity.PoolVehicle, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &entity.PoolVehicle{ID: id, Name: "Van 1", Active: true}, nil
}

func (m *mockVehicleRepo) List(ctx context.Context, limit, offset int) ([]*entity.PoolVehicle, error) {
	return []*entity.PoolVehicle{}, nil
}

func (m *mockVehicleRepo) Deactivate(ctx context.Context, id int64) error { return nil }

type mockHistoryRepo struct {
	createFunc func(ctx context.Context, h *entity.RequestHistory) error
	entries    []*entity.RequestHistory
}

func (m *mockHistoryRepo) Create(ctx context.Context, h *entity.RequestHistory) error {
	if m.createFunc != nil {
		if err := m.createFunc(ctx, h); err != nil {
			return err
		}
	}
	m.entries = append(m.entries, h)
	return nil
}

func (m *mockHistoryRepo) GetByRequestID(ctx context.Context, requestID int64) ([]*entity.RequestHistory, error) {
	return m.entries, nil
}

type mockTxManager struct {
	withTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.withTransactionFunc != nil {
		return m.withTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockSequence struct {
	nextFunc func(ctx context.Context, namespace string) (string, error)
	counter  int
}

func (m *mockSequence) Next(ctx context.Context, namespace string) (string, error) {
	if m.nextFunc != nil {
		return m.nextFunc(ctx, namespace)
	}
	m.counter++
	return fmt.Sprintf("%05d", m.counter), nil
}

type mockDirectory struct {
	managerOfFunc func(ctx context.Context, employeeID string) (string, error)
}

func (m *mockDirectory) ManagerOf(ctx context.Context, employeeID string) (string, error) {
	if m.managerOfFunc != nil {
		return m.managerOfFunc(ctx, employeeID)
	}
	return "mgr-001", nil
}

type mockAttachmentStore struct {
	saveFunc func(ctx context.Context, filename string, content []byte) (string, error)
	readFunc func(ctx context.Context, handle string) ([]byte, error)
}

func (m *mockAttachmentStore) Save(ctx context.Context, filename string, content []byte) (string, error) {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, filename, content)
	}
	return "handle-1", nil
}

func (m *mockAttachmentStore) Read(ctx context.Context, handle string) ([]byte, error) {
	if m.readFunc != nil {
		return m.readFunc(ctx, handle)
	}
	return []byte("pdf"), nil
}

func (m *mockAttachmentStore) Delete(ctx context.Context, handle string) error { return nil }

type mockNotifier struct {
	notifyFunc func(ctx context.Context, msg *entity.NotificationMessage) error
	sent       []*entity.NotificationMessage
}

func (m *mockNotifier) Notify(ctx context.Context, msg *entity.NotificationMessage) error {
	m.sent = append(m.sent, msg)
	if m.notifyFunc != nil {
		return m.notifyFunc(ctx, msg)
	}
	return nil
}

type mockLogger struct{}

func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
