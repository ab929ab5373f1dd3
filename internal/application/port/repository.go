package port

import (
	"context"

	"github.com/tripdesk/tripdesk/internal/domain/entity"
)

// RequestFilter narrows List results.
type RequestFilter struct {
	State      string
	EmployeeID string
	Limit      int
	Offset     int
}

// TravelRequestRepository defines persistence operations for TravelRequest
type TravelRequestRepository interface {
	Create(ctx context.Context, r *entity.TravelRequest) error
	GetByID(ctx context.Context, id int64) (*entity.TravelRequest, error)
	GetByReference(ctx context.Context, reference string) (*entity.TravelRequest, error)
	Update(ctx context.Context, r *entity.TravelRequest) error
	UpdateState(ctx context.Context, id int64, state, refusalReason string) error
	// AssignReference sets the reference only while the stored value is still
	// the placeholder, so re-running the assignment is a no-op.
	AssignReference(ctx context.Context, id int64, reference string) error
	SetMissionOrder(ctx context.Context, id int64, handle, filename string) error
	List(ctx context.Context, filter RequestFilter) ([]*entity.TravelRequest, error)
	Deactivate(ctx context.Context, id int64) error
}

// CityRepository defines persistence operations for City
type CityRepository interface {
	Create(ctx context.Context, city *entity.City) error
	GetByID(ctx context.Context, id int64) (*entity.City, error)
	List(ctx context.Context, limit, offset int) ([]*entity.City, error)
	Deactivate(ctx context.Context, id int64) error
}

// VehicleRepository defines persistence operations for PoolVehicle
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entity.PoolVehicle) error
	GetByID(ctx context.Context, id int64) (*entity.PoolVehicle, error)
	List(ctx context.Context, limit, offset int) ([]*entity.PoolVehicle, error)
	Deactivate(ctx context.Context, id int64) error
}

// HistoryRepository defines persistence operations for the append-only
// request audit trail. There is deliberately no update or delete.
type HistoryRepository interface {
	Create(ctx context.Context, h *entity.RequestHistory) error
	GetByRequestID(ctx context.Context, requestID int64) ([]*entity.RequestHistory, error)
}

// NotificationRepository defines persistence operations for the notification
// outbox.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.NotificationRecord) error
	GetByRequestID(ctx context.Context, requestID int64) ([]*entity.NotificationRecord, error)
}

// TransactionManager handles database transactions
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
