package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tripdesk/tripdesk/internal/application/port"
	"github.com/tripdesk/tripdesk/internal/domain/derivation"
	"github.com/tripdesk/tripdesk/internal/domain/entity"
	"github.com/tripdesk/tripdesk/internal/domain/validation"
)

// Logger is the minimal logging dependency shared by the services. It is
// satisfied by *zap.SugaredLogger.
type Logger interface {
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
}

// SequenceNamespace is the counter namespace for travel request references.
const SequenceNamespace = "travel.request"

// CreateRequestInput carries the requester-supplied fields of a new travel
// request.
type CreateRequestInput struct {
	EmployeeID     string    `json:"employee_id"`
	EmployeeName   string    `json:"employee_name"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	CityID         int64     `json:"city_id"`
	TransportMode  string    `json:"transport_mode"`
	DistanceKm     float64   `json:"distance_km"`
	VehicleID      *int64    `json:"vehicle_id,omitempty"`
	MissionPurpose string    `json:"mission_purpose"`
	OrgUnit        string    `json:"org_unit,omitempty"`
}

// UpdateRequestInput carries the editable fields of a draft request.
type UpdateRequestInput struct {
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	CityID         int64     `json:"city_id"`
	TransportMode  string    `json:"transport_mode"`
	DistanceKm     float64   `json:"distance_km"`
	VehicleID      *int64    `json:"vehicle_id,omitempty"`
	MissionPurpose string    `json:"mission_purpose"`
}

// RequestService manages the travel request lifecycle outside of workflow
// transitions: creation, draft edits, attachments and reads.
type RequestService interface {
	Create(ctx context.Context, actor entity.ActorContext, input CreateRequestInput) (*entity.TravelRequest, error)
	Update(ctx context.Context, actor entity.ActorContext, id int64, input UpdateRequestInput) (*entity.TravelRequest, error)
	Get(ctx context.Context, actor entity.ActorContext, id int64) (*entity.TravelRequest, error)
	List(ctx context.Context, actor entity.ActorContext, filter port.RequestFilter) ([]*entity.TravelRequest, error)
	History(ctx context.Context, actor entity.ActorContext, id int64) ([]*entity.RequestHistory, error)
	AttachMissionOrder(ctx context.Context, actor entity.ActorContext, id int64, filename string, content []byte) error
	MissionOrder(ctx context.Context, actor entity.ActorContext, id int64) ([]byte, string, error)
	Deactivate(ctx context.Context, actor entity.ActorContext, id int64) error
}

// RequestServiceConfig holds the company policy values the service derives
// fields from.
type RequestServiceConfig struct {
	HomeCountry     string
	Currency        string
	Rates           derivation.Rates
	ReferencePrefix string
}

type requestServiceImpl struct {
	requestRepo port.TravelRequestRepository
	cityRepo    port.CityRepository
	vehicleRepo port.VehicleRepository
	historyRepo port.HistoryRepository
	txManager   port.TransactionManager
	sequence    port.SequenceAllocator
	directory   port.Directory
	attachments port.AttachmentStore
	cfg         RequestServiceConfig
	logger      Logger
}

// NewRequestService creates a new RequestService
func NewRequestService(
	requestRepo port.TravelRequestRepository,
	cityRepo port.CityRepository,
	vehicleRepo port.VehicleRepository,
	historyRepo port.HistoryRepository,
	txManager port.TransactionManager,
	sequence port.SequenceAllocator,
	directory port.Directory,
	attachments port.AttachmentStore,
	cfg RequestServiceConfig,
	logger Logger,
) RequestService {
	return &requestServiceImpl{
		requestRepo: requestRepo,
		cityRepo:    cityRepo,
		vehicleRepo: vehicleRepo,
		historyRepo: historyRepo,
		txManager:   txManager,
		sequence:    sequence,
		directory:   directory,
		attachments: attachments,
		cfg:         cfg,
		logger:      logger,
	}
}

// Create validates, derives and persists a new draft request, then assigns
// its reference from the sequence allocator.
func (s *requestServiceImpl) Create(ctx context.Context, actor entity.ActorContext, input CreateRequestInput) (*entity.TravelRequest, error) {
	if !actor.CanActOn(input.EmployeeID) {
		return nil, fmt.Errorf("%w: requests can only be created for yourself", ErrUnauthorized)
	}

	r := &entity.TravelRequest{
		Reference:      entity.ReferencePlaceholder,
		EmployeeID:     input.EmployeeID,
		EmployeeName:   input.EmployeeName,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		CityID:         input.CityID,
		TransportMode:  input.TransportMode,
		DistanceKm:     input.DistanceKm,
		VehicleID:      input.VehicleID,
		MissionPurpose: input.MissionPurpose,
		OrgUnit:        input.OrgUnit,
		State:          entity.StateDraft,
		Currency:       s.cfg.Currency,
		Active:         true,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := validation.Validate(r); err != nil {
		return nil, err
	}

	destCountry, err := s.resolveDestination(ctx, r)
	if err != nil {
		return nil, err
	}

	manager, err := s.directory.ManagerOf(ctx, r.EmployeeID)
	if err != nil {
		s.logger.Warnw("Failed to resolve manager", "employee_id", r.EmployeeID, "error", err)
	}
	r.ManagerID = manager

	derivation.Apply(r, destCountry, s.cfg.HomeCountry, s.cfg.Rates)

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.requestRepo.Create(txCtx, r); err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		history := &entity.RequestHistory{
			RequestID: r.ID,
			ActorID:   actor.ID,
			NewState:  entity.StateDraft,
			Action:    entity.ActionCreate,
			Note:      "travel request created",
			Timestamp: time.Now(),
		}
		if err := s.historyRepo.Create(txCtx, history); err != nil {
			return fmt.Errorf("create history: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Errorw("Failed to create request", "error", err, "employee_id", input.EmployeeID)
		return nil, err
	}

	// The reference is assigned after the row is durably created; a failed
	// allocation leaves the placeholder in place rather than undoing the create.
	s.assignReference(ctx, r)

	s.logger.Infow("Request created", "id", r.ID, "reference", r.Reference)
	return r, nil
}

// assignReference allocates and assigns the definitive reference if the
// request still carries the placeholder.
func (s *requestServiceImpl) assignReference(ctx context.Context, r *entity.TravelRequest) {
	if r.Reference != entity.ReferencePlaceholder {
		return
	}

	ref, err := s.sequence.Next(ctx, SequenceNamespace)
	if err != nil {
		s.logger.Warnw("Failed to allocate reference", "id", r.ID, "error", err)
		return
	}
	if s.cfg.ReferencePrefix != "" {
		ref = s.cfg.ReferencePrefix + ref
	}

	if err := s.requestRepo.AssignReference(ctx, r.ID, ref); err != nil {
		s.logger.Warnw("Failed to assign reference", "id", r.ID, "reference", ref, "error", err)
		return
	}
	r.Reference = ref
}

// Update edits a draft request, re-running validation and derivation. The
// reference is never touched.
func (s *requestServiceImpl) Update(ctx context.Context, actor entity.ActorContext, id int64, input UpdateRequestInput) (*entity.TravelRequest, error) {
	r, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if r.State != entity.StateDraft {
		return nil, ErrNotEditable
	}

	r.StartDate = input.StartDate
	r.EndDate = input.EndDate
	r.CityID = input.CityID
	r.TransportMode = input.TransportMode
	r.DistanceKm = input.DistanceKm
	r.VehicleID = input.VehicleID
	r.MissionPurpose = input.MissionPurpose
	r.UpdatedAt = time.Now()

	if err := validation.Validate(r); err != nil {
		return nil, err
	}

	destCountry, err := s.resolveDestination(ctx, r)
	if err != nil {
		return nil, err
	}
	derivation.Apply(r, destCountry, s.cfg.HomeCountry, s.cfg.Rates)

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.requestRepo.Update(txCtx, r); err != nil {
			return fmt.Errorf("update request: %w", err)
		}

		history := &entity.RequestHistory{
			RequestID:     r.ID,
			ActorID:       actor.ID,
			PreviousState: entity.StateDraft,
			NewState:      entity.StateDraft,
			Action:        entity.ActionUpdate,
			Note:          "travel request updated",
			Timestamp:     time.Now(),
		}
		if err := s.historyRepo.Create(txCtx, history); err != nil {
			return fmt.Errorf("create history: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Errorw("Failed to update request", "error", err, "id", id)
		return nil, err
	}

	return r, nil
}

// Get retrieves a request the actor is allowed to see.
func (s *requestServiceImpl) Get(ctx context.Context, actor entity.ActorContext, id int64) (*entity.TravelRequest, error) {
	return s.load(ctx, actor, id)
}

// List retrieves requests; plain employees only see their own.
func (s *requestServiceImpl) List(ctx context.Context, actor entity.ActorContext, filter port.RequestFilter) ([]*entity.TravelRequest, error) {
	if !actor.Elevated() && !actor.HasRole(entity.RoleFinance) {
		filter.EmployeeID = actor.ID
	}
	requests, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		s.logger.Errorw("Failed to list requests", "error", err)
		return nil, err
	}
	return requests, nil
}

// History returns the append-only audit trail of a request.
func (s *requestServiceImpl) History(ctx context.Context, actor entity.ActorContext, id int64) ([]*entity.RequestHistory, error) {
	if _, err := s.load(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.historyRepo.GetByRequestID(ctx, id)
}

// AttachMissionOrder stores the mission-order document and references it on
// the request. Attachments can only change while the request is in draft.
func (s *requestServiceImpl) AttachMissionOrder(ctx context.Context, actor entity.ActorContext, id int64, filename string, content []byte) error {
	r, err := s.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if r.State != entity.StateDraft {
		return ErrNotEditable
	}
	if len(content) == 0 {
		return &validation.Error{Field: "mission_order", Message: "the mission order document is empty"}
	}

	handle, err := s.attachments.Save(ctx, filename, content)
	if err != nil {
		s.logger.Errorw("Failed to store mission order", "id", id, "error", err)
		return fmt.Errorf("store mission order: %w", err)
	}

	if err := s.requestRepo.SetMissionOrder(ctx, id, handle, filename); err != nil {
		return fmt.Errorf("set mission order: %w", err)
	}

	s.logger.Infow("Mission order attached", "id", id, "filename", filename)
	return nil
}

// MissionOrder returns the attached document content and filename.
func (s *requestServiceImpl) MissionOrder(ctx context.Context, actor entity.ActorContext, id int64) ([]byte, string, error) {
	r, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}
	if !r.HasMissionOrder() {
		return nil, "", ErrNotFound
	}

	content, err := s.attachments.Read(ctx, r.MissionOrderRef)
	if err != nil {
		return nil, "", fmt.Errorf("read mission order: %w", err)
	}
	return content, r.MissionOrderFilename, nil
}

// Deactivate soft-deletes a request; records are never physically removed.
func (s *requestServiceImpl) Deactivate(ctx context.Context, actor entity.ActorContext, id int64) error {
	r, err := s.load(ctx, actor, id)
	if err != nil {
		return err
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.requestRepo.Deactivate(txCtx, id); err != nil {
			return fmt.Errorf("deactivate request: %w", err)
		}

		history := &entity.RequestHistory{
			RequestID:     id,
			ActorID:       actor.ID,
			PreviousState: r.State,
			NewState:      r.State,
			Action:        entity.ActionDeactivate,
			Note:          "travel request archived",
			Timestamp:     time.Now(),
		}
		return s.historyRepo.Create(txCtx, history)
	})
	if err != nil {
		s.logger.Errorw("Failed to deactivate request", "error", err, "id", id)
		return err
	}

	s.logger.Infow("Request deactivated", "id", id)
	return nil
}

// load fetches an active request and checks record-level access.
func (s *requestServiceImpl) load(ctx context.Context, actor entity.ActorContext, id int64) (*entity.TravelRequest, error) {
	r, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil || !r.Active {
		return nil, ErrNotFound
	}
	if !actor.CanActOn(r.EmployeeID) && !actor.HasRole(entity.RoleFinance) {
		return nil, ErrUnauthorized
	}
	return r, nil
}

// resolveDestination loads the destination city and validates the vehicle
// reference, returning the destination country.
func (s *requestServiceImpl) resolveDestination(ctx context.Context, r *entity.TravelRequest) (string, error) {
	city, err := s.cityRepo.GetByID(ctx, r.CityID)
	if err != nil {
		return "", fmt.Errorf("get city: %w", err)
	}
	if city == nil || !city.Active {
		return "", &validation.Error{Field: "city_id", Message: "the destination city does not exist"}
	}

	if r.VehicleID != nil {
		vehicle, err := s.vehicleRepo.GetByID(ctx, *r.VehicleID)
		if err != nil {
			return "", fmt.Errorf("get vehicle: %w", err)
		}
		if vehicle == nil || !vehicle.Active {
			return "", &validation.Error{Field: "vehicle_id", Message: "the pool vehicle does not exist"}
		}
	}

	return city.CountryCode, nil
}
