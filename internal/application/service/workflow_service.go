package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tripdesk/tripdesk/internal/application/port"
	appwf "github.com/tripdesk/tripdesk/internal/application/workflow"
	"github.com/tripdesk/tripdesk/internal/domain/entity"
	"github.com/tripdesk/tripdesk/internal/domain/validation"
	domainwf "github.com/tripdesk/tripdesk/internal/domain/workflow"
)

// Notification template keys resolved by the notifier's locale bundle.
const (
	TemplateSubmitted       = "request.submitted"
	TemplateApproved        = "request.approved"
	TemplateApprovedFinance = "request.approved.finance"
	TemplateRefused         = "request.refused"
)

// PendingRefusal is the value object produced by the first step of the
// two-step refusal. It carries no mutation: abandoning it leaves the request
// untouched.
type PendingRefusal struct {
	RequestID int64  `json:"request_id"`
	FromState string `json:"from_state"`
}

// WorkflowService drives a travel request through its approval lifecycle.
// Every method operates on exactly one request; the transition and its
// history entry commit together, and notification failures never undo a
// committed transition.
type WorkflowService interface {
	Submit(ctx context.Context, actor entity.ActorContext, id int64) error
	Approve(ctx context.Context, actor entity.ActorContext, id int64) error
	BeginRefusal(ctx context.Context, actor entity.ActorContext, id int64) (*PendingRefusal, error)
	ConfirmRefusal(ctx context.Context, actor entity.ActorContext, pending *PendingRefusal, reason string) error
	Process(ctx context.Context, actor entity.ActorContext, id int64) error
	Complete(ctx context.Context, actor entity.ActorContext, id int64) error
	Cancel(ctx context.Context, actor entity.ActorContext, id int64) error
	ResetToDraft(ctx context.Context, actor entity.ActorContext, id int64) error
}

type workflowServiceImpl struct {
	requestRepo      port.TravelRequestRepository
	historyRepo      port.HistoryRepository
	txManager        port.TransactionManager
	notifier         port.Notifier
	financeRecipient string
	logger           Logger
}

// NewWorkflowService creates a new WorkflowService
func NewWorkflowService(
	requestRepo port.TravelRequestRepository,
	historyRepo port.HistoryRepository,
	txManager port.TransactionManager,
	notifier port.Notifier,
	financeRecipient string,
	logger Logger,
) WorkflowService {
	return &workflowServiceImpl{
		requestRepo:      requestRepo,
		historyRepo:      historyRepo,
		txManager:        txManager,
		notifier:         notifier,
		financeRecipient: financeRecipient,
		logger:           logger,
	}
}

// Submit moves a draft request to SUBMITTED and notifies the manager.
func (s *workflowServiceImpl) Submit(ctx context.Context, actor entity.ActorContext, id int64) error {
	r, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanActOn(r.EmployeeID) {
		return fmt.Errorf("%w: only the requester can submit", ErrUnauthorized)
	}
	if !r.HasMissionOrder() {
		return &validation.Error{Field: "mission_order", Message: "the mission order must be attached before submitting"}
	}

	if err := s.applyTransition(ctx, actor, r, domainwf.TriggerSubmit, "", entity.ActionSubmit, "request submitted for manager approval"); err != nil {
		return err
	}

	if r.ManagerID != "" {
		data := s.messageData(r)
		s.dispatch(ctx, r,
			&entity.NotificationMessage{RequestID: r.ID, Recipient: r.ManagerID, Kind: entity.NotificationKindEmail, Template: TemplateSubmitted, Data: data},
			&entity.NotificationMessage{RequestID: r.ID, Recipient: r.ManagerID, Kind: entity.NotificationKindTask, Template: TemplateSubmitted, Data: data},
		)
	}
	return nil
}

// Approve moves a submitted request to APPROVED, clears any previous refusal
// reason and notifies the requester and the finance desk.
func (s *workflowServiceImpl) Approve(ctx context.Context, actor entity.ActorContext, id int64) error {
	r, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Elevated() {
		return fmt.Errorf("%w: approval requires the manager role", ErrUnauthorized)
	}

	if err := s.applyTransition(ctx, actor, r, domainwf.TriggerApprove, "", entity.ActionApprove, "request approved by manager"); err != nil {
		return err
	}

	data := s.messageData(r)
	s.dispatch(ctx, r,
		&entity.NotificationMessage{RequestID: r.ID, Recipient: r.EmployeeID, Kind: entity.NotificationKindEmail, Template: TemplateApproved, Data: data},
		&entity.NotificationMessage{RequestID: r.ID, Recipient: s.financeRecipient, Kind: entity.NotificationKindEmail, Template: TemplateApprovedFinance, Data: data},
		&entity.NotificationMessage{RequestID: r.ID, Recipient: s.financeRecipient, Kind: entity.NotificationKindTask, Template: TemplateApprovedFinance, Data: data},
	)
	return nil
}

// BeginRefusal opens the refusal sub-transaction. It validates that the
// refusal would be legal but mutates nothing; the state only changes on
// ConfirmRefusal.
func (s *workflowServiceImpl) BeginRefusal(ctx context.Context, actor entity.ActorContext, id int64) (*PendingRefusal, error) {
	r, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Elevated() {
		return nil, fmt.Errorf("%w: refusal requires the manager role", ErrUnauthorized)
	}

	machine := appwf.BuildTravelRequestStateMachine(domainwf.State(r.State))
	if !machine.CanFire(domainwf.TriggerRefuse) {
		return nil, fmt.Errorf("%w: cannot refuse from state %s", domainwf.ErrInvalidTransition, r.State)
	}

	return &PendingRefusal{RequestID: r.ID, FromState: r.State}, nil
}

// ConfirmRefusal executes a pending refusal with the supplied reason. An
// empty reason fails without mutating the request.
func (s *workflowServiceImpl) ConfirmRefusal(ctx context.Context, actor entity.ActorContext, pending *PendingRefusal, reason string) error {
	if pending == nil {
		return fmt.Errorf("%w: no pending refusal", domainwf.ErrInvalidTransition)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return &validation.Error{Field: "refusal_reason", Message: "a refusal reason is required"}
	}

	r, err := s.load(ctx, pending.RequestID)
	if err != nil {
		return err
	}
	if !actor.Elevated() {
		return fmt.Errorf("%w: refusal requires the manager role", ErrUnauthorized)
	}

	note := "request refused by manager: " + reason
	if err := s.applyTransition(ctx, actor, r, domainwf.TriggerRefuse, reason, entity.ActionRefuse, note); err != nil {
		return err
	}

	s.dispatch(ctx, r,
		&entity.NotificationMessage{RequestID: r.ID, Recipient: r.EmployeeID, Kind: entity.NotificationKindEmail, Template: TemplateRefused, Data: s.messageData(r)},
	)
	return nil
}

// Process moves an approved request to IN_PROGRESS (finance desk pickup).
func (s *workflowServiceImpl) Process(ctx context.Context, actor entity.ActorContext, id int64) error {
	r, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !s.financeActor(actor) {
		return fmt.Errorf("%w: processing requires the finance role", ErrUnauthorized)
	}

	return s.applyTransition(ctx, actor, r, domainwf.TriggerProcess, "", entity.ActionProcess, "request taken over by the finance desk")
}

// Complete finishes an in-progress request.
func (s *workflowServiceImpl) Complete(ctx context.Context, actor entity.ActorContext, id int64) error {
	r, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !s.financeActor(actor) {
		return fmt.Errorf("%w: completion requires the finance role", ErrUnauthorized)
	}

	return s.applyTransition(ctx, actor, r, domainwf.TriggerComplete, "", entity.ActionComplete, "request processing completed")
}

// Cancel cancels a request on behalf of the requester or the finance desk.
func (s *workflowServiceImpl) Cancel(ctx context.Context, actor entity.ActorContext, id int64) error {
	r, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanActOn(r.EmployeeID) && !actor.HasRole(entity.RoleFinance) {
		return fmt.Errorf("%w: cancellation is limited to the requester and the finance desk", ErrUnauthorized)
	}

	return s.applyTransition(ctx, actor, r, domainwf.TriggerCancel, "", entity.ActionCancel, "request cancelled")
}

// ResetToDraft returns a refused request to draft and clears the refusal
// reason. Any other state is rejected by the state machine.
func (s *workflowServiceImpl) ResetToDraft(ctx context.Context, actor entity.ActorContext, id int64) error {
	r, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanActOn(r.EmployeeID) {
		return fmt.Errorf("%w: only the requester can reset a refused request", ErrUnauthorized)
	}

	return s.applyTransition(ctx, actor, r, domainwf.TriggerReset, "", entity.ActionReset, "request reset to draft")
}

// applyTransition fires the trigger against the request's state machine and
// commits the new state together with its history entry. The refusal reason
// is stored on REFUSE and cleared on every other transition.
func (s *workflowServiceImpl) applyTransition(ctx context.Context, actor entity.ActorContext, r *entity.TravelRequest, trigger domainwf.Trigger, refusalReason, action, note string) error {
	machine := appwf.BuildTravelRequestStateMachine(domainwf.State(r.State))
	previousState := machine.State()

	if err := machine.Fire(ctx, trigger); err != nil {
		return err
	}
	newState := machine.State()

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.requestRepo.UpdateState(txCtx, r.ID, newState.String(), refusalReason); err != nil {
			return fmt.Errorf("update state: %w", err)
		}

		history := &entity.RequestHistory{
			RequestID:     r.ID,
			ActorID:       actor.ID,
			PreviousState: previousState.String(),
			NewState:      newState.String(),
			Action:        action,
			Note:          note,
			Timestamp:     time.Now(),
		}
		if err := s.historyRepo.Create(txCtx, history); err != nil {
			return fmt.Errorf("create history: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Errorw("Failed to apply transition", "error", err, "id", r.ID, "trigger", trigger.String())
		return err
	}

	r.State = newState.String()
	r.RefusalReason = refusalReason

	s.logger.Infow("Transition applied",
		"id", r.ID,
		"reference", r.Reference,
		"from", previousState.String(),
		"to", newState.String())
	return nil
}

// dispatch delivers notifications after a committed transition. Failures are
// recorded as warning annotations on the request and never returned.
func (s *workflowServiceImpl) dispatch(ctx context.Context, r *entity.TravelRequest, msgs ...*entity.NotificationMessage) {
	for _, msg := range msgs {
		if msg.Recipient == "" {
			continue
		}
		if err := s.notifier.Notify(ctx, msg); err != nil {
			s.logger.Warnw("Notification delivery failed",
				"id", r.ID,
				"recipient", msg.Recipient,
				"template", msg.Template,
				"error", err)

			warning := &entity.RequestHistory{
				RequestID:     r.ID,
				ActorID:       "system",
				PreviousState: r.State,
				NewState:      r.State,
				Action:        entity.ActionNotifyWarning,
				Note:          fmt.Sprintf("notification to %s failed: %v", msg.Recipient, err),
				Timestamp:     time.Now(),
			}
			if herr := s.historyRepo.Create(ctx, warning); herr != nil {
				s.logger.Errorw("Failed to record notification warning", "id", r.ID, "error", herr)
			}
		}
	}
}

func (s *workflowServiceImpl) messageData(r *entity.TravelRequest) map[string]string {
	return map[string]string{
		"Reference": r.Reference,
		"Employee":  r.EmployeeName,
		"Purpose":   r.MissionPurpose,
		"Reason":    r.RefusalReason,
	}
}

func (s *workflowServiceImpl) financeActor(actor entity.ActorContext) bool {
	return actor.HasRole(entity.RoleFinance) || actor.HasRole(entity.RoleAdmin)
}

func (s *workflowServiceImpl) load(ctx context.Context, id int64) (*entity.TravelRequest, error) {
	r, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil || !r.Active {
		return nil, ErrNotFound
	}
	return r, nil
}
