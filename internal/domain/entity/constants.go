package entity

// State constants for TravelRequest
const (
	StateDraft      = "DRAFT"
	StateSubmitted  = "SUBMITTED"
	StateApproved   = "APPROVED"
	StateInProgress = "IN_PROGRESS"
	StateCompleted  = "COMPLETED"
	StateRefused    = "REFUSED"
	StateCancelled  = "CANCELLED"
)

// Transport mode constants
const (
	TransportRail        = "RAIL"
	TransportCoach       = "COACH"
	TransportAir         = "AIR"
	TransportPoolVehicle = "POOL_VEHICLE"
)

// Travel class constants (air travel only)
const (
	ClassEconomy  = "ECONOMY"
	ClassBusiness = "BUSINESS"
)

// History action constants
const (
	ActionCreate        = "CREATE"
	ActionUpdate        = "UPDATE"
	ActionSubmit        = "SUBMIT"
	ActionApprove       = "APPROVE"
	ActionRefuse        = "REFUSE"
	ActionProcess       = "PROCESS"
	ActionComplete      = "COMPLETE"
	ActionCancel        = "CANCEL"
	ActionReset         = "RESET"
	ActionDeactivate    = "DEACTIVATE"
	ActionNotifyWarning = "NOTIFY_WARNING"
)

// Notification kind constants
const (
	NotificationKindEmail = "EMAIL"
	NotificationKindTask  = "TASK"
)

// Notification status constants
const (
	NotificationStatusSent   = "SENT"
	NotificationStatusFailed = "FAILED"
)

// ValidTransportMode reports whether mode is one of the supported transport modes.
func ValidTransportMode(mode string) bool {
	switch mode {
	case TransportRail, TransportCoach, TransportAir, TransportPoolVehicle:
		return true
	}
	return false
}
