package workflow

// State represents a travel request state in the approval lifecycle
type State string

const (
	StateDraft      State = "DRAFT"
	StateSubmitted  State = "SUBMITTED"
	StateApproved   State = "APPROVED"
	StateInProgress State = "IN_PROGRESS"
	StateCompleted  State = "COMPLETED"
	StateRefused    State = "REFUSED"
	StateCancelled  State = "CANCELLED"
)

var validStates = map[State]bool{
	StateDraft:      true,
	StateSubmitted:  true,
	StateApproved:   true,
	StateInProgress: true,
	StateCompleted:  true,
	StateRefused:    true,
	StateCancelled:  true,
}

// REFUSED is recoverable through a reset, so only COMPLETED and CANCELLED
// are terminal.
var terminalStates = map[State]bool{
	StateCompleted: true,
	StateCancelled: true,
}

// IsTerminal returns true if the state admits no further transitions
func (s State) IsTerminal() bool {
	return terminalStates[s]
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state is a valid workflow state
func (s State) IsValid() bool {
	return validStates[s]
}
