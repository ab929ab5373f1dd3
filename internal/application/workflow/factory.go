package workflow

import (
	domainwf "github.com/tripdesk/tripdesk/internal/domain/workflow"
)

// BuildTravelRequestStateMachine creates a state machine configured with the
// legal transitions of the travel approval workflow.
func BuildTravelRequestStateMachine(initialState domainwf.State) domainwf.StateMachine {
	builder := domainwf.NewBuilder()

	builder.Configure(domainwf.StateDraft).
		Permit(domainwf.TriggerSubmit, domainwf.StateSubmitted).
		Permit(domainwf.TriggerCancel, domainwf.StateCancelled)

	builder.Configure(domainwf.StateSubmitted).
		Permit(domainwf.TriggerApprove, domainwf.StateApproved).
		Permit(domainwf.TriggerRefuse, domainwf.StateRefused).
		Permit(domainwf.TriggerCancel, domainwf.StateCancelled)

	// An already-approved request can still be refused before the finance
	// desk picks it up.
	builder.Configure(domainwf.StateApproved).
		Permit(domainwf.TriggerProcess, domainwf.StateInProgress).
		Permit(domainwf.TriggerRefuse, domainwf.StateRefused).
		Permit(domainwf.TriggerCancel, domainwf.StateCancelled)

	builder.Configure(domainwf.StateInProgress).
		Permit(domainwf.TriggerComplete, domainwf.StateCompleted).
		Permit(domainwf.TriggerCancel, domainwf.StateCancelled)

	builder.Configure(domainwf.StateRefused).
		Permit(domainwf.TriggerReset, domainwf.StateDraft)

	// COMPLETED and CANCELLED are terminal - no outgoing transitions

	return builder.Build(initialState)
}
