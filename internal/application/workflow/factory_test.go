package workflow

import (
	"context"
	"errors"
	"testing"

	domainwf "github.com/tripdesk/tripdesk/internal/domain/workflow"
)

func TestTravelRequestStateMachine_NominalPath(t *testing.T) {
	machine := BuildTravelRequestStateMachine(domainwf.StateDraft)

	steps := []struct {
		trigger       domainwf.Trigger
		expectedState domainwf.State
	}{
		{domainwf.TriggerSubmit, domainwf.StateSubmitted},
		{domainwf.TriggerApprove, domainwf.StateApproved},
		{domainwf.TriggerProcess, domainwf.StateInProgress},
		{domainwf.TriggerComplete, domainwf.StateCompleted},
	}

	for i, step := range steps {
		if err := machine.Fire(context.Background(), step.trigger); err != nil {
			t.Fatalf("step %d: Fire(%v) failed: %v", i, step.trigger, err)
		}
		if machine.State() != step.expectedState {
			t.Fatalf("step %d: state = %v, want %v", i, machine.State(), step.expectedState)
		}
	}

	if !machine.State().IsTerminal() {
		t.Error("COMPLETED should be terminal")
	}
	if triggers := machine.PermittedTriggers(); len(triggers) != 0 {
		t.Errorf("terminal state should permit no triggers, got %v", triggers)
	}
}

func TestTravelRequestStateMachine_RefusalAndReset(t *testing.T) {
	machine := BuildTravelRequestStateMachine(domainwf.StateSubmitted)

	if err := machine.Fire(context.Background(), domainwf.TriggerRefuse); err != nil {
		t.Fatalf("Fire(REFUSE) failed: %v", err)
	}
	if machine.State() != domainwf.StateRefused {
		t.Fatalf("state = %v, want REFUSED", machine.State())
	}
	if machine.State().IsTerminal() {
		t.Error("REFUSED must stay recoverable")
	}

	if err := machine.Fire(context.Background(), domainwf.TriggerReset); err != nil {
		t.Fatalf("Fire(RESET) failed: %v", err)
	}
	if machine.State() != domainwf.StateDraft {
		t.Errorf("state = %v, want DRAFT after reset", machine.State())
	}
}

func TestTravelRequestStateMachine_RefusalFromApproved(t *testing.T) {
	machine := BuildTravelRequestStateMachine(domainwf.StateApproved)

	if err := machine.Fire(context.Background(), domainwf.TriggerRefuse); err != nil {
		t.Fatalf("Fire(REFUSE) from APPROVED failed: %v", err)
	}
	if machine.State() != domainwf.StateRefused {
		t.Errorf("state = %v, want REFUSED", machine.State())
	}
}

func TestTravelRequestStateMachine_CancellableStates(t *testing.T) {
	cancellable := []domainwf.State{
		domainwf.StateDraft,
		domainwf.StateSubmitted,
		domainwf.StateApproved,
		domainwf.StateInProgress,
	}

	for _, state := range cancellable {
		t.Run(string(state), func(t *testing.T) {
			machine := BuildTravelRequestStateMachine(state)
			if err := machine.Fire(context.Background(), domainwf.TriggerCancel); err != nil {
				t.Fatalf("Fire(CANCEL) from %v failed: %v", state, err)
			}
			if machine.State() != domainwf.StateCancelled {
				t.Errorf("state = %v, want CANCELLED", machine.State())
			}
		})
	}

	for _, state := range []domainwf.State{domainwf.StateRefused, domainwf.StateCompleted, domainwf.StateCancelled} {
		t.Run("not_from_"+string(state), func(t *testing.T) {
			machine := BuildTravelRequestStateMachine(state)
			if err := machine.Fire(context.Background(), domainwf.TriggerCancel); !errors.Is(err, domainwf.ErrInvalidTransition) {
				t.Errorf("Fire(CANCEL) from %v = %v, want ErrInvalidTransition", state, err)
			}
		})
	}
}

// Every pair not in the transition table must be rejected.
func TestTravelRequestStateMachine_IllegalTransitionsRejected(t *testing.T) {
	legal := map[domainwf.State]map[domainwf.Trigger]bool{
		domainwf.StateDraft:      {domainwf.TriggerSubmit: true, domainwf.TriggerCancel: true},
		domainwf.StateSubmitted:  {domainwf.TriggerApprove: true, domainwf.TriggerRefuse: true, domainwf.TriggerCancel: true},
		domainwf.StateApproved:   {domainwf.TriggerProcess: true, domainwf.TriggerRefuse: true, domainwf.TriggerCancel: true},
		domainwf.StateInProgress: {domainwf.TriggerComplete: true, domainwf.TriggerCancel: true},
		domainwf.StateRefused:    {domainwf.TriggerReset: true},
		domainwf.StateCompleted:  {},
		domainwf.StateCancelled:  {},
	}

	triggers := []domainwf.Trigger{
		domainwf.TriggerSubmit,
		domainwf.TriggerApprove,
		domainwf.TriggerRefuse,
		domainwf.TriggerProcess,
		domainwf.TriggerComplete,
		domainwf.TriggerCancel,
		domainwf.TriggerReset,
	}

	for state, allowed := range legal {
		for _, trigger := range triggers {
			t.Run(string(state)+"_"+string(trigger), func(t *testing.T) {
				machine := BuildTravelRequestStateMachine(state)
				err := machine.Fire(context.Background(), trigger)
				if allowed[trigger] {
					if err != nil {
						t.Errorf("Fire(%v) from %v failed: %v", trigger, state, err)
					}
				} else {
					if !errors.Is(err, domainwf.ErrInvalidTransition) {
						t.Errorf("Fire(%v) from %v = %v, want ErrInvalidTransition", trigger, state, err)
					}
					if machine.State() != state {
						t.Errorf("state mutated to %v on rejected transition", machine.State())
					}
				}
			})
		}
	}
}

func TestTravelRequestStateMachine_ResetOnlyFromRefused(t *testing.T) {
	for _, state := range []domainwf.State{
		domainwf.StateDraft,
		domainwf.StateSubmitted,
		domainwf.StateApproved,
		domainwf.StateInProgress,
		domainwf.StateCompleted,
		domainwf.StateCancelled,
	} {
		machine := BuildTravelRequestStateMachine(state)
		if machine.CanFire(domainwf.TriggerReset) {
			t.Errorf("RESET should not be permitted from %v", state)
		}
	}

	machine := BuildTravelRequestStateMachine(domainwf.StateRefused)
	if !machine.CanFire(domainwf.TriggerReset) {
		t.Error("RESET should be permitted from REFUSED")
	}
}
