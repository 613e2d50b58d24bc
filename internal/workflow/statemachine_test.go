package workflow

import (
	"errors"
	"testing"

	"github.com/echoroom/echoroom-backend/internal/types"
)

func TestExperimentMachineTransitions(t *testing.T) {
	cases := []struct {
		name string
		from types.ExperimentStatus
		to   types.ExperimentStatus
		ok   bool
	}{
		{"planned to in-progress", types.ExperimentStatusPlanned, types.ExperimentStatusInProgress, true},
		{"in-progress to completed", types.ExperimentStatusInProgress, types.ExperimentStatusCompleted, true},
		{"skip to completed", types.ExperimentStatusPlanned, types.ExperimentStatusCompleted, false},
		{"backwards from in-progress", types.ExperimentStatusInProgress, types.ExperimentStatusPlanned, false},
		{"completed is terminal", types.ExperimentStatusCompleted, types.ExperimentStatusInProgress, false},
		{"completed to planned", types.ExperimentStatusCompleted, types.ExperimentStatusPlanned, false},
		{"self transition", types.ExperimentStatusPlanned, types.ExperimentStatusPlanned, false},
		{"unknown source", types.ExperimentStatus("archived"), types.ExperimentStatusPlanned, false},
		{"unknown target", types.ExperimentStatusPlanned, types.ExperimentStatus("archived"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExperimentMachine.CanTransition(tc.from, tc.to); got != tc.ok {
				t.Fatalf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.ok)
			}
		})
	}
}

func TestTransitionReturnsTypedError(t *testing.T) {
	next, err := ExperimentMachine.Transition(types.ExperimentStatusPlanned, types.ExperimentStatusInProgress)
	if err != nil {
		t.Fatalf("expected legal transition, got %v", err)
	}
	if next != types.ExperimentStatusInProgress {
		t.Fatalf("expected in-progress, got %s", next)
	}

	next, err = ExperimentMachine.Transition(types.ExperimentStatusCompleted, types.ExperimentStatusInProgress)
	if err == nil {
		t.Fatalf("expected error on terminal state transition")
	}
	var invalid *InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTransitionError, got %T", err)
	}
	if invalid.From != "completed" || invalid.To != "in-progress" {
		t.Fatalf("error should carry both labels, got from=%q to=%q", invalid.From, invalid.To)
	}
	if next != types.ExperimentStatusCompleted {
		t.Fatalf("failed transition must not move the state, got %s", next)
	}
}

func TestAllowedTransitionsIsACopy(t *testing.T) {
	allowed := ExperimentMachine.AllowedTransitions(types.ExperimentStatusPlanned)
	if len(allowed) != 1 || allowed[0] != types.ExperimentStatusInProgress {
		t.Fatalf("unexpected successor set: %v", allowed)
	}
	allowed[0] = types.ExperimentStatusCompleted
	if !ExperimentMachine.CanTransition(types.ExperimentStatusPlanned, types.ExperimentStatusInProgress) {
		t.Fatalf("mutating the returned slice must not change the table")
	}
	if got := ExperimentMachine.AllowedTransitions(types.ExperimentStatusCompleted); len(got) != 0 {
		t.Fatalf("terminal state should have no successors, got %v", got)
	}
}

func TestIdeaMachineLoop(t *testing.T) {
	path := []types.IdeaStatus{
		types.IdeaStatusDraft,
		types.IdeaStatusProposed,
		types.IdeaStatusExperiment,
		types.IdeaStatusOutcome,
		types.IdeaStatusReflection,
	}
	for i := 0; i < len(path)-1; i++ {
		if !IdeaMachine.CanTransition(path[i], path[i+1]) {
			t.Fatalf("expected %s -> %s to be legal", path[i], path[i+1])
		}
	}

	// Any non-terminal state can be discarded; nothing leaves discarded.
	for _, from := range path[:len(path)-1] {
		if !IdeaMachine.CanTransition(from, types.IdeaStatusDiscarded) {
			t.Fatalf("expected %s -> discarded to be legal", from)
		}
	}
	if IdeaMachine.CanTransition(types.IdeaStatusReflection, types.IdeaStatusDiscarded) {
		t.Fatalf("reflection is terminal")
	}
	if IdeaMachine.CanTransition(types.IdeaStatusDiscarded, types.IdeaStatusDraft) {
		t.Fatalf("discarded is terminal")
	}
	if IdeaMachine.CanTransition(types.IdeaStatusProposed, types.IdeaStatusOutcome) {
		t.Fatalf("loop states cannot be skipped")
	}
}
