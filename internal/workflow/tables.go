package workflow

import (
	"github.com/echoroom/echoroom-backend/internal/types"
)

// ExperimentMachine is the one-way planned -> in-progress -> completed
// lifecycle. No edge skips a state and completed is terminal.
var ExperimentMachine = NewStateMachine(map[types.ExperimentStatus][]types.ExperimentStatus{
	types.ExperimentStatusPlanned:    {types.ExperimentStatusInProgress},
	types.ExperimentStatusInProgress: {types.ExperimentStatusCompleted},
	types.ExperimentStatusCompleted:  {},
})

// IdeaMachine walks an idea through the learning loop. Every non-terminal
// state may be discarded; reflection and discarded have no successors.
var IdeaMachine = NewStateMachine(map[types.IdeaStatus][]types.IdeaStatus{
	types.IdeaStatusDraft:      {types.IdeaStatusProposed, types.IdeaStatusDiscarded},
	types.IdeaStatusProposed:   {types.IdeaStatusExperiment, types.IdeaStatusDiscarded},
	types.IdeaStatusExperiment: {types.IdeaStatusOutcome, types.IdeaStatusDiscarded},
	types.IdeaStatusOutcome:    {types.IdeaStatusReflection, types.IdeaStatusDiscarded},
	types.IdeaStatusReflection: {},
	types.IdeaStatusDiscarded:  {},
})
