package services

import (
	"context"
	"testing"

	"github.com/echoroom/echoroom-backend/internal/logger"
	"github.com/echoroom/echoroom-backend/internal/repos"
	"github.com/echoroom/echoroom-backend/internal/types"
)

// loopFixture wires the in-memory side of the app the way main does, so the
// scenario tests exercise the same object graph requests hit.
type loopFixture struct {
	ideaRepo       repos.IdeaRepo
	experimentRepo repos.ExperimentRepo
	outcomeRepo    repos.OutcomeRepo
	reflectionRepo repos.ReflectionRepo

	ideas       IdeaService
	experiments ExperimentService
	outcomes    OutcomeService
	reflections ReflectionService
	insights    InsightsService
}

func newLoopFixture(t *testing.T) *loopFixture {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}

	f := &loopFixture{
		ideaRepo:       repos.NewIdeaRepo(log),
		experimentRepo: repos.NewExperimentRepo(log),
		outcomeRepo:    repos.NewOutcomeRepo(log),
		reflectionRepo: repos.NewReflectionRepo(log),
	}
	f.ideas = NewIdeaService(log, f.ideaRepo)
	f.outcomes = NewOutcomeService(log, f.outcomeRepo, f.experimentRepo)
	f.experiments = NewExperimentService(log, f.experimentRepo, f.outcomes)
	f.reflections = NewReflectionService(log, f.reflectionRepo, f.outcomeRepo)
	f.insights = NewInsightsService(log, f.ideaRepo, f.experimentRepo, f.outcomeRepo, f.reflectionRepo)
	return f
}

func (f *loopFixture) seedExperiment(t *testing.T, title string, status types.ExperimentStatus) *types.Experiment {
	t.Helper()
	experiment, err := f.experiments.CreateExperiment(context.Background(), CreateExperimentInput{
		Title:       title,
		Description: "seeded for test",
		Hypothesis:  "something measurable happens",
		Status:      status,
	})
	if err != nil {
		t.Fatalf("seed experiment: %v", err)
	}
	return experiment
}

func (f *loopFixture) seedOutcome(t *testing.T, experimentID int, result types.OutcomeResult) *types.Outcome {
	t.Helper()
	outcome, err := f.outcomes.CreateOutcome(context.Background(), experimentID, result, "seeded notes")
	if err != nil {
		t.Fatalf("seed outcome: %v", err)
	}
	return outcome
}

func statusPtr(s types.ExperimentStatus) *types.ExperimentStatus { return &s }

func resultPtr(r types.OutcomeResult) *types.OutcomeResult { return &r }
