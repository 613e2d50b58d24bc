package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/echoroom/echoroom-backend/internal/logger"
	"github.com/echoroom/echoroom-backend/internal/repos"
	"github.com/echoroom/echoroom-backend/internal/types"
	"github.com/echoroom/echoroom-backend/internal/workflow"
)

type CreateExperimentInput struct {
	Title          string
	Description    string
	Hypothesis     string
	SuccessMetric  string
	Falsifiability string
	Status         types.ExperimentStatus
	EndDate        string
	LinkedIdeaID   *int
}

// ExperimentUpdate is a partial update; nil fields are left as-is. A status
// change goes through the state machine. When the update completes the
// experiment and carries an OutcomeResult, the outcome is recorded in the
// same operation.
type ExperimentUpdate struct {
	Title          *string
	Description    *string
	Hypothesis     *string
	SuccessMetric  *string
	Falsifiability *string
	Status         *types.ExperimentStatus
	EndDate        *string
	LinkedIdeaID   *int
	OutcomeResult  *types.OutcomeResult
}

type ExperimentService interface {
	CreateExperiment(ctx context.Context, input CreateExperimentInput) (*types.Experiment, error)
	GetExperiment(ctx context.Context, id int) (*types.Experiment, error)
	ListExperiments(ctx context.Context) ([]*types.Experiment, error)
	UpdateExperiment(ctx context.Context, id int, update ExperimentUpdate) (*types.Experiment, error)
	DeleteExperiment(ctx context.Context, id int) error
}

type experimentService struct {
	log            *logger.Logger
	experimentRepo repos.ExperimentRepo
	outcomeService OutcomeService
}

func NewExperimentService(baseLog *logger.Logger, experimentRepo repos.ExperimentRepo, outcomeService OutcomeService) ExperimentService {
	serviceLog := baseLog.With("service", "ExperimentService")
	return &experimentService{
		log:            serviceLog,
		experimentRepo: experimentRepo,
		outcomeService: outcomeService,
	}
}

// ProgressForStatus is the derived completion percent shown next to an
// experiment.
func ProgressForStatus(status types.ExperimentStatus) int {
	switch status {
	case types.ExperimentStatusInProgress:
		return 55
	case types.ExperimentStatusCompleted:
		return 100
	default:
		return 10
	}
}

func (es *experimentService) CreateExperiment(ctx context.Context, input CreateExperimentInput) (*types.Experiment, error) {
	status := input.Status
	if status == "" {
		status = types.ExperimentStatusPlanned
	}

	// LinkedIdeaID is recorded as-is: the link is weak and resolution is
	// deferred to read time.
	experiment := &types.Experiment{
		Title:          input.Title,
		Description:    input.Description,
		Hypothesis:     input.Hypothesis,
		SuccessMetric:  input.SuccessMetric,
		Falsifiability: input.Falsifiability,
		Status:         status,
		EndDate:        input.EndDate,
		LinkedIdeaID:   input.LinkedIdeaID,
	}
	created, err := es.experimentRepo.Create(ctx, experiment)
	if err != nil {
		return nil, fmt.Errorf("create experiment: %w", err)
	}
	es.log.Info("Experiment created", "experiment_id", created.ID, "status", created.Status)
	return created, nil
}

func (es *experimentService) GetExperiment(ctx context.Context, id int) (*types.Experiment, error) {
	return es.experimentRepo.GetByID(ctx, id)
}

func (es *experimentService) ListExperiments(ctx context.Context) ([]*types.Experiment, error) {
	return es.experimentRepo.List(ctx)
}

func (es *experimentService) UpdateExperiment(ctx context.Context, id int, update ExperimentUpdate) (*types.Experiment, error) {
	// An outcome rides along only when this update completes the experiment.
	recordOutcome := update.OutcomeResult != nil &&
		update.Status != nil && *update.Status == types.ExperimentStatusCompleted
	if recordOutcome {
		exists, err := es.outcomeService.HasOutcomeForExperiment(ctx, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, &workflow.DuplicateOutcomeError{ExperimentID: id}
		}
	}

	updated, err := es.experimentRepo.Update(ctx, id, func(experiment *types.Experiment) error {
		if update.Status != nil && *update.Status != experiment.Status {
			next, tErr := workflow.ExperimentMachine.Transition(experiment.Status, *update.Status)
			if tErr != nil {
				return tErr
			}
			experiment.Status = next
		}
		if update.Title != nil {
			experiment.Title = *update.Title
		}
		if update.Description != nil {
			experiment.Description = *update.Description
		}
		if update.Hypothesis != nil {
			experiment.Hypothesis = *update.Hypothesis
		}
		if update.SuccessMetric != nil {
			experiment.SuccessMetric = *update.SuccessMetric
		}
		if update.Falsifiability != nil {
			experiment.Falsifiability = *update.Falsifiability
		}
		if update.EndDate != nil {
			experiment.EndDate = *update.EndDate
		}
		if update.LinkedIdeaID != nil {
			experiment.LinkedIdeaID = update.LinkedIdeaID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if recordOutcome {
		if _, oErr := es.outcomeService.CreateOutcome(ctx, id, *update.OutcomeResult, ""); oErr != nil {
			es.log.Warn("Outcome recording alongside experiment completion failed", "experiment_id", id, "error", oErr)
			return nil, oErr
		}
	}
	return updated, nil
}

// DeleteExperiment refuses to delete an experiment that already has an
// outcome: the outcome's reference is strong, so the parent must outlive it.
func (es *experimentService) DeleteExperiment(ctx context.Context, id int) error {
	if _, err := es.experimentRepo.GetByID(ctx, id); err != nil {
		return err
	}
	exists, err := es.outcomeService.HasOutcomeForExperiment(ctx, id)
	if err != nil {
		return err
	}
	if exists {
		return &workflow.DuplicateOutcomeError{ExperimentID: id}
	}
	if err := es.experimentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete experiment: %w", err)
	}
	es.log.Info("Experiment deleted", "experiment_id", id)
	return nil
}
