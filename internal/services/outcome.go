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

type OutcomeService interface {
	// CreateOutcome enforces the referential guard (the experiment must
	// exist) and the at-most-one-outcome rule before anything is persisted.
	CreateOutcome(ctx context.Context, experimentID int, result types.OutcomeResult, notes string) (*types.Outcome, error)
	GetOutcome(ctx context.Context, id int) (*types.Outcome, error)
	ListOutcomes(ctx context.Context) ([]*types.OutcomeWithExperiment, error)
	ListByExperiment(ctx context.Context, experimentID int) ([]*types.Outcome, error)
	UpdateResultForExperiment(ctx context.Context, experimentID int, result types.OutcomeResult) (*types.Outcome, error)
	HasOutcomeForExperiment(ctx context.Context, experimentID int) (bool, error)
}

type outcomeService struct {
	log            *logger.Logger
	outcomeRepo    repos.OutcomeRepo
	experimentRepo repos.ExperimentRepo
}

func NewOutcomeService(baseLog *logger.Logger, outcomeRepo repos.OutcomeRepo, experimentRepo repos.ExperimentRepo) OutcomeService {
	serviceLog := baseLog.With("service", "OutcomeService")
	return &outcomeService{
		log:            serviceLog,
		outcomeRepo:    outcomeRepo,
		experimentRepo: experimentRepo,
	}
}

func (os *outcomeService) CreateOutcome(ctx context.Context, experimentID int, result types.OutcomeResult, notes string) (*types.Outcome, error) {
	if _, err := os.experimentRepo.GetByID(ctx, experimentID); err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return nil, &workflow.ReferenceNotFoundError{Kind: "Experiment", ID: experimentID}
		}
		return nil, err
	}

	// Fast path only; the store re-checks under its lock on insert, so two
	// racing creators for the same experiment still yield one outcome.
	exists, err := os.outcomeRepo.ExistsForExperiment(ctx, experimentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &workflow.DuplicateOutcomeError{ExperimentID: experimentID}
	}

	outcome := &types.Outcome{
		ExperimentID: experimentID,
		Result:       result,
		Notes:        notes,
	}
	created, err := os.outcomeRepo.Create(ctx, outcome)
	if err != nil {
		var dup *workflow.DuplicateOutcomeError
		if errors.As(err, &dup) {
			return nil, err
		}
		return nil, fmt.Errorf("create outcome: %w", err)
	}
	os.log.Info("Outcome created", "outcome_id", created.ID, "experiment_id", experimentID, "result", result)
	return created, nil
}

func (os *outcomeService) GetOutcome(ctx context.Context, id int) (*types.Outcome, error) {
	return os.outcomeRepo.GetByID(ctx, id)
}

// ListOutcomes resolves each outcome's experiment title at read time. A
// deleted experiment is a normal condition here, not an error.
func (os *outcomeService) ListOutcomes(ctx context.Context) ([]*types.OutcomeWithExperiment, error) {
	outcomes, err := os.outcomeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*types.OutcomeWithExperiment, 0, len(outcomes))
	for _, outcome := range outcomes {
		title := "Unknown Experiment"
		if experiment, eErr := os.experimentRepo.GetByID(ctx, outcome.ExperimentID); eErr == nil {
			title = experiment.Title
		}
		results = append(results, &types.OutcomeWithExperiment{
			Outcome:         *outcome,
			ExperimentTitle: title,
		})
	}
	return results, nil
}

func (os *outcomeService) ListByExperiment(ctx context.Context, experimentID int) ([]*types.Outcome, error) {
	return os.outcomeRepo.ListByExperiment(ctx, experimentID)
}

// UpdateResultForExperiment rewrites the result of the single outcome
// recorded for an experiment.
func (os *outcomeService) UpdateResultForExperiment(ctx context.Context, experimentID int, result types.OutcomeResult) (*types.Outcome, error) {
	outcomes, err := os.outcomeRepo.ListByExperiment(ctx, experimentID)
	if err != nil {
		return nil, err
	}
	if len(outcomes) == 0 {
		return nil, repos.ErrNotFound
	}
	return os.outcomeRepo.UpdateResult(ctx, outcomes[0].ID, result)
}

func (os *outcomeService) HasOutcomeForExperiment(ctx context.Context, experimentID int) (bool, error) {
	return os.outcomeRepo.ExistsForExperiment(ctx, experimentID)
}
