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

type CreateReflectionInput struct {
	OutcomeID    int
	Context      types.ReflectionContext
	Breakdown    types.ReflectionBreakdown
	Growth       types.ReflectionGrowth
	Result       types.ReflectionResult
	Tags         []string
	EvidenceLink string
	Visibility   types.ReflectionVisibility
}

type ReflectionService interface {
	// CreateReflection enforces the referential guard: the outcome must
	// exist before the reflection is persisted.
	CreateReflection(ctx context.Context, input CreateReflectionInput) (*types.Reflection, error)
	GetReflection(ctx context.Context, id int) (*types.Reflection, error)
	ListReflections(ctx context.Context) ([]*types.Reflection, error)
	ListByOutcome(ctx context.Context, outcomeID int) ([]*types.Reflection, error)
}

type reflectionService struct {
	log            *logger.Logger
	reflectionRepo repos.ReflectionRepo
	outcomeRepo    repos.OutcomeRepo
}

func NewReflectionService(baseLog *logger.Logger, reflectionRepo repos.ReflectionRepo, outcomeRepo repos.OutcomeRepo) ReflectionService {
	serviceLog := baseLog.With("service", "ReflectionService")
	return &reflectionService{
		log:            serviceLog,
		reflectionRepo: reflectionRepo,
		outcomeRepo:    outcomeRepo,
	}
}

func (rs *reflectionService) CreateReflection(ctx context.Context, input CreateReflectionInput) (*types.Reflection, error) {
	if _, err := rs.outcomeRepo.GetByID(ctx, input.OutcomeID); err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return nil, &workflow.ReferenceNotFoundError{Kind: "Outcome", ID: input.OutcomeID}
		}
		return nil, err
	}

	reflection := &types.Reflection{
		OutcomeID:    input.OutcomeID,
		Context:      input.Context,
		Breakdown:    input.Breakdown,
		Growth:       input.Growth,
		Result:       input.Result,
		Tags:         input.Tags,
		EvidenceLink: input.EvidenceLink,
		Visibility:   input.Visibility,
	}
	created, err := rs.reflectionRepo.Create(ctx, reflection)
	if err != nil {
		return nil, fmt.Errorf("create reflection: %w", err)
	}
	rs.log.Info("Reflection created", "reflection_id", created.ID, "outcome_id", input.OutcomeID)
	return created, nil
}

func (rs *reflectionService) GetReflection(ctx context.Context, id int) (*types.Reflection, error) {
	return rs.reflectionRepo.GetByID(ctx, id)
}

func (rs *reflectionService) ListReflections(ctx context.Context) ([]*types.Reflection, error) {
	return rs.reflectionRepo.List(ctx)
}

func (rs *reflectionService) ListByOutcome(ctx context.Context, outcomeID int) ([]*types.Reflection, error) {
	return rs.reflectionRepo.ListByOutcome(ctx, outcomeID)
}
