package services

import (
	"context"
	"fmt"

	"github.com/echoroom/echoroom-backend/internal/logger"
	"github.com/echoroom/echoroom-backend/internal/normalization"
	"github.com/echoroom/echoroom-backend/internal/repos"
	"github.com/echoroom/echoroom-backend/internal/types"
	"github.com/echoroom/echoroom-backend/internal/workflow"
)

type IdeaService interface {
	CreateIdea(ctx context.Context, title, description string, complexity types.IdeaComplexity) (*types.Idea, error)
	CreateDraft(ctx context.Context, title, description string, complexity types.IdeaComplexity) (*types.Idea, error)
	UpdateDraft(ctx context.Context, id int, title, description string, version int) (*types.Idea, error)
	PublishDraft(ctx context.Context, id, version int) (*types.Idea, error)
	UpdateStatus(ctx context.Context, id int, status types.IdeaStatus, version int) (*types.Idea, error)
	GetIdea(ctx context.Context, id int) (*types.Idea, error)
	ListPublished(ctx context.Context) ([]*types.Idea, error)
	ListAll(ctx context.Context) ([]*types.Idea, error)
	ListDrafts(ctx context.Context) ([]*types.Idea, error)
	DeleteIdea(ctx context.Context, id int) error
}

type ideaService struct {
	log      *logger.Logger
	ideaRepo repos.IdeaRepo
}

func NewIdeaService(baseLog *logger.Logger, ideaRepo repos.IdeaRepo) IdeaService {
	serviceLog := baseLog.With("service", "IdeaService")
	return &ideaService{log: serviceLog, ideaRepo: ideaRepo}
}

func (is *ideaService) createWithStatus(ctx context.Context, title, description string, complexity types.IdeaComplexity, status types.IdeaStatus) (*types.Idea, error) {
	title = normalization.TrimInputString(title)
	description = normalization.TrimInputString(description)
	if title == "" || description == "" {
		return nil, fmt.Errorf("title and description are required")
	}

	idea := &types.Idea{
		Title:       title,
		Description: description,
		Complexity:  complexity,
		Status:      status,
		Version:     1,
	}
	created, err := is.ideaRepo.Create(ctx, idea)
	if err != nil {
		return nil, fmt.Errorf("create idea: %w", err)
	}
	is.log.Info("Idea created", "idea_id", created.ID, "status", created.Status)
	return created, nil
}

func (is *ideaService) CreateIdea(ctx context.Context, title, description string, complexity types.IdeaComplexity) (*types.Idea, error) {
	return is.createWithStatus(ctx, title, description, complexity, types.IdeaStatusProposed)
}

func (is *ideaService) CreateDraft(ctx context.Context, title, description string, complexity types.IdeaComplexity) (*types.Idea, error) {
	return is.createWithStatus(ctx, title, description, complexity, types.IdeaStatusDraft)
}

func (is *ideaService) UpdateDraft(ctx context.Context, id int, title, description string, version int) (*types.Idea, error) {
	title = normalization.TrimInputString(title)
	description = normalization.TrimInputString(description)
	if title == "" || description == "" {
		return nil, fmt.Errorf("title and description are required")
	}

	return is.ideaRepo.UpdateChecked(ctx, id, version, func(idea *types.Idea) error {
		if idea.Status != types.IdeaStatusDraft {
			return fmt.Errorf("only drafts can be edited")
		}
		idea.Title = title
		idea.Description = description
		return nil
	})
}

func (is *ideaService) PublishDraft(ctx context.Context, id, version int) (*types.Idea, error) {
	return is.ideaRepo.UpdateChecked(ctx, id, version, func(idea *types.Idea) error {
		next, err := workflow.IdeaMachine.Transition(idea.Status, types.IdeaStatusProposed)
		if err != nil {
			return err
		}
		idea.Status = next
		return nil
	})
}

func (is *ideaService) UpdateStatus(ctx context.Context, id int, status types.IdeaStatus, version int) (*types.Idea, error) {
	return is.ideaRepo.UpdateChecked(ctx, id, version, func(idea *types.Idea) error {
		next, err := workflow.IdeaMachine.Transition(idea.Status, status)
		if err != nil {
			return err
		}
		idea.Status = next
		return nil
	})
}

func (is *ideaService) GetIdea(ctx context.Context, id int) (*types.Idea, error) {
	return is.ideaRepo.GetByID(ctx, id)
}

// ListPublished excludes drafts: the public idea feed only sees ideas that
// entered the loop.
func (is *ideaService) ListPublished(ctx context.Context) ([]*types.Idea, error) {
	all, err := is.ideaRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	published := make([]*types.Idea, 0, len(all))
	for _, idea := range all {
		if idea.Status == types.IdeaStatusDraft {
			continue
		}
		published = append(published, idea)
	}
	return published, nil
}

func (is *ideaService) ListAll(ctx context.Context) ([]*types.Idea, error) {
	return is.ideaRepo.List(ctx)
}

func (is *ideaService) ListDrafts(ctx context.Context) ([]*types.Idea, error) {
	all, err := is.ideaRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	drafts := make([]*types.Idea, 0, len(all))
	for _, idea := range all {
		if idea.Status == types.IdeaStatusDraft {
			drafts = append(drafts, idea)
		}
	}
	return drafts, nil
}

// DeleteIdea does not cascade: experiments linked to the idea keep their
// linkedIdeaId and consumers resolve the dangling reference at read time.
func (is *ideaService) DeleteIdea(ctx context.Context, id int) error {
	if err := is.ideaRepo.Delete(ctx, id); err != nil {
		return err
	}
	is.log.Info("Idea deleted", "idea_id", id)
	return nil
}
