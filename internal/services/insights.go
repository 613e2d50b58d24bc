package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/echoroom/echoroom-backend/internal/logger"
	"github.com/echoroom/echoroom-backend/internal/repos"
	"github.com/echoroom/echoroom-backend/internal/types"
)

type GraphNode struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	Label  string `json:"label"`
	Status string `json:"status,omitempty"`
}

type GraphEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type LearningGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

type PatternSuggestion struct {
	ExperimentID    int                 `json:"experimentId"`
	ExperimentTitle string              `json:"experimentTitle"`
	OutcomeResult   types.OutcomeResult `json:"outcomeResult,omitempty"`
	SharedKeywords  []string            `json:"sharedKeywords"`
	Score           int                 `json:"score"`
}

type InsightsService interface {
	// BuildGraph assembles the learning graph across the four stores.
	// Dangling idea links are skipped, not errors: the experiment node still
	// appears, just without an idea edge.
	BuildGraph(ctx context.Context) (*LearningGraph, error)
	// SuggestPatterns matches a proposed idea against past experiments by
	// keyword overlap and surfaces what happened last time.
	SuggestPatterns(ctx context.Context, title, description string) ([]*PatternSuggestion, error)
}

type insightsService struct {
	log            *logger.Logger
	ideaRepo       repos.IdeaRepo
	experimentRepo repos.ExperimentRepo
	outcomeRepo    repos.OutcomeRepo
	reflectionRepo repos.ReflectionRepo
}

func NewInsightsService(
	baseLog *logger.Logger,
	ideaRepo repos.IdeaRepo,
	experimentRepo repos.ExperimentRepo,
	outcomeRepo repos.OutcomeRepo,
	reflectionRepo repos.ReflectionRepo,
) InsightsService {
	serviceLog := baseLog.With("service", "InsightsService")
	return &insightsService{
		log:            serviceLog,
		ideaRepo:       ideaRepo,
		experimentRepo: experimentRepo,
		outcomeRepo:    outcomeRepo,
		reflectionRepo: reflectionRepo,
	}
}

func (is *insightsService) BuildGraph(ctx context.Context) (*LearningGraph, error) {
	graph := &LearningGraph{Nodes: []GraphNode{}, Edges: []GraphEdge{}}

	ideas, err := is.ideaRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	ideaNodes := map[int]string{}
	for _, idea := range ideas {
		if idea.Status == types.IdeaStatusDraft {
			continue
		}
		nodeID := fmt.Sprintf("idea-%d", idea.ID)
		ideaNodes[idea.ID] = nodeID
		graph.Nodes = append(graph.Nodes, GraphNode{
			ID:     nodeID,
			Kind:   "idea",
			Label:  idea.Title,
			Status: string(idea.Status),
		})
	}

	experiments, err := is.experimentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, experiment := range experiments {
		nodeID := fmt.Sprintf("experiment-%d", experiment.ID)
		graph.Nodes = append(graph.Nodes, GraphNode{
			ID:     nodeID,
			Kind:   "experiment",
			Label:  experiment.Title,
			Status: string(experiment.Status),
		})
		if experiment.LinkedIdeaID != nil {
			if ideaNodeID, ok := ideaNodes[*experiment.LinkedIdeaID]; ok {
				graph.Edges = append(graph.Edges, GraphEdge{From: ideaNodeID, To: nodeID})
			}
		}
	}

	outcomes, err := is.outcomeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, outcome := range outcomes {
		nodeID := fmt.Sprintf("outcome-%d", outcome.ID)
		graph.Nodes = append(graph.Nodes, GraphNode{
			ID:     nodeID,
			Kind:   "outcome",
			Label:  string(outcome.Result),
		})
		graph.Edges = append(graph.Edges, GraphEdge{
			From: fmt.Sprintf("experiment-%d", outcome.ExperimentID),
			To:   nodeID,
		})
	}

	reflections, err := is.reflectionRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, reflection := range reflections {
		if reflection.Visibility != types.ReflectionVisibilityPublic {
			continue
		}
		nodeID := fmt.Sprintf("reflection-%d", reflection.ID)
		graph.Nodes = append(graph.Nodes, GraphNode{
			ID:    nodeID,
			Kind:  "reflection",
			Label: reflection.Growth.LessonLearned,
		})
		graph.Edges = append(graph.Edges, GraphEdge{
			From: fmt.Sprintf("outcome-%d", reflection.OutcomeID),
			To:   nodeID,
		})
	}

	return graph, nil
}

var patternStopwords = map[string]struct{}{
	"this": {}, "that": {}, "with": {}, "from": {}, "what": {}, "when": {},
	"have": {}, "will": {}, "would": {}, "could": {}, "should": {},
	"about": {}, "into": {}, "more": {}, "some": {}, "then": {}, "than": {},
	"they": {}, "them": {}, "their": {}, "there": {}, "because": {},
}

func extractKeywords(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	seen := map[string]struct{}{}
	var keywords []string
	for _, field := range fields {
		if len(field) < 4 {
			continue
		}
		if _, stop := patternStopwords[field]; stop {
			continue
		}
		if _, dup := seen[field]; dup {
			continue
		}
		seen[field] = struct{}{}
		keywords = append(keywords, field)
	}
	return keywords
}

func (is *insightsService) SuggestPatterns(ctx context.Context, title, description string) ([]*PatternSuggestion, error) {
	keywords := extractKeywords(title + " " + description)
	if len(keywords) == 0 {
		return []*PatternSuggestion{}, nil
	}

	experiments, err := is.experimentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	suggestions := []*PatternSuggestion{}
	for _, experiment := range experiments {
		haystack := strings.ToLower(experiment.Title + " " + experiment.Description + " " + experiment.Hypothesis)
		var shared []string
		for _, keyword := range keywords {
			if strings.Contains(haystack, keyword) {
				shared = append(shared, keyword)
			}
		}
		if len(shared) == 0 {
			continue
		}

		suggestion := &PatternSuggestion{
			ExperimentID:    experiment.ID,
			ExperimentTitle: experiment.Title,
			SharedKeywords:  shared,
			Score:           len(shared),
		}
		if outcomes, oErr := is.outcomeRepo.ListByExperiment(ctx, experiment.ID); oErr == nil && len(outcomes) > 0 {
			suggestion.OutcomeResult = outcomes[0].Result
		}
		suggestions = append(suggestions, suggestion)
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].ExperimentID < suggestions[j].ExperimentID
	})
	if len(suggestions) > 5 {
		suggestions = suggestions[:5]
	}
	return suggestions, nil
}
