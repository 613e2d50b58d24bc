package services

import (
	"context"
	"testing"

	"github.com/echoroom/echoroom-backend/internal/types"
)

func TestExtractKeywords(t *testing.T) {
	got := extractKeywords("Pair programming with THAT team, pair daily!")
	want := []string{"pair", "programming", "team", "daily"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	if kws := extractKeywords("a an the из"); len(kws) != 0 {
		t.Fatalf("short and non-ascii tokens must be dropped, got %v", kws)
	}
}

func TestSuggestPatternsRanksByOverlap(t *testing.T) {
	ctx := context.Background()
	f := newLoopFixture(t)

	strong, err := f.experiments.CreateExperiment(ctx, CreateExperimentInput{
		Title:       "daily standup rotation",
		Description: "rotate who runs the standup meeting",
		Hypothesis:  "rotation keeps the standup short",
	})
	if err != nil {
		t.Fatalf("create experiment: %v", err)
	}
	f.seedOutcome(t, strong.ID, types.OutcomeResultSuccess)

	weak, err := f.experiments.CreateExperiment(ctx, CreateExperimentInput{
		Title:       "async standup in chat",
		Description: "post updates in a thread",
		Hypothesis:  "writing beats talking",
	})
	if err != nil {
		t.Fatalf("create experiment: %v", err)
	}

	if _, err := f.experiments.CreateExperiment(ctx, CreateExperimentInput{
		Title:       "database index audit",
		Description: "look at slow queries",
		Hypothesis:  "missing indexes hurt",
	}); err != nil {
		t.Fatalf("create experiment: %v", err)
	}

	suggestions, err := f.insights.SuggestPatterns(ctx, "standup rotation revisited", "try a rotation for the standup again")
	if err != nil {
		t.Fatalf("suggest patterns: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(suggestions))
	}
	if suggestions[0].ExperimentID != strong.ID {
		t.Fatalf("highest overlap must rank first, got experiment %d", suggestions[0].ExperimentID)
	}
	if suggestions[0].Score <= suggestions[1].Score {
		t.Fatalf("ranking not by score: %d then %d", suggestions[0].Score, suggestions[1].Score)
	}
	if suggestions[0].OutcomeResult != types.OutcomeResultSuccess {
		t.Fatalf("matched experiment should surface its outcome, got %q", suggestions[0].OutcomeResult)
	}
	if suggestions[1].ExperimentID != weak.ID {
		t.Fatalf("expected the chat standup second, got experiment %d", suggestions[1].ExperimentID)
	}
	if suggestions[1].OutcomeResult != "" {
		t.Fatalf("experiment without outcome must not carry a result, got %q", suggestions[1].OutcomeResult)
	}
}

func TestSuggestPatternsNoKeywords(t *testing.T) {
	ctx := context.Background()
	f := newLoopFixture(t)
	f.seedExperiment(t, "anything", types.ExperimentStatusPlanned)

	suggestions, err := f.insights.SuggestPatterns(ctx, "a an", "of to")
	if err != nil {
		t.Fatalf("suggest patterns: %v", err)
	}
	if len(suggestions) != 0 {
		t.Fatalf("no keywords means no suggestions, got %d", len(suggestions))
	}
}

func TestBuildGraphSkipsDraftsAndDanglingLinks(t *testing.T) {
	ctx := context.Background()
	f := newLoopFixture(t)

	idea, err := f.ideas.CreateIdea(ctx, "linked idea", "has an experiment", types.IdeaComplexityLow)
	if err != nil {
		t.Fatalf("create idea: %v", err)
	}
	if _, err := f.ideas.CreateDraft(ctx, "invisible draft", "not in the graph", types.IdeaComplexityLow); err != nil {
		t.Fatalf("create draft: %v", err)
	}

	linkedID := idea.ID
	linked, err := f.experiments.CreateExperiment(ctx, CreateExperimentInput{
		Title:        "linked experiment",
		Description:  "points at a live idea",
		LinkedIdeaID: &linkedID,
	})
	if err != nil {
		t.Fatalf("create experiment: %v", err)
	}

	danglingID := 404
	if _, err := f.experiments.CreateExperiment(ctx, CreateExperimentInput{
		Title:        "dangling experiment",
		Description:  "its idea is gone",
		LinkedIdeaID: &danglingID,
	}); err != nil {
		t.Fatalf("create experiment: %v", err)
	}

	outcome := f.seedOutcome(t, linked.ID, types.OutcomeResultMixed)

	public := sampleReflectionInput(outcome.ID)
	if _, err := f.reflections.CreateReflection(ctx, public); err != nil {
		t.Fatalf("create reflection: %v", err)
	}
	private := sampleReflectionInput(outcome.ID)
	private.Visibility = types.ReflectionVisibilityPrivate
	if _, err := f.reflections.CreateReflection(ctx, private); err != nil {
		t.Fatalf("create reflection: %v", err)
	}

	graph, err := f.insights.BuildGraph(ctx)
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}

	kinds := map[string]int{}
	ids := map[string]bool{}
	for _, node := range graph.Nodes {
		kinds[node.Kind]++
		ids[node.ID] = true
	}
	// One published idea (the draft is hidden), two experiments, one outcome,
	// one public reflection.
	if kinds["idea"] != 1 || kinds["experiment"] != 2 || kinds["outcome"] != 1 || kinds["reflection"] != 1 {
		t.Fatalf("unexpected node mix: %v", kinds)
	}

	ideaEdges := 0
	for _, edge := range graph.Edges {
		if !ids[edge.From] || !ids[edge.To] {
			t.Fatalf("edge references a missing node: %+v", edge)
		}
		if edge.From == "idea-1" {
			ideaEdges++
		}
	}
	if ideaEdges != 1 {
		t.Fatalf("the dangling link must not produce an edge, got %d idea edges", ideaEdges)
	}
}
