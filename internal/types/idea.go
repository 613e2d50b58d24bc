package types

import (
	"time"
)

type IdeaStatus string

const (
	IdeaStatusDraft      IdeaStatus = "draft"
	IdeaStatusProposed   IdeaStatus = "proposed"
	IdeaStatusExperiment IdeaStatus = "experiment"
	IdeaStatusOutcome    IdeaStatus = "outcome"
	IdeaStatusReflection IdeaStatus = "reflection"
	IdeaStatusDiscarded  IdeaStatus = "discarded"
)

// ParseIdeaStatus maps a raw request string onto the closed status set.
func ParseIdeaStatus(raw string) (IdeaStatus, bool) {
	switch IdeaStatus(raw) {
	case IdeaStatusDraft, IdeaStatusProposed, IdeaStatusExperiment,
		IdeaStatusOutcome, IdeaStatusReflection, IdeaStatusDiscarded:
		return IdeaStatus(raw), true
	}
	return "", false
}

type IdeaComplexity string

const (
	IdeaComplexityLow    IdeaComplexity = "LOW"
	IdeaComplexityMedium IdeaComplexity = "MEDIUM"
	IdeaComplexityHigh   IdeaComplexity = "HIGH"
)

func ParseIdeaComplexity(raw string) (IdeaComplexity, bool) {
	switch IdeaComplexity(raw) {
	case IdeaComplexityLow, IdeaComplexityMedium, IdeaComplexityHigh:
		return IdeaComplexity(raw), true
	}
	return "", false
}

// Idea is the proposal entity that starts the learning loop. Version is the
// optimistic-concurrency counter: it starts at 1 and every successful
// mutating update increments it by exactly 1.
type Idea struct {
	ID          int            `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Complexity  IdeaComplexity `json:"complexity,omitempty"`
	Status      IdeaStatus     `json:"status"`
	Version     int            `json:"version"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
