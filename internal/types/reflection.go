package types

import (
	"time"
)

type ReflectionVisibility string

const (
	ReflectionVisibilityPrivate ReflectionVisibility = "private"
	ReflectionVisibilityPublic  ReflectionVisibility = "public"
)

func ParseReflectionVisibility(raw string) (ReflectionVisibility, bool) {
	switch ReflectionVisibility(raw) {
	case ReflectionVisibilityPrivate, ReflectionVisibilityPublic:
		return ReflectionVisibility(raw), true
	}
	return "", false
}

type ReflectionContext struct {
	EmotionBefore    int `json:"emotionBefore"`
	ConfidenceBefore int `json:"confidenceBefore"`
}

type ReflectionBreakdown struct {
	WhatHappened  string `json:"whatHappened"`
	WhatWorked    string `json:"whatWorked"`
	WhatDidntWork string `json:"whatDidntWork"`
}

type ReflectionGrowth struct {
	LessonLearned string `json:"lessonLearned"`
	NextAction    string `json:"nextAction"`
}

type ReflectionResult struct {
	EmotionAfter    int `json:"emotionAfter"`
	ConfidenceAfter int `json:"confidenceAfter"`
}

// Reflection is the structured retrospective tied to one Outcome. OutcomeID
// is a strong reference checked at creation; the record is immutable after
// that.
type Reflection struct {
	ID           int                  `json:"id"`
	OutcomeID    int                  `json:"outcomeId"`
	Context      ReflectionContext    `json:"context"`
	Breakdown    ReflectionBreakdown  `json:"breakdown"`
	Growth       ReflectionGrowth     `json:"growth"`
	Result       ReflectionResult     `json:"result"`
	Tags         []string             `json:"tags,omitempty"`
	EvidenceLink string               `json:"evidenceLink,omitempty"`
	Visibility   ReflectionVisibility `json:"visibility"`
	CreatedAt    time.Time            `json:"createdAt"`
}
