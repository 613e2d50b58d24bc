package types

import (
	"time"
)

type ExperimentStatus string

const (
	ExperimentStatusPlanned    ExperimentStatus = "planned"
	ExperimentStatusInProgress ExperimentStatus = "in-progress"
	ExperimentStatusCompleted  ExperimentStatus = "completed"
)

func ParseExperimentStatus(raw string) (ExperimentStatus, bool) {
	switch ExperimentStatus(raw) {
	case ExperimentStatusPlanned, ExperimentStatusInProgress, ExperimentStatusCompleted:
		return ExperimentStatus(raw), true
	}
	return "", false
}

// Experiment tests an Idea against a falsifiable hypothesis. LinkedIdeaID is
// a weak reference: the idea may be deleted independently, so resolution is
// deferred to read time and "idea not found" is a normal condition there.
type Experiment struct {
	ID             int              `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Hypothesis     string           `json:"hypothesis"`
	SuccessMetric  string           `json:"successMetric"`
	Falsifiability string           `json:"falsifiability"`
	Status         ExperimentStatus `json:"status"`
	EndDate        string           `json:"endDate"`
	LinkedIdeaID   *int             `json:"linkedIdeaId,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
}
