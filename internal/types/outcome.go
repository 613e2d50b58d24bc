package types

import (
	"time"
)

type OutcomeResult string

const (
	OutcomeResultSuccess OutcomeResult = "Success"
	OutcomeResultMixed   OutcomeResult = "Mixed"
	OutcomeResultFailed  OutcomeResult = "Failed"
)

func ParseOutcomeResult(raw string) (OutcomeResult, bool) {
	switch OutcomeResult(raw) {
	case OutcomeResultSuccess, OutcomeResultMixed, OutcomeResultFailed:
		return OutcomeResult(raw), true
	}
	return "", false
}

// Outcome records the result of a completed Experiment. ExperimentID is a
// strong reference checked at creation time; at most one Outcome may exist
// per Experiment.
type Outcome struct {
	ID           int           `json:"id"`
	ExperimentID int           `json:"experimentId"`
	Result       OutcomeResult `json:"result"`
	Notes        string        `json:"notes"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// OutcomeWithExperiment is the listing shape: the experiment title is
// resolved at read time and falls back when the experiment has since been
// deleted.
type OutcomeWithExperiment struct {
	Outcome
	ExperimentTitle string `json:"experimentTitle"`
}
