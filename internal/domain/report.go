package domain

import "time"

type RunStatus string

const (
	RunStatusRenewed RunStatus = "renewed"
	RunStatusIdle    RunStatus = "idle"
	RunStatusError   RunStatus = "error"
)

type ResourceReport struct {
	ID      ResourceID
	Outcome ResourceOutcome
	Reason  string
}

type AccountReport struct {
	Account       string
	LoginAttempts int
	LoggedIn      bool
	Error         string
	Resources     []ResourceReport
}

// RunReport summarises one invocation for history and rendering.
type RunReport struct {
	ID               string
	StartedAt        time.Time
	FinishedAt       time.Time
	Status           RunStatus
	RenewalPerformed bool
	Error            string
	Accounts         []AccountReport
	Log              []LogEntry
}

func (r RunReport) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Count returns how many resources across all accounts ended with outcome.
func (r RunReport) Count(outcome ResourceOutcome) int {
	total := 0
	for _, account := range r.Accounts {
		for _, resource := range account.Resources {
			if resource.Outcome == outcome {
				total++
			}
		}
	}
	return total
}
