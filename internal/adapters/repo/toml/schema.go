package toml

import (
	"fmt"
	"time"

	"github.com/bnema/euserv-renew/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version int         `toml:"version"`
	Runs    []runSchema `toml:"runs"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported history schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type runSchema struct {
	ID               string          `toml:"id"`
	StartedAt        time.Time       `toml:"started_at"`
	FinishedAt       time.Time       `toml:"finished_at"`
	Status           string          `toml:"status"`
	RenewalPerformed bool            `toml:"renewal_performed"`
	Error            string          `toml:"error,omitempty"`
	Accounts         []accountSchema `toml:"accounts,omitempty"`
	Log              []logSchema     `toml:"log,omitempty"`
}

type accountSchema struct {
	Account       string           `toml:"account"`
	LoginAttempts int              `toml:"login_attempts"`
	LoggedIn      bool             `toml:"logged_in"`
	Error         string           `toml:"error,omitempty"`
	Resources     []resourceSchema `toml:"resources,omitempty"`
}

type resourceSchema struct {
	ID      string `toml:"id"`
	Outcome string `toml:"outcome"`
	Reason  string `toml:"reason,omitempty"`
}

type logSchema struct {
	At      time.Time `toml:"at"`
	Kind    string    `toml:"kind"`
	Message string    `toml:"message"`
}

func toSchema(report domain.RunReport) runSchema {
	run := runSchema{
		ID:               report.ID,
		StartedAt:        report.StartedAt.UTC(),
		FinishedAt:       report.FinishedAt.UTC(),
		Status:           string(report.Status),
		RenewalPerformed: report.RenewalPerformed,
		Error:            report.Error,
	}

	for _, account := range report.Accounts {
		encoded := accountSchema{
			Account:       account.Account,
			LoginAttempts: account.LoginAttempts,
			LoggedIn:      account.LoggedIn,
			Error:         account.Error,
		}
		for _, resource := range account.Resources {
			encoded.Resources = append(encoded.Resources, resourceSchema{
				ID:      string(resource.ID),
				Outcome: string(resource.Outcome),
				Reason:  resource.Reason,
			})
		}
		run.Accounts = append(run.Accounts, encoded)
	}

	for _, entry := range report.Log {
		run.Log = append(run.Log, logSchema{At: entry.At.UTC(), Kind: string(entry.Kind), Message: entry.Message})
	}

	return run
}

func fromSchema(run runSchema) (domain.RunReport, error) {
	report := domain.RunReport{
		ID:               run.ID,
		StartedAt:        run.StartedAt,
		FinishedAt:       run.FinishedAt,
		Status:           domain.RunStatus(run.Status),
		RenewalPerformed: run.RenewalPerformed,
		Error:            run.Error,
	}

	for _, account := range run.Accounts {
		decoded := domain.AccountReport{
			Account:       account.Account,
			LoginAttempts: account.LoginAttempts,
			LoggedIn:      account.LoggedIn,
			Error:         account.Error,
		}
		for _, resource := range account.Resources {
			outcome := domain.ResourceOutcome(resource.Outcome)
			if !outcome.Valid() {
				return domain.RunReport{}, fmt.Errorf("unknown outcome %q for server %s", resource.Outcome, resource.ID)
			}
			decoded.Resources = append(decoded.Resources, domain.ResourceReport{
				ID:      domain.ResourceID(resource.ID),
				Outcome: outcome,
				Reason:  resource.Reason,
			})
		}
		report.Accounts = append(report.Accounts, decoded)
	}

	for _, entry := range run.Log {
		report.Log = append(report.Log, domain.LogEntry{At: entry.At, Kind: domain.LogKind(entry.Kind), Message: entry.Message})
	}

	return report, nil
}
