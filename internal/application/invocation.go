package application

import (
	"fmt"

	"github.com/bnema/euserv-renew/internal/domain"
	"github.com/bnema/euserv-renew/internal/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Invocation carries the mutable state of a single run: the run log, the
// renewal-performed flag and the set of resources already renewed. It is
// owned by the goroutine executing the run.
type Invocation struct {
	id               string
	clock            ports.Clock
	logger           *zap.Logger
	log              domain.RunLog
	report           domain.RunReport
	renewalPerformed bool
	renewed          map[domain.ResourceID]struct{}
}

func NewInvocation(clock ports.Clock, logger *zap.Logger) *Invocation {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	id := uuid.NewString()
	return &Invocation{
		id:      id,
		clock:   clock,
		logger:  logger.With(zap.String("run_id", id)),
		report:  domain.RunReport{ID: id, StartedAt: clock.Now()},
		renewed: map[domain.ResourceID]struct{}{},
	}
}

func (inv *Invocation) ID() string { return inv.id }

func (inv *Invocation) RenewalPerformed() bool { return inv.renewalPerformed }

func (inv *Invocation) Log() *domain.RunLog { return &inv.log }

// Record appends a run-log entry and mirrors it to the structured logger.
func (inv *Invocation) Record(kind domain.LogKind, message string, fields ...zap.Field) {
	inv.log.Append(domain.LogEntry{At: inv.clock.Now(), Kind: kind, Message: message})

	fields = append(fields, zap.String("kind", string(kind)))
	switch kind {
	case domain.LogWarning, domain.LogError, domain.LogLoginFailed, domain.LogCaptchaFailed:
		inv.logger.Warn(message, fields...)
	default:
		inv.logger.Info(message, fields...)
	}
}

func (inv *Invocation) Recordf(kind domain.LogKind, format string, args ...any) {
	inv.Record(kind, fmt.Sprintf(format, args...))
}

func (inv *Invocation) trace(machine string, state string, fields ...zap.Field) {
	inv.logger.Debug("state transition", append(fields, zap.String("machine", machine), zap.String("state", state))...)
}

func (inv *Invocation) alreadyRenewed(id domain.ResourceID) bool {
	_, ok := inv.renewed[id]
	return ok
}

func (inv *Invocation) claim(id domain.ResourceID) {
	inv.renewed[id] = struct{}{}
}

func (inv *Invocation) markRenewalPerformed() {
	inv.renewalPerformed = true
}

func (inv *Invocation) addAccount(report domain.AccountReport) {
	inv.report.Accounts = append(inv.report.Accounts, report)
}

// Report finalises the run summary as of now.
func (inv *Invocation) Report() domain.RunReport {
	report := inv.report
	report.FinishedAt = inv.clock.Now()
	report.RenewalPerformed = inv.renewalPerformed
	report.Log = inv.log.Entries()
	report.Accounts = append([]domain.AccountReport(nil), inv.report.Accounts...)

	switch {
	case report.Error != "":
		report.Status = domain.RunStatusError
	case report.RenewalPerformed:
		report.Status = domain.RunStatusRenewed
	default:
		report.Status = domain.RunStatusIdle
	}

	return report
}
