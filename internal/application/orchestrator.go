package application

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/bnema/euserv-renew/internal/domain"
	"github.com/bnema/euserv-renew/internal/ports"
	"go.uber.org/zap"
)

// UnhandledError aborts the rest of a run and triggers the error
// notification.
type UnhandledError struct {
	Err error
}

func (e *UnhandledError) Error() string { return "unhandled renewal error: " + e.Err.Error() }
func (e *UnhandledError) Unwrap() error { return e.Err }

type OrchestratorPolicy struct {
	// SettleDelay separates the last renewal from the verification listing.
	SettleDelay     time.Duration
	AccountCooldown time.Duration
}

func DefaultOrchestratorPolicy() OrchestratorPolicy {
	return OrchestratorPolicy{
		SettleDelay:     15 * time.Second,
		AccountCooldown: 5 * time.Second,
	}
}

type OrchestratorDeps struct {
	Accounts   []domain.Account
	Login      *LoginMachine
	Renewal    *RenewalMachine
	Dispatcher *Dispatcher
	History    ports.RunHistoryRepository
	Metrics    ports.Metrics
	Clock      ports.Clock
	Logger     *zap.Logger
}

type Orchestrator struct {
	accounts   []domain.Account
	login      *LoginMachine
	renewal    *RenewalMachine
	dispatcher *Dispatcher
	history    ports.RunHistoryRepository
	metrics    ports.Metrics
	clock      ports.Clock
	logger     *zap.Logger
	policy     OrchestratorPolicy

	running sync.Mutex
}

func NewOrchestrator(deps OrchestratorDeps, policy OrchestratorPolicy) *Orchestrator {
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock{}
	}
	if deps.Metrics == nil {
		deps.Metrics = ports.NopMetrics{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Dispatcher == nil {
		deps.Dispatcher = NewDispatcher(deps.Logger)
	}

	return &Orchestrator{
		accounts:   deps.Accounts,
		login:      deps.Login,
		renewal:    deps.Renewal,
		dispatcher: deps.Dispatcher,
		history:    deps.History,
		metrics:    deps.Metrics,
		clock:      deps.Clock,
		logger:     deps.Logger,
		policy:     policy,
	}
}

// Run performs one invocation over all accounts. Only ErrRunInProgress is
// returned as an error; everything else ends up in the report, the run log
// and, when warranted, a notification.
func (o *Orchestrator) Run(ctx context.Context) (domain.RunReport, error) {
	if !o.running.TryLock() {
		return domain.RunReport{}, domain.ErrRunInProgress
	}
	defer o.running.Unlock()

	inv := NewInvocation(o.clock, o.logger)
	inv.Record(domain.LogInfo, "renewal run started")

	err := o.guard(func() error {
		return o.processAccounts(ctx, inv)
	})

	if err != nil {
		unhandled := &UnhandledError{Err: err}
		inv.report.Error = err.Error()
		inv.Record(domain.LogError, fmt.Sprintf("renewal run aborted: %v", err))
		o.dispatcher.Dispatch(context.WithoutCancel(ctx), errorNotification(inv, unhandled))
	} else if inv.RenewalPerformed() {
		o.dispatcher.Dispatch(ctx, renewedNotification(inv))
	} else {
		inv.Record(domain.LogInfo, "no renewal performed, skipping notification")
	}

	report := inv.Report()
	o.metrics.RunFinished(report.Status, report.Duration())
	o.saveHistory(ctx, report)

	return report, nil
}

func (o *Orchestrator) guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("renewal run panicked", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

func (o *Orchestrator) processAccounts(ctx context.Context, inv *Invocation) error {
	var (
		listed       int
		listFailures []error
	)

	for i, account := range o.accounts {
		if err := ctx.Err(); err != nil {
			return err
		}

		listErr, err := o.processAccount(ctx, inv, i+1, account)
		if err != nil {
			return err
		}
		switch {
		case listErr != nil:
			listFailures = append(listFailures, listErr)
		case inv.report.Accounts[len(inv.report.Accounts)-1].LoggedIn:
			listed++
		}

		if i < len(o.accounts)-1 {
			o.clock.Sleep(o.policy.AccountCooldown)
		}
	}

	// Abort only when no logged-in account could be listed.
	if listed == 0 && len(listFailures) > 0 {
		return fmt.Errorf("list servers failed for every account: %w", listFailures[0])
	}

	inv.Record(domain.LogDone, "all accounts processed")
	return nil
}

// processAccount handles one account end to end. Login and per-resource
// failures are recorded and swallowed. A listing failure is recorded and
// handed back as listErr; err is only ever the context's error.
func (o *Orchestrator) processAccount(ctx context.Context, inv *Invocation, index int, account domain.Account) (listErr error, err error) {
	report := domain.AccountReport{Account: account.MaskedUsername()}
	defer func() { inv.addAccount(report) }()

	inv.Recordf(domain.LogProgress, "renewing account %d (%s)", index, account.MaskedUsername())

	login := o.login.Login(ctx, inv, account)
	report.LoginAttempts = login.Attempts
	if !login.OK() {
		report.Error = login.Err.Error()
		inv.Recordf(domain.LogLoginFailed, "account %d login failed, check credentials: %v", index, login.Err)
		return nil, ctx.Err()
	}
	report.LoggedIn = true

	session := login.Value
	defer session.Close()

	resources, listErr := session.ListResources(ctx)
	if listErr != nil {
		report.Error = fmt.Sprintf("list servers: %v", listErr)
		inv.Recordf(domain.LogWarning, "account %d: listing servers failed: %v", index, listErr)
		return listErr, ctx.Err()
	}
	inv.Recordf(domain.LogDetected, "account %d has %d servers, attempting renewal", index, len(resources))

	for _, resource := range resources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		outcome := o.processResource(ctx, inv, session, resource)
		report.Resources = append(report.Resources, outcome)
		o.metrics.ResourceFinished(outcome.Outcome)
	}

	o.clock.Sleep(o.policy.SettleDelay)
	o.verify(ctx, inv, session, &report)

	return nil, ctx.Err()
}

func (o *Orchestrator) processResource(ctx context.Context, inv *Invocation, session ports.PortalSession, resource domain.Resource) domain.ResourceReport {
	result := domain.ResourceReport{ID: resource.ID}

	switch {
	case !resource.NeedsRenewal:
		result.Outcome = domain.OutcomeNotDue
		inv.Recordf(domain.LogNotDue, "ServerID %s does not need renewal", resource.ID)
		return result
	case inv.alreadyRenewed(resource.ID):
		result.Outcome = domain.OutcomeDuplicate
		result.Reason = "already handled in this run"
		inv.Recordf(domain.LogWarning, "ServerID %s already handled in this run, skipping", resource.ID)
		return result
	}

	inv.claim(resource.ID)
	inv.Recordf(domain.LogProgress, "renewing ServerID %s", resource.ID)

	if err := o.renewal.Renew(ctx, inv, session, resource.ID); err != nil {
		result.Outcome = domain.OutcomeFailed
		result.Reason = err.Error()
		inv.Record(domain.LogWarning, fmt.Sprintf("ServerID %s renewal error: %v", resource.ID, err), zap.String("resource", string(resource.ID)))
		return result
	}

	result.Outcome = domain.OutcomeRenewed
	inv.Recordf(domain.LogSuccess, "ServerID %s renewed successfully", resource.ID)
	return result
}

// verify re-lists the account's servers and reclassifies anything still due
// as a failed renewal, whatever the renewal machine reported.
func (o *Orchestrator) verify(ctx context.Context, inv *Invocation, session ports.PortalSession, report *domain.AccountReport) {
	inv.Record(domain.LogInfo, "checking renewal status")

	resources, err := session.ListResources(ctx)
	if err != nil {
		inv.Recordf(domain.LogWarning, "renewal check failed: %v", err)
		if report.Error == "" {
			report.Error = fmt.Sprintf("check servers: %v", err)
		}
		return
	}

	allDone := true
	for _, resource := range resources {
		if !resource.NeedsRenewal {
			continue
		}
		allDone = false
		inv.Recordf(domain.LogWarning, "ServerID %s renewal failed!", resource.ID)
		markVerifyFailed(report, resource.ID)
	}

	if allDone {
		inv.Record(domain.LogDone, "all servers renewed, nothing left due")
	}
}

func markVerifyFailed(report *domain.AccountReport, id domain.ResourceID) {
	for i := range report.Resources {
		if report.Resources[i].ID != id {
			continue
		}
		// A renewal that already failed keeps its own reason.
		switch report.Resources[i].Outcome {
		case domain.OutcomeRenewed:
			report.Resources[i].Outcome = domain.OutcomeVerifyFailed
			report.Resources[i].Reason = "still due after renewal"
		case domain.OutcomeNotDue:
			report.Resources[i].Outcome = domain.OutcomeVerifyFailed
			report.Resources[i].Reason = "due at verification"
		}
		return
	}

	report.Resources = append(report.Resources, domain.ResourceReport{
		ID:      id,
		Outcome: domain.OutcomeVerifyFailed,
		Reason:  "due at verification",
	})
}

func (o *Orchestrator) saveHistory(ctx context.Context, report domain.RunReport) {
	if o.history == nil {
		return
	}

	if err := o.history.Save(context.WithoutCancel(ctx), report); err != nil {
		o.logger.Warn("save run history", zap.String("run_id", report.ID), zap.Error(err))
	}
}
